// Package backup snapshots client config files before install-mcp edits
// them.
//
// Each backup is a timestamped directory holding copies of the files and a
// manifest with their original paths, SHA256 hashes and permissions:
//
//	<DataHome>/install-mcp/backups/
//	└── {client}/
//	    └── {timestamp}/
//	        ├── manifest.json
//	        └── {copied files...}
//
// Use [Manager.EnsureBackedUp] before a write so a session that edits the
// same client several times only snapshots the original state once. Old
// backups beyond the retention count (default 10) are pruned after every
// new backup.
package backup
