package backup

import (
	"io/fs"
	"time"

	"github.com/supermemoryai/install-mcp/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of backups kept per client.
const DefaultRetentionCount = 10

const manifestName = "manifest.json"

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the client.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrNothingToBackUp indicates none of the given files exist yet.
	ErrNothingToBackUp = errors.New("no files to back up")

	// ErrBackupCorrupted indicates a backed up file no longer matches its hash.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one backup. It is stored as manifest.json in the
// backup directory.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Client    string    `json:"client"`
	Files     []File    `json:"files"`
	// ToolVersion is the install-mcp version that wrote the backup.
	ToolVersion string `json:"tool_version"`

	// ID is the backup directory name. Populated on load.
	ID string `json:"-"`
}

// File is one backed up file.
type File struct {
	OriginalPath string      `json:"original_path"`
	RelPath      string      `json:"rel_path"`
	SHA256       string      `json:"sha256"`
	Mode         fs.FileMode `json:"mode"`
}
