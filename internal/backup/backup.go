package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/supermemoryai/install-mcp/internal/errors"
	"github.com/supermemoryai/install-mcp/internal/paths"
	"github.com/supermemoryai/install-mcp/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

const idLayout = "20060102T150405.000"

// Manager creates and prunes client config backups.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time

	mu   sync.Mutex
	done map[string]*Manifest
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups to retain per client.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a backup Manager rooted at paths.BackupDir by default.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
		done:           make(map[string]*Manifest),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup copies the existing files among files into a new backup for
// client, then prunes backups beyond the retention count. Missing files
// are skipped; if none exist ErrNothingToBackUp is returned.
func (m *Manager) Backup(client string, files []string) (*Manifest, error) {
	if client == "" {
		return nil, errors.New("client is required")
	}

	var existing []string
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", f)
		}
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", f)
		}
		existing = append(existing, f)
	}
	if len(existing) == 0 {
		return nil, ErrNothingToBackUp
	}

	created := m.now().UTC()
	id, dir, err := m.reserveDir(client, created)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   created,
		Client:      client,
		ToolVersion: Version,
		ID:          id,
	}

	for _, src := range existing {
		rel := relPath(src)
		hash, mode, err := copyFile(src, filepath.Join(dir, rel))
		if err != nil {
			_ = os.RemoveAll(dir)
			return nil, errors.Wrapf(err, "backing up %s", src)
		}
		manifest.Files = append(manifest.Files, File{
			OriginalPath: src,
			RelPath:      rel,
			SHA256:       hash,
			Mode:         mode,
		})
	}

	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, manifestName), manifest); err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(client, m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning old backups")
	}
	return manifest, nil
}

// EnsureBackedUp backs up files for client at most once per Manager.
// Later calls return the first manifest. Nothing to back up is not an
// error and yields a nil manifest; a failed backup may be retried.
func (m *Manager) EnsureBackedUp(client string, files []string) (*Manifest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if manifest, ok := m.done[client]; ok {
		return manifest, nil
	}

	manifest, err := m.Backup(client, files)
	switch {
	case errors.Is(err, ErrNothingToBackUp):
		m.done[client] = nil
		return nil, nil
	case err != nil && manifest == nil:
		return nil, errors.Wrapf(err, "creating backup for %s", client)
	}

	// A pruning failure still leaves a usable backup.
	m.done[client] = manifest
	return manifest, nil
}

// reserveDir creates a fresh backup directory named after t, adding a
// numeric suffix when that name is taken.
func (m *Manager) reserveDir(client string, t time.Time) (string, string, error) {
	clientDir := m.clientDir(client)
	if err := paths.EnsureDir(clientDir, 0o755); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}

	base := t.Format(idLayout)
	for i := 0; i < 100; i++ {
		id := base
		if i > 0 {
			id += "-" + strconv.Itoa(i)
		}
		dir := filepath.Join(clientDir, id)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
	return "", "", errors.Newf("too many backups for %s at %s", client, base)
}

// List returns all backups for client, newest first.
func (m *Manager) List(client string) ([]Manifest, error) {
	if client == "" {
		return nil, errors.New("client is required")
	}

	entries, err := os.ReadDir(m.clientDir(client))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(client, entry.Name())
		if err != nil {
			// Skip directories without a readable manifest.
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Get returns the manifest of one backup.
func (m *Manager) Get(client, id string) (*Manifest, error) {
	if client == "" || id == "" {
		return nil, errors.New("client and backup ID are required")
	}

	data, err := os.ReadFile(filepath.Join(m.clientDir(client), id, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

// Restore writes every file of backup id back to its original location
// after verifying its hash. The files being replaced are backed up first,
// so a restore can itself be undone. Files are replaced atomically with
// their recorded mode.
func (m *Manager) Restore(client, id string) (*Manifest, error) {
	manifest, err := m.Get(client, id)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(m.clientDir(client), id)
	contents := make([][]byte, len(manifest.Files))
	originals := make([]string, len(manifest.Files))
	for i, f := range manifest.Files {
		data, err := os.ReadFile(filepath.Join(dir, f.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", f.RelPath)
		}
		sum := sha256.Sum256(data)
		if hex.EncodeToString(sum[:]) != f.SHA256 {
			return nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", f.RelPath)
		}
		contents[i] = data
		originals[i] = f.OriginalPath
	}

	// Pruning may remove the backup being restored; its files are in memory.
	if _, err := m.Backup(client, originals); err != nil && !errors.Is(err, ErrNothingToBackUp) {
		return nil, errors.Wrap(err, "backing up current files")
	}

	for i, f := range manifest.Files {
		if err := os.MkdirAll(filepath.Dir(f.OriginalPath), 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", f.OriginalPath)
		}
		if err := fileutil.AtomicWriteFile(f.OriginalPath, contents[i], f.Mode); err != nil {
			return nil, errors.Wrapf(err, "restoring %s", f.OriginalPath)
		}
	}
	return manifest, nil
}

// Prune removes all but the keep most recent backups of client.
func (m *Manager) Prune(client string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(client)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for _, old := range manifests[min(keep, len(manifests)):] {
		if err := os.RemoveAll(filepath.Join(m.clientDir(client), old.ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", old.ID)
		}
	}
	return nil
}

func (m *Manager) clientDir(client string) string {
	return filepath.Join(m.rootDir, client)
}

// copyFile copies src to dst, creating parents, and returns the content
// hash and the source mode. dst gets the source permissions.
func copyFile(src, dst string) (string, fs.FileMode, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode := info.Mode().Perm()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", 0, errors.Wrap(err, "creating parent directory")
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating backup file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := out.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing backup file")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// relPath maps an absolute source path to its location inside a backup
// directory. Volume names and colons are dropped so the result is valid
// on every platform.
func relPath(abs string) string {
	clean := filepath.Clean(abs)
	clean = strings.TrimPrefix(clean, filepath.VolumeName(clean))
	clean = strings.ReplaceAll(clean, ":", "")
	return strings.TrimLeft(clean, `/\`)
}
