package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/pders01/stsweep/internal/conflict"
	"github.com/pders01/stsweep/internal/marker"
)

// SyncFolder is an in-memory synchronizer folder for testing. The root
// carries the .stfolder marker subdirectory so it passes the scanner's
// precondition check.
type SyncFolder struct {
	FS   afero.Fs
	Root string
	T    *testing.T
}

// NewSyncFolder creates a new in-memory sync folder rooted at /sync.
func NewSyncFolder(t *testing.T) *SyncFolder {
	t.Helper()

	fs := afero.NewMemMapFs()
	root := "/sync"
	if err := fs.MkdirAll(filepath.Join(root, ".stfolder"), 0o755); err != nil {
		t.Fatalf("failed to create marker directory: %v", err)
	}
	return &SyncFolder{FS: fs, Root: root, T: t}
}

// CreateFile writes a file relative to the folder root.
func (f *SyncFolder) CreateFile(name, content string) {
	f.T.Helper()
	path := filepath.Join(f.Root, name)
	if err := f.FS.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		f.T.Fatalf("failed to create directory: %v", err)
	}
	if err := afero.WriteFile(f.FS, path, []byte(content), 0o644); err != nil {
		f.T.Fatalf("failed to create file: %v", err)
	}
}

// Remove deletes a file relative to the folder root.
func (f *SyncFolder) Remove(name string) {
	f.T.Helper()
	if err := f.FS.Remove(filepath.Join(f.Root, name)); err != nil {
		f.T.Fatalf("failed to remove file: %v", err)
	}
}

// Exists reports whether a file exists relative to the folder root.
func (f *SyncFolder) Exists(name string) bool {
	f.T.Helper()
	ok, err := afero.Exists(f.FS, filepath.Join(f.Root, name))
	if err != nil {
		f.T.Fatalf("failed to check file: %v", err)
	}
	return ok
}

// Record parses name and builds a conflict record rooted at the folder.
func (f *SyncFolder) Record(name string) *conflict.Record {
	f.T.Helper()
	markers := marker.Parse(name)
	rec, err := conflict.New(f.Root, f.Root, name, markers)
	if err != nil {
		f.T.Fatalf("failed to build record for %s: %v", name, err)
	}
	return rec
}

// ConflictName appends a conflict marker for the given event time and
// replica id to base, before ext.
func ConflictName(base string, at time.Time, replica, ext string) string {
	return base + at.Format(".sync-conflict-20060102-150405-") + replica + ext
}
