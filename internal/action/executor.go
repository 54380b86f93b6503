package action

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/pders01/stsweep/internal/conflict"
)

// Executor performs delete and backup actions. With Commit false every
// action is previewed on Out instead of touching the filesystem.
type Executor struct {
	FS        afero.Fs
	Commit    bool
	BackupDir string // quarantine directory name, created under the scan root
	Out       io.Writer
}

// Delete removes the conflict file itself.
func (e *Executor) Delete(r *conflict.Record) error {
	if !e.Commit {
		fmt.Fprintf(e.Out, "delete: %s\n", r.Name)
		return nil
	}
	if err := e.FS.Remove(r.CanonicalPath()); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.CanonicalPath(), err)
	}
	return nil
}

// Backup moves the conflict file into the quarantine directory under its
// scan root, creating the directory if absent and preserving the filename.
// A name collision in the quarantine gets a unique suffix rather than
// overwriting a prior backup.
func (e *Executor) Backup(r *conflict.Record) error {
	if !e.Commit {
		fmt.Fprintf(e.Out, "backup: %s\n", r.Name)
		return nil
	}

	dir := filepath.Join(r.Root, e.BackupDir)
	if err := e.FS.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", dir, err)
	}

	target := filepath.Join(dir, r.Name)
	if _, err := e.FS.Stat(target); err == nil {
		target = target + "." + uuid.NewString()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat backup target %s: %w", target, err)
	}

	if err := e.FS.Rename(r.CanonicalPath(), target); err != nil {
		return fmt.Errorf("failed to back up %s: %w", r.CanonicalPath(), err)
	}
	return nil
}
