package scan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pders01/stsweep/internal/conflict"
	"github.com/pders01/stsweep/internal/marker"
)

// ErrMissingPrecondition means a scan root lacks the synchronizer marker
// subdirectory and is therefore not a synced folder. Fatal before scanning.
var ErrMissingPrecondition = errors.New("root is not a synchronizer folder")

// Scanner discovers conflict files under configured roots.
type Scanner struct {
	FS        afero.Fs
	MarkerDir string // subdirectory every root must contain, e.g. .stfolder
	BackupDir string // quarantine directory name, excluded from traversal
	Warn      io.Writer
}

// Scan walks each root and returns one record per filename carrying at
// least one conflict marker. Each root must contain the marker
// subdirectory; a root without it aborts the scan. Traversal errors on
// individual entries are warned and skipped, never fatal.
func (s *Scanner) Scan(roots []string) ([]*conflict.Record, error) {
	var records []*conflict.Record
	for _, root := range roots {
		if err := s.checkRoot(root); err != nil {
			return nil, err
		}
		found, err := s.scanRoot(root)
		if err != nil {
			return nil, err
		}
		records = append(records, found...)
	}
	return records, nil
}

func (s *Scanner) checkRoot(root string) error {
	info, err := s.FS.Stat(filepath.Join(root, s.MarkerDir))
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s has no %s directory", ErrMissingPrecondition, root, s.MarkerDir)
	}
	return nil
}

func (s *Scanner) scanRoot(root string) ([]*conflict.Record, error) {
	var records []*conflict.Record
	err := afero.Walk(s.FS, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			s.warnf("warning: failed to scan %s: %v\n", path, err)
			return nil
		}
		if info.IsDir() {
			// Prior backups are never rescanned.
			if info.Name() == s.BackupDir {
				return filepath.SkipDir
			}
			return nil
		}
		markers := marker.Parse(info.Name())
		if len(markers) == 0 {
			return nil
		}
		rec, err := conflict.New(root, filepath.Dir(path), info.Name(), markers)
		if err != nil {
			// Reconstruction failure is a grammar bug; abort.
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Scanner) warnf(format string, args ...any) {
	if s.Warn != nil {
		fmt.Fprintf(s.Warn, format, args...)
	}
}
