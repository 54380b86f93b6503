package conflict

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pders01/stsweep/internal/marker"
)

var (
	// ErrNoMarkers means a record was requested for a name that carries no
	// conflict markers. Such names are not conflicts.
	ErrNoMarkers = errors.New("filename contains no conflict markers")

	// ErrMalformedName means the derived fields do not reconstruct the
	// on-disk filename. A successful parse always reconstructs, so this
	// indicates a grammar bug rather than a runtime condition.
	ErrMalformedName = errors.New("derived fields do not reconstruct filename")
)

// Record is one conflict file discovered during a scan.
//
// Selected is the stem of the live file the conflict ultimately traces back
// to (every marker removed). Original is the stem of the file this record
// was derived from one conflict generation ago: Selected plus every marker
// except the last. Conflicts chain, so Original may itself name another
// conflict file.
type Record struct {
	Root string // scan root the file was found under
	Dir  string // directory containing the file
	Name string // filename as found on disk

	Markers  []marker.Marker
	Selected string // live-file stem, markers removed
	Original string // one-generation-back stem, no extension
	Ext      string

	// ParentPath is the canonical path of the record this one descends
	// from, set once by BuildForest. Empty for roots and for records whose
	// ancestor was absent from the scan.
	ParentPath string

	// AncestorMissing marks a non-root record whose ancestor conflict file
	// did not appear in the scan. A data condition, not a failure.
	AncestorMissing bool

	linked bool
}

// New builds a Record from a scanned filename and its parsed markers.
func New(root, dir, name string, markers []marker.Marker) (*Record, error) {
	if len(markers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMarkers, name)
	}

	stripped := marker.Pattern.ReplaceAllString(name, "")
	ext := filepath.Ext(stripped)
	// A dotfile's leading dots do not start an extension: ".bashrc" is
	// all stem, same as os.path.splitext.
	if strings.TrimLeft(strings.TrimSuffix(stripped, ext), ".") == "" {
		ext = ""
	}
	selected := strings.TrimSuffix(stripped, ext)

	r := &Record{
		Root:     root,
		Dir:      dir,
		Name:     name,
		Markers:  markers,
		Selected: selected,
		Original: selected + marker.Format(markers[:len(markers)-1]),
		Ext:      ext,
	}

	// Round-trip check: reinserting the markers before the extension must
	// reproduce the scanned name exactly.
	if reconstructed := selected + marker.Format(markers) + ext; reconstructed != name {
		return nil, fmt.Errorf("%w: %s reconstructs as %s", ErrMalformedName, name, reconstructed)
	}
	return r, nil
}

// IsRoot reports whether this record descends directly from the live file.
// Exactly the single-marker records: with one marker the original stem
// equals the selected stem.
func (r *Record) IsRoot() bool {
	return len(r.Markers) == 1
}

// TopMarker returns the most recent conflict event for this record.
func (r *Record) TopMarker() marker.Marker {
	return r.Markers[len(r.Markers)-1]
}

// OrderKey returns the chronological sort key of the top marker.
func (r *Record) OrderKey() int64 {
	return r.TopMarker().OrderKey()
}

// Age returns how long ago the top conflict event happened, against an
// injected clock value.
func (r *Record) Age(now time.Time) time.Duration {
	return now.Sub(r.TopMarker().Timestamp())
}

// CanonicalPath returns the path of the conflict file itself.
func (r *Record) CanonicalPath() string {
	return filepath.Join(r.Dir, r.Name)
}

// CanonicalSelectedPath returns the path of the live file.
func (r *Record) CanonicalSelectedPath() string {
	return filepath.Join(r.Dir, r.Selected+r.Ext)
}

// CanonicalOriginalPath returns the path of the file this record was
// derived from. For roots it equals CanonicalSelectedPath.
func (r *Record) CanonicalOriginalPath() string {
	return filepath.Join(r.Dir, r.Original+r.Ext)
}
