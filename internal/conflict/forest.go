package conflict

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateCanonicalPath means two scanned records resolved to the
	// same canonical path, which the filesystem should make impossible.
	ErrDuplicateCanonicalPath = errors.New("duplicate canonical path in scan")

	// ErrAlreadyLinked means BuildForest ran twice over the same records.
	ErrAlreadyLinked = errors.New("records already linked into a forest")
)

// Forest links conflict records to the records they descend from. Records
// are addressed by canonical path; parent links are stored as paths rather
// than object references, with the children index derived from them.
type Forest struct {
	index    map[string]*Record
	children map[string][]string
	roots    []*Record
}

// BuildForest reconstructs the ancestry forest for one scan result. It runs
// exactly once per scan: rebuilding an already-linked set fails with
// ErrAlreadyLinked, and two records sharing a canonical path fail with
// ErrDuplicateCanonicalPath.
//
// A non-root record whose ancestor conflict file was absent from the scan
// is left parentless and flagged AncestorMissing; whether the ancestor is
// missing from disk as well is a classification concern, not a structural
// one.
func BuildForest(records []*Record) (*Forest, error) {
	f := &Forest{
		index:    make(map[string]*Record, len(records)),
		children: make(map[string][]string),
	}

	for _, r := range records {
		if r.linked {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyLinked, r.CanonicalPath())
		}
		path := r.CanonicalPath()
		if _, ok := f.index[path]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCanonicalPath, path)
		}
		f.index[path] = r
	}

	for _, r := range records {
		r.linked = true
		if r.IsRoot() {
			f.roots = append(f.roots, r)
			continue
		}
		parentPath := r.CanonicalOriginalPath()
		parent, ok := f.index[parentPath]
		if !ok {
			r.AncestorMissing = true
			continue
		}
		r.ParentPath = parent.CanonicalPath()
		f.children[r.ParentPath] = append(f.children[r.ParentPath], r.CanonicalPath())
	}

	sort.Slice(f.roots, func(i, j int) bool {
		return f.roots[i].CanonicalPath() < f.roots[j].CanonicalPath()
	})
	return f, nil
}

// Lookup returns the record at a canonical path, or nil.
func (f *Forest) Lookup(path string) *Record {
	return f.index[path]
}

// Parent returns the record r descends from, or nil for roots and records
// whose ancestor was not scanned.
func (f *Forest) Parent(r *Record) *Record {
	if r.ParentPath == "" {
		return nil
	}
	return f.index[r.ParentPath]
}

// Children returns the records that descend from r.
func (f *Forest) Children(r *Record) []*Record {
	paths := f.children[r.CanonicalPath()]
	out := make([]*Record, 0, len(paths))
	for _, p := range paths {
		out = append(out, f.index[p])
	}
	return out
}

// Roots returns the records that descend directly from live files, sorted
// by canonical path.
func (f *Forest) Roots() []*Record {
	return f.roots
}

// Records returns every linked record, sorted by canonical path.
func (f *Forest) Records() []*Record {
	out := make([]*Record, 0, len(f.index))
	for _, r := range f.index {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CanonicalPath() < out[j].CanonicalPath()
	})
	return out
}
