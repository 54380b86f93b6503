package heuristic

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/spf13/afero"

	"github.com/pders01/stsweep/internal/conflict"
)

// Classification is the outcome of the heuristic chain for one record.
type Classification int

const (
	None Classification = iota
	Old
	SameContent
	Nested
	Orphaned
	ObsoleteBase
	Young
)

func (c Classification) String() string {
	switch c {
	case None:
		return "NONE"
	case Old:
		return "OLD"
	case SameContent:
		return "SAME_CONTENT"
	case Nested:
		return "NESTED"
	case Orphaned:
		return "ORPHANED"
	case ObsoleteBase:
		return "OBSOLETE_BASE"
	case Young:
		return "YOUNG"
	}
	return fmt.Sprintf("Classification(%d)", int(c))
}

// Checker classifies conflict records against an injected clock and
// filesystem. Now is fixed by the caller per run, never read implicitly.
type Checker struct {
	FS       afero.Fs
	Now      time.Time
	OldAge   time.Duration // stale threshold, conflicts older than this
	YoungAge time.Duration // fresh threshold, conflicts younger than this
}

// Classify evaluates the heuristics in a fixed order and returns the first
// that holds. Destructive conditions (stale age, vanished base, duplicate
// content, vanished ancestor, nesting) all outrank freshness, so freshness
// alone never blocks an otherwise-safe cleanup.
//
// An error is returned only for filesystem failures while probing; the
// caller reports and moves on to the remaining records.
func (c *Checker) Classify(r *conflict.Record) (Classification, error) {
	if r.Age(c.Now) > c.OldAge {
		return Old, nil
	}

	selectedExists, err := c.fileExists(r.CanonicalSelectedPath())
	if err != nil {
		return None, err
	}
	if !selectedExists {
		return ObsoleteBase, nil
	}

	originalExists, err := c.fileExists(r.CanonicalOriginalPath())
	if err != nil {
		return None, err
	}
	// For roots the ancestor is the live file itself; comparing a file
	// with itself proves nothing about the conflict.
	if originalExists && !r.IsRoot() {
		same, err := c.sameContent(r.CanonicalSelectedPath(), r.CanonicalOriginalPath())
		if err != nil {
			return None, err
		}
		if same {
			return SameContent, nil
		}
	}

	if !originalExists {
		return Orphaned, nil
	}
	if r.ParentPath != "" {
		return Nested, nil
	}
	if r.Age(c.Now) < c.YoungAge {
		return Young, nil
	}
	return None, nil
}

func (c *Checker) fileExists(path string) (bool, error) {
	info, err := c.FS.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return !info.IsDir(), nil
}

// sameContent reports whether two files are byte-for-byte identical, by
// comparing whole-file SHA-256 digests over the raw bytes.
func (c *Checker) sameContent(pathA, pathB string) (bool, error) {
	digestA, err := c.hashFile(pathA)
	if err != nil {
		return false, err
	}
	digestB, err := c.hashFile(pathB)
	if err != nil {
		return false, err
	}
	return digestA == digestB, nil
}

func (c *Checker) hashFile(path string) ([sha256.Size]byte, error) {
	var digest [sha256.Size]byte
	f, err := c.FS.Open(path)
	if err != nil {
		return digest, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return digest, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	copy(digest[:], h.Sum(nil))
	return digest, nil
}
