package review

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/pders01/stsweep/internal/conflict"
)

// Session is one interactive review of a conflict file. It only ever shows
// contents and diffs; nothing is deleted or moved from inside a session.
type Session struct {
	FS     afero.Fs
	Forest *conflict.Forest
	In     io.Reader
	Out    io.Writer

	// Diff runs the side-by-side comparison; defaults to SideBySideDiff.
	Diff func(pathA, pathB string) (string, error)
}

// Run loops over single-line commands until the user quits or input ends.
func (s *Session) Run(r *conflict.Record) error {
	diff := s.Diff
	if diff == nil {
		diff = SideBySideDiff
	}

	conflictPath := r.CanonicalPath()
	selectedPath := r.CanonicalSelectedPath()
	originalPath := r.CanonicalOriginalPath()

	// The original column shows when the ancestor's own conflict happened;
	// ROOT marks records that descend straight from the live file. A
	// non-root whose ancestor was not scanned still carries the ancestor's
	// event time in its own second-to-last marker.
	originalTime := " ROOT "
	if parent := s.Forest.Parent(r); parent != nil {
		originalTime = parent.TopMarker().Timestamp().Format("Jan 02")
	} else if !r.IsRoot() {
		m := r.Markers[len(r.Markers)-2]
		originalTime = m.Timestamp().Format("Jan 02")
	}

	scanner := bufio.NewScanner(s.In)
	for {
		fmt.Fprintln(s.Out)
		fmt.Fprintln(s.Out, "--- PROMPT ---")
		fmt.Fprintf(s.Out, "[%s] %s\n", r.TopMarker().Timestamp().Format("Jan 02"), r.Name)
		fmt.Fprintf(s.Out, "[%s] %s%s\n", originalTime, r.Original, r.Ext)
		fmt.Fprintln(s.Out, "---")
		fmt.Fprintln(s.Out, "sc: show conflict file")
		fmt.Fprintln(s.Out, "so: show original file")
		fmt.Fprintln(s.Out, "sb: show base file")
		fmt.Fprintln(s.Out, "do: diff conflict/original")
		fmt.Fprintln(s.Out, "db: diff conflict/base")
		fmt.Fprintln(s.Out, "qq: quit")
		fmt.Fprintln(s.Out, "---")
		fmt.Fprint(s.Out, ">>> ")

		if !scanner.Scan() {
			// Input closed; exit the session cleanly.
			return scanner.Err()
		}
		line := scanner.Text()
		if len(line) > 2 {
			line = line[:2]
		}

		switch line {
		case "sc", "kc":
			s.showFile(conflictPath)
		case "so", "ko":
			s.showFile(originalPath)
		case "sb", "kb":
			s.showFile(selectedPath)
		case "do":
			s.showDiff(diff, originalPath, conflictPath)
		case "db":
			s.showDiff(diff, selectedPath, conflictPath)
		case "qq":
			return nil
		}
	}
}

func (s *Session) showFile(path string) {
	content, err := afero.ReadFile(s.FS, path)
	if err != nil {
		fmt.Fprintf(s.Out, "failed to show file: %s\n", path)
		fmt.Fprintln(s.Out, err)
		return
	}
	s.Out.Write(content)
}

func (s *Session) showDiff(diff func(string, string) (string, error), pathA, pathB string) {
	fmt.Fprintf(s.Out, ">>> diff --side-by-side %s %s\n", pathA, pathB)
	output, err := diff(pathA, pathB)
	if err != nil {
		fmt.Fprintf(s.Out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(s.Out, "<<< output")
	fmt.Fprint(s.Out, output)
	fmt.Fprintln(s.Out, ">>>")
}
