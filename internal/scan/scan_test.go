package scan

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pders01/stsweep/internal/testutil"
)

func newScanner(f *testutil.SyncFolder) *Scanner {
	return &Scanner{
		FS:        f.FS,
		MarkerDir: ".stfolder",
		BackupDir: ".stbackups",
		Warn:      &bytes.Buffer{},
	}
}

func TestScanFindsConflicts(t *testing.T) {
	f := testutil.NewSyncFolder(t)
	f.CreateFile("report.txt", "current\n")
	f.CreateFile("report.sync-conflict-20230101-120000-ABC1234.txt", "conflicting\n")
	f.CreateFile(filepath.Join("nested", "notes.sync-conflict-20230201-080000-DEF5678.md"), "notes\n")

	records, err := newScanner(f).Scan([]string{f.Root})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestScanDotfileConflict(t *testing.T) {
	// A hidden-file conflict must neither abort the scan nor drop the
	// sibling records found alongside it.
	f := testutil.NewSyncFolder(t)
	f.CreateFile(".bashrc", "export PATH\n")
	f.CreateFile(".bashrc.sync-conflict-20230101-120000-ABC1234", "export PATH=old\n")
	f.CreateFile("report.sync-conflict-20230201-080000-DEF5678.txt", "conflicting\n")

	records, err := newScanner(f).Scan([]string{f.Root})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Name == ".bashrc.sync-conflict-20230101-120000-ABC1234" {
			return
		}
	}
	t.Error("dotfile conflict missing from scan results")
}

func TestScanIgnoresPlainFiles(t *testing.T) {
	f := testutil.NewSyncFolder(t)
	f.CreateFile("report.txt", "current\n")
	f.CreateFile("sync-conflict-lookalike.txt", "not a conflict\n")

	records, err := newScanner(f).Scan([]string{f.Root})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestScanSkipsBackupDir(t *testing.T) {
	f := testutil.NewSyncFolder(t)
	f.CreateFile(filepath.Join(".stbackups", "report.sync-conflict-20230101-120000-ABC1234.txt"), "quarantined\n")

	records, err := newScanner(f).Scan([]string{f.Root})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("prior backups were rescanned: %d records", len(records))
	}
}

func TestScanMissingPrecondition(t *testing.T) {
	f := testutil.NewSyncFolder(t)
	bare := "/plain"
	if err := f.FS.MkdirAll(bare, 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	_, err := newScanner(f).Scan([]string{bare})
	if !errors.Is(err, ErrMissingPrecondition) {
		t.Errorf("expected ErrMissingPrecondition, got %v", err)
	}
}

func TestScanPreconditionBeforeAnyResult(t *testing.T) {
	// One good root, one bad root: the whole scan aborts.
	f := testutil.NewSyncFolder(t)
	f.CreateFile("report.sync-conflict-20230101-120000-ABC1234.txt", "conflicting\n")
	bare := "/plain"
	if err := f.FS.MkdirAll(bare, 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	_, err := newScanner(f).Scan([]string{f.Root, bare})
	if !errors.Is(err, ErrMissingPrecondition) {
		t.Errorf("expected ErrMissingPrecondition, got %v", err)
	}
}

func TestScanRecordFields(t *testing.T) {
	f := testutil.NewSyncFolder(t)
	name := "report.sync-conflict-20230101-120000-ABC1234.txt"
	f.CreateFile(filepath.Join("docs", name), "conflicting\n")

	records, err := newScanner(f).Scan([]string{f.Root})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Root != f.Root {
		t.Errorf("Root = %q, want %q", rec.Root, f.Root)
	}
	if rec.Dir != filepath.Join(f.Root, "docs") {
		t.Errorf("Dir = %q", rec.Dir)
	}
	if rec.Name != name {
		t.Errorf("Name = %q", rec.Name)
	}
}
