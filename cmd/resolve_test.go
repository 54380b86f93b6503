package cmd

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/pders01/stsweep/internal/testutil"
)

func setupResolve(t *testing.T) *testutil.SyncFolder {
	t.Helper()

	f := testutil.NewSyncFolder(t)
	oldFS := appFS
	appFS = f.FS
	t.Cleanup(func() { appFS = oldFS })

	viper.Set("backup_dir", ".stbackups")
	viper.Set("version_dir", ".stversions")
	viper.Set("marker_dir", ".stfolder")
	viper.Set("thresholds.old_days", 30)
	viper.Set("thresholds.young_days", 5)
	t.Cleanup(viper.Reset)

	return f
}

func TestResolveDryRun(t *testing.T) {
	f := setupResolve(t)
	now := time.Now().UTC()

	oldName := testutil.ConflictName("report", now.AddDate(0, 0, -45), "ABC1234", ".txt")
	midName := testutil.ConflictName("report", now.AddDate(0, 0, -10), "DEF5678", ".txt")
	f.CreateFile("report.txt", "current\n")
	f.CreateFile(oldName, "stale\n")
	f.CreateFile(midName, "unresolved\n")

	resolveCommit = false
	if err := runResolve(nil, []string{f.Root}); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if !f.Exists(oldName) || !f.Exists(midName) {
		t.Error("dry run mutated files")
	}
	if f.Exists(".stbackups") {
		t.Error("dry run created the quarantine directory")
	}
}

func TestResolveCommit(t *testing.T) {
	f := setupResolve(t)
	now := time.Now().UTC()

	oldName := testutil.ConflictName("report", now.AddDate(0, 0, -45), "ABC1234", ".txt")
	midName := testutil.ConflictName("report", now.AddDate(0, 0, -10), "DEF5678", ".txt")
	f.CreateFile("report.txt", "current\n")
	f.CreateFile(oldName, "stale\n")
	f.CreateFile(midName, "unresolved\n")

	resolveCommit = true
	defer func() { resolveCommit = false }()

	if err := runResolve(nil, []string{f.Root}); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if f.Exists(oldName) {
		t.Error("stale conflict not deleted")
	}
	if f.Exists(midName) {
		t.Error("unresolved conflict not quarantined")
	}
	if !f.Exists(filepath.Join(".stbackups", midName)) {
		t.Error("quarantined conflict missing from backup directory")
	}
	if !f.Exists("report.txt") {
		t.Error("live file touched")
	}
}

func TestResolveCommitReviewsYoung(t *testing.T) {
	f := setupResolve(t)
	now := time.Now().UTC()

	youngName := testutil.ConflictName("report", now.AddDate(0, 0, -1), "ABC1234", ".txt")
	f.CreateFile("report.txt", "current\n")
	f.CreateFile(youngName, "fresh\n")

	resolveCommit = true
	defer func() { resolveCommit = false }()

	oldIn := reviewIn
	reviewIn = strings.NewReader("qq\n")
	defer func() { reviewIn = oldIn }()

	if err := runResolve(nil, []string{f.Root}); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// The review exits on qq without touching anything.
	if !f.Exists(youngName) || !f.Exists("report.txt") {
		t.Error("review session mutated files")
	}
}

func TestResolveMissingPrecondition(t *testing.T) {
	f := setupResolve(t)
	bare := "/plain"
	if err := f.FS.MkdirAll(bare, 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	resolveCommit = false
	if err := runResolve(nil, []string{bare}); err == nil {
		t.Error("expected an error for a root without the marker directory")
	}
}

func TestResolveEmptyFolder(t *testing.T) {
	f := setupResolve(t)
	f.CreateFile("report.txt", "current\n")

	resolveCommit = false
	if err := runResolve(nil, []string{f.Root}); err != nil {
		t.Fatalf("resolve failed on a conflict-free folder: %v", err)
	}
}

func TestResolveSkipsQuarantine(t *testing.T) {
	f := setupResolve(t)
	now := time.Now().UTC()

	quarantined := testutil.ConflictName("report", now.AddDate(0, 0, -45), "ABC1234", ".txt")
	f.CreateFile(filepath.Join(".stbackups", quarantined), "already handled\n")

	resolveCommit = true
	defer func() { resolveCommit = false }()

	if err := runResolve(nil, []string{f.Root}); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ok, _ := afero.Exists(f.FS, filepath.Join(f.Root, ".stbackups", quarantined)); !ok {
		t.Error("prior backup was processed again")
	}
}
