package cmd

import "testing"

func TestInspectConflictName(t *testing.T) {
	err := runInspect(nil, []string{"report.sync-conflict-20230101-120000-ABC1234.txt"})
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
}

func TestInspectChainedName(t *testing.T) {
	name := "report.sync-conflict-20230101-120000-ABC1234.sync-conflict-20230105-090000-XYZ9876.txt"
	if err := runInspect(nil, []string{name}); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
}

func TestInspectPlainName(t *testing.T) {
	if err := runInspect(nil, []string{"report.txt"}); err == nil {
		t.Error("expected an error for a name without markers")
	}
}
