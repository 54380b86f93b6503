package action

import (
	"testing"

	"github.com/pders01/stsweep/internal/heuristic"
)

func TestForClassificationTotal(t *testing.T) {
	tests := map[heuristic.Classification]Action{
		heuristic.Old:          Delete,
		heuristic.SameContent:  Delete,
		heuristic.Nested:       Delete,
		heuristic.Orphaned:     Delete,
		heuristic.ObsoleteBase: Delete,
		heuristic.Young:        Prompt,
		heuristic.None:         Backup,
	}
	for class, want := range tests {
		if got := ForClassification(class); got != want {
			t.Errorf("ForClassification(%v) = %v, want %v", class, got, want)
		}
	}
}

func TestOnlyYoungPrompts(t *testing.T) {
	classes := []heuristic.Classification{
		heuristic.None, heuristic.Old, heuristic.SameContent,
		heuristic.Nested, heuristic.Orphaned, heuristic.ObsoleteBase,
		heuristic.Young,
	}
	for _, class := range classes {
		got := ForClassification(class)
		if got == Prompt && class != heuristic.Young {
			t.Errorf("%v maps to PROMPT", class)
		}
		if got == Backup && class != heuristic.None {
			t.Errorf("%v maps to BACKUP", class)
		}
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		Delete: "DELETE",
		Backup: "BACKUP",
		Prompt: "PROMPT",
	}
	for act, want := range tests {
		if got := act.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestOrder(t *testing.T) {
	want := []Action{Delete, Backup, Prompt}
	if len(Order) != len(want) {
		t.Fatalf("Order has %d entries", len(Order))
	}
	for i, act := range want {
		if Order[i] != act {
			t.Errorf("Order[%d] = %v, want %v", i, Order[i], act)
		}
	}
}
