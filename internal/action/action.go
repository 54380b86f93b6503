package action

import (
	"fmt"

	"github.com/pders01/stsweep/internal/heuristic"
)

// Action is what the resolver does with a classified conflict file.
type Action int

const (
	Delete Action = iota
	Backup
	Prompt
)

func (a Action) String() string {
	switch a {
	case Delete:
		return "DELETE"
	case Backup:
		return "BACKUP"
	case Prompt:
		return "PROMPT"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Order is the sequence actions are reported and executed in.
var Order = []Action{Delete, Backup, Prompt}

// ForClassification maps every classification to exactly one action.
// Destructive classifications delete, fresh unique conflicts go to
// interactive review, everything else is quarantined.
func ForClassification(c heuristic.Classification) Action {
	switch c {
	case heuristic.Old,
		heuristic.SameContent,
		heuristic.Nested,
		heuristic.Orphaned,
		heuristic.ObsoleteBase:
		return Delete
	case heuristic.Young:
		return Prompt
	case heuristic.None:
		return Backup
	}
	return Backup
}
