package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/pders01/stsweep/internal/action"
	"github.com/pders01/stsweep/internal/config"
	"github.com/pders01/stsweep/internal/conflict"
	"github.com/pders01/stsweep/internal/heuristic"
	"github.com/pders01/stsweep/internal/scan"
)

var (
	listJSON     bool
	listToon     bool
	listRootOnly bool
)

var listCmd = &cobra.Command{
	Use:   "list [paths...]",
	Short: "List conflict files found under synced folders",
	Long: `List every conflict file under the given synced folders, with its
marker chain, age, ancestry and the action a resolve run would take.

Examples:
  stsweep list ~/Sync
  stsweep list --root-only ~/Sync
  stsweep list --json ~/Sync`,
	Args: cobra.MinimumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listToon, "toon", false, "Output in LLM-friendly toon format")
	listCmd.Flags().BoolVar(&listRootOnly, "root-only", false, "Show only conflicts descending directly from live files")
}

type conflictInfo struct {
	Path            string       `json:"path"`
	Name            string       `json:"name"`
	Selected        string       `json:"selected"`
	Original        string       `json:"original"`
	Markers         []markerInfo `json:"markers"`
	Root            bool         `json:"root"`
	Parent          string       `json:"parent,omitempty"`
	Children        []string     `json:"children,omitempty"`
	AncestorMissing bool         `json:"ancestor_missing,omitempty"`
	AgeDays         int          `json:"age_days"`
	Classification  string       `json:"classification"`
	Action          string       `json:"action"`
}

type markerInfo struct {
	Timestamp time.Time `json:"timestamp"`
	ReplicaID string    `json:"replica_id"`
}

func runList(cmd *cobra.Command, args []string) error {
	scanner := &scan.Scanner{
		FS:        appFS,
		MarkerDir: config.MarkerDirName(),
		BackupDir: config.BackupDirName(),
		Warn:      os.Stderr,
	}
	records, err := scanner.Scan(args)
	if err != nil {
		return err
	}

	forest, err := conflict.BuildForest(records)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	checker := &heuristic.Checker{
		FS:       appFS,
		Now:      now,
		OldAge:   config.OldThreshold(),
		YoungAge: config.YoungThreshold(),
	}

	var infos []conflictInfo
	for _, rec := range forest.Records() {
		if listRootOnly && !rec.IsRoot() {
			continue
		}

		class, err := checker.Classify(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", rec.Name, err)
			continue
		}

		info := conflictInfo{
			Path:            rec.CanonicalPath(),
			Name:            rec.Name,
			Selected:        rec.Selected + rec.Ext,
			Original:        rec.Original + rec.Ext,
			Root:            rec.IsRoot(),
			Parent:          rec.ParentPath,
			AncestorMissing: rec.AncestorMissing,
			AgeDays:         int(rec.Age(now).Hours() / 24),
			Classification:  class.String(),
			Action:          action.ForClassification(class).String(),
		}
		for _, m := range rec.Markers {
			info.Markers = append(info.Markers, markerInfo{Timestamp: m.Timestamp(), ReplicaID: m.ReplicaID})
		}
		for _, child := range forest.Children(rec) {
			info.Children = append(info.Children, child.Name)
		}
		infos = append(infos, info)
	}

	if len(infos) == 0 {
		fmt.Println("No conflict files found")
		return nil
	}

	// Sort chronologically, oldest conflict event first
	sort.Slice(infos, func(i, j int) bool {
		a := infos[i].Markers[len(infos[i].Markers)-1].Timestamp
		b := infos[j].Markers[len(infos[j].Markers)-1].Timestamp
		return a.Before(b)
	})

	// Output JSON if requested
	if listJSON {
		output, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	// Output Toon if requested
	if listToon {
		output, err := gotoon.Encode(infos)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Found %d conflict file(s):\n\n", len(infos))
	for _, info := range infos {
		fmt.Printf("  %s\n", info.Name)
		fmt.Printf("    Live file: %s\n", info.Selected)
		if !info.Root {
			fmt.Printf("    Ancestor:  %s\n", info.Original)
		}
		if info.AncestorMissing {
			fmt.Printf("    Ancestor missing from scan\n")
		}
		if len(info.Children) > 0 {
			fmt.Printf("    Descendants: %d\n", len(info.Children))
		}
		fmt.Printf("    Age:       %s\n", formatAge(info.AgeDays))
		fmt.Printf("    Verdict:   %s -> %s\n", info.Classification, info.Action)
		fmt.Println()
	}
	return nil
}

func formatAge(days int) string {
	if days == 0 {
		return "< 1 day"
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
