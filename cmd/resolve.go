package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/stsweep/internal/action"
	"github.com/pders01/stsweep/internal/config"
	"github.com/pders01/stsweep/internal/conflict"
	"github.com/pders01/stsweep/internal/heuristic"
	"github.com/pders01/stsweep/internal/review"
	"github.com/pders01/stsweep/internal/scan"
)

var resolveCommit bool

// reviewIn feeds the interactive review sessions. Tests swap in scripted
// input.
var reviewIn io.Reader = os.Stdin

var resolveCmd = &cobra.Command{
	Use:   "resolve [paths...]",
	Short: "Scan synced folders and resolve their conflict files",
	Long: `Scan one or more synced folders for conflict files, classify each
one and resolve it.

Classification is a fixed chain of heuristics; the first that holds wins:
  OLD            older than thresholds.old_days         -> delete
  OBSOLETE_BASE  the live file has vanished             -> delete
  SAME_CONTENT   live file and ancestor are identical   -> delete
  ORPHANED       the ancestor file has vanished         -> delete
  NESTED         descends from another conflict         -> delete
  YOUNG          younger than thresholds.young_days     -> interactive review
  NONE           anything else                          -> backup

Every path must be a synchronizer folder (contain a .stfolder directory).

Example:
  stsweep resolve ~/Sync              # preview only
  stsweep resolve --commit ~/Sync     # actually resolve`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolVar(&resolveCommit, "commit", false, "Actually delete, move and review files")
	resolveCmd.Flags().String("backup-dir", ".stbackups", "Quarantine directory name")
	resolveCmd.Flags().String("version-dir", ".stversions", "Synchronizer versioning directory (reserved)")
	viper.BindPFlag("backup_dir", resolveCmd.Flags().Lookup("backup-dir"))
	viper.BindPFlag("version_dir", resolveCmd.Flags().Lookup("version-dir"))
}

func runResolve(cmd *cobra.Command, args []string) error {
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

	checker := &heuristic.Checker{
		FS:       appFS,
		Now:      time.Now().UTC(),
		OldAge:   config.OldThreshold(),
		YoungAge: config.YoungThreshold(),
	}

	groups := make(map[action.Action][]*conflict.Record)
	for _, rec := range forest.Records() {
		class, err := checker.Classify(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", rec.Name, err)
			continue
		}
		act := action.ForClassification(class)
		groups[act] = append(groups[act], rec)
	}
	for _, recs := range groups {
		sort.Slice(recs, func(i, j int) bool { return recs[i].OrderKey() < recs[j].OrderKey() })
	}

	printReport(groups)

	executor := &action.Executor{
		FS:        appFS,
		Commit:    resolveCommit,
		BackupDir: config.BackupDirName(),
		Out:       os.Stdout,
	}
	for _, rec := range groups[action.Delete] {
		if err := executor.Delete(rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	for _, rec := range groups[action.Backup] {
		if err := executor.Backup(rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	for _, rec := range groups[action.Prompt] {
		if !resolveCommit {
			fmt.Printf("prompt: %s\n", rec.Name)
			continue
		}
		session := &review.Session{FS: appFS, Forest: forest, In: reviewIn, Out: os.Stdout}
		if err := session.Run(rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: review of %s: %v\n", rec.Name, err)
		}
	}
	return nil
}

// printReport lists every conflict under its action heading, in action
// order, with per-action counts.
func printReport(groups map[action.Action][]*conflict.Record) {
	fmt.Printf("Sweep %s\n\n", uuid.NewString())
	for i, act := range action.Order {
		if i > 0 {
			fmt.Println()
		}
		recs := groups[act]
		fmt.Printf("[%s] %d files total\n", act, len(recs))
		for _, rec := range recs {
			fmt.Println(rec.Name)
		}
	}
	fmt.Println()
}
