package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pders01/stsweep/internal/conflict"
	"github.com/pders01/stsweep/internal/marker"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the parsed structure of a conflict filename",
	Long: `Parse a conflict filename and print its marker chain and derived
fields. The file does not have to exist; only the name is examined.

Example:
  stsweep inspect 'report.sync-conflict-20230101-120000-ABC1234.txt'`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	dir := filepath.Dir(args[0])
	name := filepath.Base(args[0])

	markers := marker.Parse(name)
	if len(markers) == 0 {
		return fmt.Errorf("%s carries no conflict markers", name)
	}

	rec, err := conflict.New(dir, dir, name, markers)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", rec.Name)
	fmt.Printf("  Live file: %s%s\n", rec.Selected, rec.Ext)
	fmt.Printf("  Ancestor:  %s%s\n", rec.Original, rec.Ext)
	fmt.Printf("  Root:      %v\n", rec.IsRoot())
	fmt.Printf("  Order key: %d\n", rec.OrderKey())
	fmt.Println()

	fmt.Printf("  Markers (%d):\n", len(rec.Markers))
	for i, m := range rec.Markers {
		fmt.Printf("    %d. %s  replica %s\n", i+1, m.Timestamp().Format("2006-01-02 15:04:05"), m.ReplicaID)
	}
	return nil
}
