package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// appFS is the filesystem every command operates on. Tests swap in an
// in-memory filesystem.
var appFS afero.Fs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   "stsweep",
	Short: "Heuristic cleanup for syncthing conflict files",
	Long: `stsweep scans synced folders for .sync-conflict files, rebuilds the
ancestry between chained conflicts, and resolves each one:
  - stale, duplicate, orphaned and nested conflicts are deleted
  - fresh, unique conflicts are reviewed interactively
  - everything else is quarantined into a backup directory

Without --commit every action is previewed, nothing is touched.`,
	Version: "0.1.0",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stsweep/config.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "stsweep")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("backup_dir", ".stbackups")
	viper.SetDefault("version_dir", ".stversions")
	viper.SetDefault("marker_dir", ".stfolder")
	viper.SetDefault("thresholds.old_days", 30)
	viper.SetDefault("thresholds.young_days", 5)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
