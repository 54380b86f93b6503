package config

import (
	"time"

	"github.com/spf13/viper"
)

// BackupDirName returns the quarantine directory name created under each
// scan root.
func BackupDirName() string {
	return viper.GetString("backup_dir")
}

// VersionDirName returns the synchronizer's versioning directory name.
// Accepted for compatibility; currently reserved and unused.
func VersionDirName() string {
	return viper.GetString("version_dir")
}

// MarkerDirName returns the subdirectory every scan root must contain to
// count as a synchronizer folder.
func MarkerDirName() string {
	return viper.GetString("marker_dir")
}

// OldThreshold returns the age beyond which a conflict is considered stale.
func OldThreshold() time.Duration {
	return time.Duration(viper.GetInt("thresholds.old_days")) * 24 * time.Hour
}

// YoungThreshold returns the age below which a conflict is considered
// fresh enough for interactive review.
func YoungThreshold() time.Duration {
	return time.Duration(viper.GetInt("thresholds.young_days")) * 24 * time.Hour
}
