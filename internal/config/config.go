package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.cliquetis)
	ConfigDir string

	// DatabasePath is the SQLite database file for run history
	DatabasePath string

	// LogFile receives debug logs when --debug is set
	LogFile string
)

// Initialize sets up the configuration directory and global paths,
// creating ~/.cliquetis/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".cliquetis")
	DatabasePath = filepath.Join(ConfigDir, "cliquetis.db")
	LogFile = filepath.Join(ConfigDir, "cliquetis.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}
