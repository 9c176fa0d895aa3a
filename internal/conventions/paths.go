package conventions

import "path/filepath"

const (
	// DefaultConfigDir is the default task-cli configuration directory name (relative to home).
	DefaultConfigDir = ".task-cli"
	// ConfigFile is the configuration filename inside the configuration directory.
	ConfigFile = "config.yaml"

	// Store files.

	// JSONStoreFile is the JSON store filename, relative to the working directory.
	JSONStoreFile = "tasks.json"
	// SQLiteStoreFile is the SQLite store filename, relative to the working directory.
	SQLiteStoreFile = "tasks.db"
	// LockFileSuffix is appended to a store path to get its lock file.
	LockFileSuffix = ".lock"
)

// ConfigPath returns the configuration file path for a home directory.
func ConfigPath(homeDir string) string {
	return filepath.Join(homeDir, DefaultConfigDir, ConfigFile)
}

// LockPath returns the lock file path for a store.
func LockPath(storePath string) string {
	return storePath + LockFileSuffix
}
