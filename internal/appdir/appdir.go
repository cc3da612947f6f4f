// Package appdir names the files todolist keeps on disk.
package appdir

import "path/filepath"

const (
	// Dir is the name of the per-user state directory under $HOME.
	Dir = ".todolist"

	// StoreFile is the file store inside the data directory.
	StoreFile = "storage.json"

	// SQLiteFile is the SQLite database inside the data directory.
	SQLiteFile = "todolist.db"

	// NATSDir holds embedded NATS JetStream state inside the data directory.
	NATSDir = "nats"

	// LogsDir holds per-run logs inside the state directory.
	LogsDir = "logs"

	// ConfigFile is the config file name, both per user and per project.
	ConfigFile = "todolist.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".todolist.toml"

	// DotEnvFile is the project .env overlay.
	DotEnvFile = ".env"
)

// HomePath returns the state directory under home, or the relative Dir when
// home is empty.
func HomePath(home string) string {
	if home == "" {
		return Dir
	}
	return filepath.Join(home, Dir)
}

// UserConfigPath returns the per-user config file under home.
func UserConfigPath(home string) string {
	return filepath.Join(HomePath(home), ConfigFile)
}

// ProjectConfigPaths returns the project config candidates in lookup order.
func ProjectConfigPaths(root string) []string {
	return []string{
		filepath.Join(root, ConfigFile),
		filepath.Join(root, HiddenConfigFile),
	}
}

// StorePath returns the file store path inside dataDir.
func StorePath(dataDir string) string {
	return filepath.Join(dataDir, StoreFile)
}

// SQLitePath returns the SQLite database path inside dataDir.
func SQLitePath(dataDir string) string {
	return filepath.Join(dataDir, SQLiteFile)
}

// NATSPath returns the embedded NATS storage directory inside dataDir.
func NATSPath(dataDir string) string {
	return filepath.Join(dataDir, NATSDir)
}
