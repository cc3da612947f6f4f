package config

import "github.com/nibzard/todolist-go/internal/appdir"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceDotEnv   ConfigSource = "dotenv"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultDataDir    = "~/.todolist"
	DefaultLogDir     = "~/.todolist/logs"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultStoreKind  = "file"
	DefaultStoreKey   = "tasks"
	DefaultNATSBucket = "todolist"
)

// Config holds the full configuration for todolist.
type Config struct {
	// Paths
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	Store StoreConfig `toml:"store"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// StoreConfig selects the key-value backend that persists the task list.
type StoreConfig struct {
	Kind       string `toml:"kind"` // file, sqlite, nats or memory
	Key        string `toml:"key"`
	Path       string `toml:"path"` // file backend, defaults to <data_dir>/storage.json
	SQLitePath string `toml:"sqlite_path"`
	NATSURL    string `toml:"nats_url"` // empty starts an embedded server
	NATSBucket string `toml:"nats_bucket"`
}

// NATSDir returns the storage directory for the embedded NATS server.
func (c *Config) NATSDir() string {
	return appdir.NATSPath(c.DataDir)
}
