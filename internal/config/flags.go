package config

import "flag"

// flagFields maps flag names to the config field they set.
var flagFields = map[string]string{
	"data-dir":       "data_dir",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
	"store":          "store.kind",
	"store-key":      "store.key",
	"store-path":     "store.path",
	"sqlite-path":    "store.sqlite_path",
	"nats-url":       "store.nats_url",
	"nats-bucket":    "store.nats_bucket",
}

// parseFlags defines and parses CLI flags. Flags start from the values
// already loaded, so unset flags leave them alone.
// If sources is non-nil, explicitly set flags are recorded.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todolist", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory for stored tasks")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller in logs")

	// Store
	fs.StringVar(&cfg.Store.Kind, "store", cfg.Store.Kind, "Store backend (file|sqlite|nats|memory)")
	fs.StringVar(&cfg.Store.Key, "store-key", cfg.Store.Key, "Store key holding the task list")
	fs.StringVar(&cfg.Store.Path, "store-path", cfg.Store.Path, "Path to the file store")
	fs.StringVar(&cfg.Store.SQLitePath, "sqlite-path", cfg.Store.SQLitePath, "Path to the SQLite database")
	fs.StringVar(&cfg.Store.NATSURL, "nats-url", cfg.Store.NATSURL, "NATS server URL (empty starts an embedded server)")
	fs.StringVar(&cfg.Store.NATSBucket, "nats-bucket", cfg.Store.NATSBucket, "NATS key-value bucket")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
