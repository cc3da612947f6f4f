package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// lookupFunc resolves an environment variable and reports where it came from.
type lookupFunc func(name string) (string, ConfigSource, bool)

// readDotEnv reads key/value pairs from path. A missing file yields nil.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return godotenv.Read(path)
}

// envLookup prefers the real environment over .env values.
func envLookup(dotenv map[string]string) lookupFunc {
	return func(name string) (string, ConfigSource, bool) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v, SourceEnv, true
		}
		if v, ok := dotenv[name]; ok && v != "" {
			return v, SourceDotEnv, true
		}
		return "", "", false
	}
}

// envBinding maps one variable onto one config field.
type envBinding struct {
	name  string
	field string
	apply func(cfg *Config, value string)
}

func envBindings() []envBinding {
	return []envBinding{
		{"TODOLIST_DATA_DIR", "data_dir", func(c *Config, v string) { c.DataDir = v }},
		{"TODOLIST_LOG_DIR", "log_dir", func(c *Config, v string) { c.LogDir = v }},
		{"TODOLIST_LOG_LEVEL", "log_level", func(c *Config, v string) { c.LogLevel = v }},
		{"TODOLIST_LOG_FORMAT", "log_format", func(c *Config, v string) { c.LogFormat = v }},
		{"TODOLIST_LOG_TIMESTAMPS", "log_timestamps", func(c *Config, v string) { c.LogTimestamps = boolFromString(v) }},
		{"TODOLIST_LOG_CALLER", "log_caller", func(c *Config, v string) { c.LogCaller = boolFromString(v) }},
		{"TODOLIST_STORE", "store.kind", func(c *Config, v string) { c.Store.Kind = v }},
		{"TODOLIST_STORE_KEY", "store.key", func(c *Config, v string) { c.Store.Key = v }},
		{"TODOLIST_STORE_PATH", "store.path", func(c *Config, v string) { c.Store.Path = v }},
		{"TODOLIST_SQLITE_PATH", "store.sqlite_path", func(c *Config, v string) { c.Store.SQLitePath = v }},
		{"TODOLIST_NATS_URL", "store.nats_url", func(c *Config, v string) { c.Store.NATSURL = v }},
		{"TODOLIST_NATS_BUCKET", "store.nats_bucket", func(c *Config, v string) { c.Store.NATSBucket = v }},
	}
}

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, lookup lookupFunc, sources map[string]ConfigSource) {
	for _, b := range envBindings() {
		v, source, ok := lookup(b.name)
		if !ok {
			continue
		}
		b.apply(cfg, v)
		markSource(sources, b.field, source)
	}
}

func boolFromString(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
