package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/todolist-go/internal/appdir"
	"github.com/nibzard/todolist-go/internal/store"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.todolist/todolist.toml or OS-specific config dir)
// 3. Project config file (todolist.toml or .todolist.toml in current directory)
// 4. .env file in the current directory
// 5. Environment variables
// 6. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := load(fs, args, nil)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	return load(fs, args, make(map[string]ConfigSource))
}

// load is the shared implementation. If sources is non-nil, it tracks the
// source of each value.
func load(fs *flag.FlagSet, args []string, sources map[string]ConfigSource) (*ConfigWithSources, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)
	for _, field := range configFields() {
		markSource(sources, field, SourceDefault)
	}

	var files []string

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		files = append(files, userConfigFile)
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		files = append(files, projectConfigFile)
	}

	// 4 + 5. Override from .env and environment
	dotenv, err := readDotEnv(appdir.DotEnvFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", appdir.DotEnvFile, err)
	}
	loadFromEnv(cfg, envLookup(dotenv), sources)

	// 6. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 7. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
		Files:   files,
	}, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"data_dir",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"store.kind",
		"store.key",
		"store.path",
		"store.sqlite_path",
		"store.nats_url",
		"store.nats_bucket",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataDir = DefaultDataDir
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Store.Kind = DefaultStoreKind
	cfg.Store.Key = DefaultStoreKey
	cfg.Store.NATSBucket = DefaultNATSBucket
}

// loadConfigFile decodes TOML over cfg and records which keys the file set.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if sources == nil {
		return nil
	}
	for _, field := range configFields() {
		if md.IsDefined(strings.Split(field, ".")...) {
			sources[field] = source
		}
	}
	return nil
}

func markSource(sources map[string]ConfigSource, field string, source ConfigSource) {
	if sources != nil {
		sources[field] = source
	}
}

// finalizeConfig computes derived values and validates the store kind.
func finalizeConfig(cfg *Config) error {
	// Determine project root
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	cfg.DataDir = resolvePath(cfg.ProjectRoot, cfg.DataDir)
	cfg.LogDir = resolvePath(cfg.ProjectRoot, cfg.LogDir)

	cfg.Store.Kind = strings.ToLower(strings.TrimSpace(cfg.Store.Kind))
	if cfg.Store.Kind == "" {
		cfg.Store.Kind = DefaultStoreKind
	}
	if !store.ValidKind(cfg.Store.Kind) {
		return fmt.Errorf("invalid store kind %q (expected file|sqlite|nats|memory)", cfg.Store.Kind)
	}
	if cfg.Store.Key == "" {
		cfg.Store.Key = DefaultStoreKey
	}
	if cfg.Store.NATSBucket == "" {
		cfg.Store.NATSBucket = DefaultNATSBucket
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = appdir.StorePath(cfg.DataDir)
	} else {
		cfg.Store.Path = resolvePath(cfg.ProjectRoot, cfg.Store.Path)
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = appdir.SQLitePath(cfg.DataDir)
	} else if cfg.Store.SQLitePath != ":memory:" {
		cfg.Store.SQLitePath = resolvePath(cfg.ProjectRoot, cfg.Store.SQLitePath)
	}

	return nil
}

// StoreOptions maps the store section onto backend options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Kind:       c.Store.Kind,
		Path:       c.Store.Path,
		SQLitePath: c.Store.SQLitePath,
		NATSURL:    c.Store.NATSURL,
		NATSBucket: c.Store.NATSBucket,
		NATSDir:    c.NATSDir(),
	}
}
