// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears every TODOLIST_* variable.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, b := range envBindings() {
		t.Setenv(b.name, "")
	}
	chdir(t, project)
	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	home, project := isolate(t)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wantData := filepath.Join(home, ".todolist")
	if cfg.DataDir != wantData {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, wantData)
	}
	if cfg.LogDir != filepath.Join(home, ".todolist", "logs") {
		t.Errorf("LogDir: got %q", cfg.LogDir)
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Errorf("logging: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Store.Kind != "file" || cfg.Store.Key != "tasks" || cfg.Store.NATSBucket != "todolist" {
		t.Errorf("store: got %+v", cfg.Store)
	}
	if cfg.Store.Path != filepath.Join(wantData, "storage.json") {
		t.Errorf("Store.Path: got %q", cfg.Store.Path)
	}
	if cfg.Store.SQLitePath != filepath.Join(wantData, "todolist.db") {
		t.Errorf("Store.SQLitePath: got %q", cfg.Store.SQLitePath)
	}
	if cfg.NATSDir() != filepath.Join(wantData, "nats") {
		t.Errorf("NATSDir: got %q", cfg.NATSDir())
	}

	gotRoot, _ := filepath.EvalSymlinks(cfg.ProjectRoot)
	wantRoot, _ := filepath.EvalSymlinks(project)
	if gotRoot != wantRoot {
		t.Errorf("ProjectRoot: got %q, want %q", gotRoot, wantRoot)
	}
}

func TestLoadPriority(t *testing.T) {
	home, project := isolate(t)

	writeFile(t, filepath.Join(home, ".todolist", "todolist.toml"), `
log_level = "debug"
data_dir = "/user/data"

[store]
kind = "sqlite"
nats_bucket = "user-bucket"
`)
	writeFile(t, filepath.Join(project, "todolist.toml"), `
data_dir = "/project/data"

[store]
key = "project-key"
`)
	writeFile(t, filepath.Join(project, ".env"), `
TODOLIST_STORE_KEY=dotenv-key
TODOLIST_NATS_BUCKET=dotenv-bucket
TODOLIST_LOG_FORMAT=logfmt
`)
	t.Setenv("TODOLIST_NATS_BUCKET", "env-bucket")

	cws, err := LoadWithSources(newFlagSet(), []string{"-log-format", "json", "ls"})
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	cfg := cws.Config

	checks := []struct {
		field  string
		got    string
		want   string
		source ConfigSource
	}{
		{"log_level", cfg.LogLevel, "debug", SourceUserFile},
		{"data_dir", cfg.DataDir, "/project/data", SourceProjFile},
		{"store.kind", cfg.Store.Kind, "sqlite", SourceUserFile},
		{"store.key", cfg.Store.Key, "dotenv-key", SourceDotEnv},
		{"store.nats_bucket", cfg.Store.NATSBucket, "env-bucket", SourceEnv},
		{"log_format", cfg.LogFormat, "json", SourceFlag},
		{"log_dir", cfg.LogDir, filepath.Join(home, ".todolist", "logs"), SourceDefault},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %q, want %q", c.field, c.got, c.want)
		}
		if cws.Sources[c.field] != c.source {
			t.Errorf("%s source: got %q, want %q", c.field, cws.Sources[c.field], c.source)
		}
	}

	if len(cws.Files) != 2 {
		t.Errorf("Files: got %v", cws.Files)
	}
	if cws.Files[len(cws.Files)-1] != "todolist.toml" {
		t.Errorf("project file should be read last, got %v", cws.Files)
	}
}

func TestFlagsLeaveRemainingArgs(t *testing.T) {
	isolate(t)

	fs := newFlagSet()
	if _, err := Load(fs, []string{"-store", "memory", "add", "Buy", "milk"}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []string{"add", "Buy", "milk"}
	got := fs.Args()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Args: got %v, want %v", got, want)
	}
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, ".env"), "TODOLIST_STORE=sqlite\n")
	t.Setenv("TODOLIST_STORE", "memory")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Kind != "memory" {
		t.Errorf("Store.Kind: got %q, want memory", cfg.Store.Kind)
	}
}

func TestRelativePathsResolveAgainstProjectRoot(t *testing.T) {
	_, project := isolate(t)
	t.Setenv("TODOLIST_DATA_DIR", "state")
	t.Setenv("TODOLIST_SQLITE_PATH", "db/tasks.db")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	root, _ := filepath.EvalSymlinks(project)
	gotData, _ := filepath.EvalSymlinks(filepath.Dir(cfg.DataDir))
	if gotData != root || filepath.Base(cfg.DataDir) != "state" {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if !strings.HasSuffix(filepath.ToSlash(cfg.Store.SQLitePath), "/db/tasks.db") || !filepath.IsAbs(cfg.Store.SQLitePath) {
		t.Errorf("SQLitePath: got %q", cfg.Store.SQLitePath)
	}
	if cfg.Store.Path != filepath.Join(cfg.DataDir, "storage.json") {
		t.Errorf("Store.Path should follow DataDir, got %q", cfg.Store.Path)
	}
}

func TestSQLiteMemoryPathKept(t *testing.T) {
	isolate(t)
	cfg, err := Load(newFlagSet(), []string{"-sqlite-path", ":memory:"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.SQLitePath != ":memory:" {
		t.Errorf("SQLitePath: got %q", cfg.Store.SQLitePath)
	}
}

func TestInvalidStoreKind(t *testing.T) {
	isolate(t)
	_, err := Load(newFlagSet(), []string{"-store", "redis"})
	if err == nil || !strings.Contains(err.Error(), "invalid store kind") {
		t.Errorf("expected invalid store kind error, got %v", err)
	}
}

func TestInvalidConfigFile(t *testing.T) {
	_, project := isolate(t)
	writeFile(t, filepath.Join(project, ".todolist.toml"), "data_dir = [")

	_, err := Load(newFlagSet(), nil)
	if err == nil || !strings.Contains(err.Error(), "project config file") {
		t.Errorf("expected project config error, got %v", err)
	}
}

func TestBoolFromString(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes ", "on", "y"} {
		if !boolFromString(v) {
			t.Errorf("boolFromString(%q) = false", v)
		}
	}
	for _, v := range []string{"", "0", "false", "no", "off", "maybe"} {
		if boolFromString(v) {
			t.Errorf("boolFromString(%q) = true", v)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("TODOLIST_TEST_DIR", "/from/env")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"$TODOLIST_TEST_DIR/x", "/from/env/x"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindUserConfigFileFallsBackToConfigDir(t *testing.T) {
	home := t.TempDir()
	xdg := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", xdg)

	if got := findUserConfigFile(); got != "" {
		t.Fatalf("no config written yet, got %q", got)
	}

	fallback := filepath.Join(xdg, "todolist", "todolist.toml")
	if err := os.MkdirAll(filepath.Dir(fallback), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fallback, []byte("[store]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := findUserConfigFile(); got != fallback {
		t.Errorf("got %q, want %q", got, fallback)
	}

	primary := filepath.Join(home, ".todolist", "todolist.toml")
	if err := os.MkdirAll(filepath.Dir(primary), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(primary, []byte("[store]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := findUserConfigFile(); got != primary {
		t.Errorf("got %q, want %q", got, primary)
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	var cfg Config
	if _, err := toml.Decode(ExampleConfig(), &cfg); err != nil {
		t.Fatalf("example config does not decode: %v", err)
	}
	if cfg.Store.Kind != "file" || cfg.Store.Key != "tasks" {
		t.Errorf("unexpected store section: %+v", cfg.Store)
	}
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testing.Chdir: " + err.Error())
		}
	})
}
