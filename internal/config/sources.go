package config

import (
	"os"
	"path/filepath"

	"github.com/nibzard/todolist-go/internal/appdir"
)

// findProjectConfigFile returns the first project config file present in the
// working directory.
func findProjectConfigFile() string {
	return firstExisting(appdir.ProjectConfigPaths(".")...)
}

// findUserConfigFile prefers ~/.todolist/todolist.toml over
// <user config dir>/todolist/todolist.toml.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, appdir.UserConfigPath(home))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "todolist", appdir.ConfigFile))
	}
	return firstExisting(candidates...)
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
