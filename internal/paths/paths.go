// Package paths resolves tint's file locations.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names tint's directories.
const AppName = "tint"

// ConfigDir returns ~/.config/tint, or .tint when the home directory is
// unavailable.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile is the default config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LocalConfigFile is the project-local config file, checked first.
func LocalConfigFile() string {
	return filepath.Join("."+AppName, "config.yaml")
}

// PreferenceFile returns the default preference location for a backend:
// a SQLite database or a YAML file.
func PreferenceFile(backend string) string {
	if backend == "file" {
		return filepath.Join(ConfigDir(), "preferences.yaml")
	}
	return filepath.Join(ConfigDir(), "preferences.db")
}

// SequencesDir holds user sequence files.
func SequencesDir() string {
	return filepath.Join(ConfigDir(), "sequences")
}

// TracesFile is the default JSONL trace output.
func TracesFile() string {
	return filepath.Join(ConfigDir(), "traces", "traces.jsonl")
}

// Expand resolves a leading ~ to the home directory and cleans the path.
// An empty path stays empty.
func Expand(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Clean(path)
}
