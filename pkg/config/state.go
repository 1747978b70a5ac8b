package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State is the small piece of UI state that survives restarts; the
// editor reopens on the tab the user left it on.
type State struct {
	ActiveTab string `yaml:"active_tab"`
}

// LoadState reads the state file, returning a zero state when the
// file is missing or unreadable
func LoadState(path string) State {
	var st State
	data, err := os.ReadFile(path)
	if err != nil {
		return st
	}
	_ = yaml.Unmarshal(data, &st)
	return st
}

// SaveState writes the state file, creating its directory as needed
func SaveState(path string, st State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
