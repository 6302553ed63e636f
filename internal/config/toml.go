// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Stats    StatsConfig    `toml:"stats"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	ClearTarget  *bool   `toml:"clear-target"`
	TickMs       *int    `toml:"tick-ms"`
	FeedbackMs   *int    `toml:"feedback-ms"`
	MaskLimit    *int    `toml:"mask-limit"`
	Record       *bool   `toml:"record"`
	ChartDir     *string `toml:"chart-dir"`
	WordList     *string `toml:"wordlist"`
	SuggestWords *int    `toml:"suggest-words"`
}

// StatsConfig maps settings of the recorded history views.
type StatsConfig struct {
	CurveWindow *int `toml:"curve-window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
