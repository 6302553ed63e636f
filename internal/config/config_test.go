package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Practice.Record != nil || cfg.Stats.CurveWindow != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[practice]
clear-target = true
tick-ms = 50
record = true
chart-dir = "/tmp/charts"

[stats]
curve-window = 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := cfg.Practice
	if p.ClearTarget == nil || !*p.ClearTarget {
		t.Fatalf("expected clear-target=true")
	}
	if p.TickMs == nil || *p.TickMs != 50 {
		t.Fatalf("expected tick-ms=50")
	}
	if p.Record == nil || !*p.Record {
		t.Fatalf("expected record=true")
	}
	if p.ChartDir == nil || *p.ChartDir != "/tmp/charts" {
		t.Fatalf("unexpected chart-dir")
	}
	if p.FeedbackMs != nil || p.MaskLimit != nil {
		t.Fatalf("unset keys must stay nil")
	}
	if cfg.Stats.CurveWindow == nil || *cfg.Stats.CurveWindow != 7 {
		t.Fatalf("expected curve-window=7")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nlang = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "practice.lang") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "pwdrill", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "pwdrill", "pwdrill.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultChartDir(); got != filepath.Join("/data", "pwdrill", "charts") {
		t.Fatalf("unexpected chart dir %s", got)
	}
	if got := DefaultWordListPath(); got != filepath.Join("/cfg", "pwdrill", "words.txt") {
		t.Fatalf("unexpected word list path %s", got)
	}
}
