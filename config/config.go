package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Config holds user-configurable defaults and integrations.
type Config struct {
	IntervalSec int              `json:"interval_sec"`
	HistorySize int              `json:"history_size"`
	Section     string           `json:"default_section"`
	Browser     BrowserConfig    `json:"browser"`
	Prometheus  PrometheusConfig `json:"prometheus"`
}

type BrowserConfig struct {
	Headless     bool   `json:"headless"`
	UserAgent    string `json:"user_agent,omitempty"`
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
	TimeoutSec   int    `json:"timeout_sec"`
}

type PrometheusConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		IntervalSec: 1,
		HistorySize: 300,
		Section:     "overview",
		Browser: BrowserConfig{
			Headless:     true,
			WindowWidth:  1366,
			WindowHeight: 900,
			TimeoutSec:   10,
		},
		Prometheus: PrometheusConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9190",
		},
	}
}

// Path returns ~/.config/webtop/config.json (or XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "" // refuse to fall back to /tmp (security risk)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "webtop", "config.json")
}

// Load loads config from disk; returns defaults on error.
func Load() Config {
	cfg := Default()
	p := Path()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("webtop: warning: config parse error: %v", err)
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
