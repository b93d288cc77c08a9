package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the oktasync CLI.
//
// Fields:
//   - APIURL / APIToken: Okta organization URL and SSWS API token.
//   - RequestTimeout: per-request timeout for remote calls.
//   - SyncConcurrency: upper bound on concurrently in-flight upserts during
//     a sync pass; 0 means "derive from available parallelism".
//   - DatabasePath: location of the local SQLite mirror.
type Config struct {
	APIURL          string
	APIToken        string
	RequestTimeout  time.Duration
	SyncConcurrency int
	DatabasePath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RequestTimeout = 30 * time.Second
	c.SyncConcurrency = 0
	c.DatabasePath = "oktasync.db"
}

// Load constructs a Config, applies defaults, then overlays values from the
// JSON config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// DefaultPath returns the config file location under the XDG config
// directory, falling back to ~/.config.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "oktasync", "config.json")
}
