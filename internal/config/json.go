package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/oktasync/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON (un)marshalling. Durations
// are stored as integer seconds so the file stays editable by hand.
type JsonConfig struct {
	APIURL                string `json:"api_url"`
	APIToken              string `json:"api_token"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"`
	SyncConcurrency       int    `json:"sync_concurrency,omitempty"`
	DatabasePath          string `json:"database_path,omitempty"`
}

// parseJson overlays Config with values from the JSON config file.
//
// Lookup order for the file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. The default XDG location; silently skipped when absent.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			panic(err)
		}
		return
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.APIURL = jc.APIURL
	cfg.APIToken = jc.APIToken
	if jc.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSeconds) * time.Second
	}
	if jc.SyncConcurrency > 0 {
		cfg.SyncConcurrency = jc.SyncConcurrency
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}

// Save writes the API credentials (and any non-default settings) to path,
// creating the directory with 0700 and the file with 0600 so the token is
// readable by the owner only.
func Save(path string, cfg *Config) error {
	jc := JsonConfig{
		APIURL:          cfg.APIURL,
		APIToken:        cfg.APIToken,
		SyncConcurrency: cfg.SyncConcurrency,
	}
	if cfg.RequestTimeout != 30*time.Second && cfg.RequestTimeout > 0 {
		jc.RequestTimeoutSeconds = int(cfg.RequestTimeout.Seconds())
	}
	if cfg.DatabasePath != "oktasync.db" {
		jc.DatabasePath = cfg.DatabasePath
	}

	data, err := json.MarshalIndent(jc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
