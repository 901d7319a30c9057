// ABOUTME: Configuration from a JSON file with environment overrides.
// ABOUTME: Env vars (ROLLREADY_*) win over the file; both are optional.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rollready/rollready/internal/engine"
	"github.com/rollready/rollready/internal/storage"
)

// Config stores rollready tool configuration.
type Config struct {
	// DataDir is the root directory for data storage. Supports ~
	// expansion. Defaults to ~/.local/share/rollready.
	DataDir string `json:"data_dir,omitempty" env:"ROLLREADY_DATA_DIR"`

	// RecoveryMode keeps recommendations conservative while set; it
	// feeds the recovery_mode_active rule.
	RecoveryMode bool `json:"recovery_mode,omitempty" env:"ROLLREADY_RECOVERY_MODE"`

	// AutoSync pushes to Charm Cloud after each write when linked.
	AutoSync bool `json:"auto_sync,omitempty" env:"ROLLREADY_AUTO_SYNC"`

	// SyncSchedule is a cron expression for the sync watcher.
	// Defaults to hourly.
	SyncSchedule string `json:"sync_schedule,omitempty" env:"ROLLREADY_SYNC_SCHEDULE"`

	// AutoFill optionally overrides the wearable-to-slider mapping
	// table. The exact breakpoints are product configuration; leave
	// empty for the stock table.
	AutoFill []engine.AutoFillBreakpoint `json:"auto_fill,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetSyncSchedule returns the cron expression for the sync watcher.
func (c *Config) GetSyncSchedule() string {
	if c.SyncSchedule == "" {
		return "@hourly"
	}
	return c.SyncSchedule
}

// AutoFillTable returns the configured wearable-to-slider mapping,
// falling back to the stock table.
func (c *Config) AutoFillTable() engine.AutoFillTable {
	if len(c.AutoFill) == 0 {
		return engine.DefaultAutoFillTable()
	}
	return engine.AutoFillTable{Breakpoints: c.AutoFill}
}

// OpenStorage opens the SQLite repository in the configured data dir.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(filepath.Join(c.GetDataDir(), "rollready.db"))
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "rollready", "config.json")
}

// Load reads config from disk, then applies env overrides.
func Load() (*Config, error) {
	path := GetConfigPath()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env overrides: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
