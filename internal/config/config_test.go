// ABOUTME: Tests for config loading, env overrides, and path expansion.
// ABOUTME: Redirects XDG paths into a temp dir so no real config is read.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rollready/rollready/internal/engine"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RecoveryMode {
		t.Error("RecoveryMode defaulted to true")
	}
	if cfg.GetSyncSchedule() != "@hourly" {
		t.Errorf("GetSyncSchedule() = %q, want @hourly", cfg.GetSyncSchedule())
	}
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "rollready", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	file := Config{DataDir: "/from/file", SyncSchedule: "@daily"}
	data, _ := json.Marshal(file)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ROLLREADY_DATA_DIR", "/from/env")
	t.Setenv("ROLLREADY_RECOVERY_MODE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != "/from/env" {
		t.Errorf("DataDir = %q, env should win over file", cfg.DataDir)
	}
	if !cfg.RecoveryMode {
		t.Error("RecoveryMode env override not applied")
	}
	if cfg.SyncSchedule != "@daily" {
		t.Errorf("SyncSchedule = %q, file value should survive", cfg.SyncSchedule)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	os.Unsetenv("ROLLREADY_DATA_DIR")
	os.Unsetenv("ROLLREADY_RECOVERY_MODE")

	cfg := &Config{RecoveryMode: true, SyncSchedule: "@every 30m"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.RecoveryMode || loaded.SyncSchedule != "@every 30m" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestAutoFillTable(t *testing.T) {
	cfg := &Config{}
	if got := cfg.AutoFillTable().Slider(92); got != 5 {
		t.Errorf("default table Slider(92) = %d, want 5", got)
	}

	cfg.AutoFill = []engine.AutoFillBreakpoint{
		{Min: 50, Slider: 5},
		{Min: 0, Slider: 1},
	}
	if got := cfg.AutoFillTable().Slider(60); got != 5 {
		t.Errorf("custom table Slider(60) = %d, want 5", got)
	}
	if got := cfg.AutoFillTable().Slider(40); got != 1 {
		t.Errorf("custom table Slider(40) = %d, want 1", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		in, want string
	}{
		{"~/data", filepath.Join(home, "data")},
		{"~", home},
		{"/abs/path", "/abs/path"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
