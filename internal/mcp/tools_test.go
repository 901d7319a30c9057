// ABOUTME: Tests for MCP tool helpers and server construction.
// ABOUTME: Transport-level behavior is exercised by the MCP client, not here.
package mcp

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rollready/rollready/internal/engine"
	"github.com/rollready/rollready/internal/service"
	"github.com/rollready/rollready/internal/storage"
)

func TestNewServer(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := service.New(db, engine.DefaultAutoFillTable(), false)
	server, err := NewServer(db, svc)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-01-10T18:00:00Z", time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), true},
		{"2024-01-10 18:00", time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), true},
		{"2024-01-10T18:00", time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), true},
		{"January 10", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		got, err := parseTimestamp(tt.in)
		if tt.ok && err != nil {
			t.Errorf("parseTimestamp(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("parseTimestamp(%q) expected error", tt.in)
			}
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
