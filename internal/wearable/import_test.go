// ABOUTME: Tests for the wearable export parser and importer.
// ABOUTME: Malformed rows must be skipped and counted, never fatal.
package wearable

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/rollready/rollready/internal/storage"
)

func newTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

const sampleExport = `{
  "cycles": [
    {
      "date": "2024-01-10",
      "recovery_score": 72,
      "hrv_ms": 65,
      "resting_hr": 52,
      "spo2": 97.5,
      "sleep_score": 85,
      "recorded_at": "2024-01-10T07:00:00Z"
    },
    {
      "date": "not-a-date",
      "recovery_score": 50,
      "recorded_at": "2024-01-11T07:00:00Z"
    }
  ],
  "workouts": [
    {
      "id": "whoop-1",
      "sport": "jiu_jitsu",
      "start": "2024-01-10T18:05:00Z",
      "end": "2024-01-10T19:35:00Z",
      "strain": 14.2,
      "calories": 780,
      "avg_heart_rate": 152,
      "max_heart_rate": 181
    },
    {
      "id": "whoop-2",
      "sport": "running",
      "start": "2024-01-10T06:00:00Z",
      "end": "2024-01-10T05:00:00Z"
    },
    {
      "id": "",
      "sport": "cycling",
      "start": "2024-01-10T06:00:00Z",
      "end": "2024-01-10T07:00:00Z"
    }
  ]
}`

func TestImport(t *testing.T) {
	db := newTestDB(t)

	summary, err := Import(strings.NewReader(sampleExport), db)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if summary.Recoveries != 1 {
		t.Errorf("Recoveries = %d, want 1", summary.Recoveries)
	}
	if summary.Workouts != 1 {
		t.Errorf("Workouts = %d, want 1", summary.Workouts)
	}
	// Bad date, inverted interval, empty ID.
	if summary.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", summary.Skipped)
	}

	rec, err := db.GetRecoveryByDate("2024-01-10")
	if err != nil {
		t.Fatalf("recovery not stored: %v", err)
	}
	if rec.RecoveryScore == nil || *rec.RecoveryScore != 72 {
		t.Errorf("RecoveryScore = %v, want 72", rec.RecoveryScore)
	}
	if rec.SleepScore == nil || *rec.SleepScore != 85 {
		t.Errorf("SleepScore = %v, want 85", rec.SleepScore)
	}
}

func TestImportIdempotent(t *testing.T) {
	db := newTestDB(t)

	if _, err := Import(strings.NewReader(sampleExport), db); err != nil {
		t.Fatal(err)
	}
	if _, err := Import(strings.NewReader(sampleExport), db); err != nil {
		t.Fatal(err)
	}

	recoveries, err := db.ListRecoveriesSince("2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(recoveries) != 1 {
		t.Errorf("got %d recoveries after re-import, want 1", len(recoveries))
	}
}

func TestImportBadJSON(t *testing.T) {
	db := newTestDB(t)
	if _, err := Import(strings.NewReader("{nope"), db); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
