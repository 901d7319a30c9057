// ABOUTME: Tests for the read-only legacy Badger store reader.
// ABOUTME: Seeds a real Badger database in a temp dir, then reads it back.
package legacy

import (
	"encoding/json"
	"testing"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/rollready/rollready/internal/models"
)

func seedLegacyStore(t *testing.T, path string) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		t.Fatalf("seed legacy store: %v", err)
	}
	defer db.Close()

	checkin := models.NewCheckin("2024-01-10", 4, 2, 2, 4)
	session := models.NewSession("2024-01-10", "gi", 90, 4)
	event := models.NewEvent("Pans", "2024-03-20")

	err = db.Update(func(txn *badger.Txn) error {
		set := func(key string, v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			return txn.Set([]byte(key), data)
		}
		if err := set("checkin:2024-01-10", checkin); err != nil {
			return err
		}
		if err := set("session:"+session.ID.String(), session); err != nil {
			return err
		}
		if err := set("event:"+event.ID.String(), event); err != nil {
			return err
		}
		if err := set("unknown:junk", "not a record"); err != nil {
			return err
		}
		// Undecodable payload under a known prefix must be skipped.
		return txn.Set([]byte("checkin:bad"), []byte("{nope"))
	})
	if err != nil {
		t.Fatalf("seed write: %v", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	if Exists(dir) {
		t.Error("Exists() = true for an empty dir")
	}
	seedLegacyStore(t, dir)
	if !Exists(dir) {
		t.Error("Exists() = false for a seeded store")
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	seedLegacyStore(t, dir)

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	snap, skipped, err := store.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if len(snap.Checkins) != 1 {
		t.Errorf("Checkins = %d, want 1", len(snap.Checkins))
	}
	if len(snap.Sessions) != 1 {
		t.Errorf("Sessions = %d, want 1", len(snap.Sessions))
	}
	if len(snap.Events) != 1 {
		t.Errorf("Events = %d, want 1", len(snap.Events))
	}
	// One unknown prefix, one undecodable checkin.
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}

	if snap.Checkins[0].Date != "2024-01-10" || snap.Checkins[0].Sleep != 4 {
		t.Errorf("checkin fields lost: %+v", snap.Checkins[0])
	}
	if snap.Events[0].Name != "Pans" {
		t.Errorf("event name lost: %+v", snap.Events[0])
	}
}
