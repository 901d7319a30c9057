// ABOUTME: Read-only reader for the pre-SQLite Badger KV data layout.
// ABOUTME: Consumed by the migrate command; never written to.
package legacy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/rollready/rollready/internal/models"
)

// Key prefixes used by the old KV layout.
const (
	checkinPrefix = "checkin:"
	sessionPrefix = "session:"
	eventPrefix   = "event:"
)

// Store is a read-only handle on a legacy Badger database.
type Store struct {
	db *badger.DB
}

// DefaultPath returns where old versions kept their Badger data.
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "rollready", "kv")
}

// Exists reports whether a legacy database is present at path.
func Exists(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) > 0
}

// Open opens the legacy store read-only.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open legacy store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot holds everything read from the legacy store.
type Snapshot struct {
	Checkins []*models.ReadinessCheckin
	Sessions []*models.TrainingSession
	Events   []*models.CompetitionEvent
}

// Read loads every record from the legacy layout. Records that fail to
// decode are counted and skipped rather than aborting the migration.
func (s *Store) Read() (*Snapshot, int, error) {
	snap := &Snapshot{}
	skipped := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(val []byte) error {
				switch {
				case strings.HasPrefix(key, checkinPrefix):
					var c models.ReadinessCheckin
					if err := json.Unmarshal(val, &c); err != nil {
						skipped++
						return nil
					}
					snap.Checkins = append(snap.Checkins, &c)
				case strings.HasPrefix(key, sessionPrefix):
					var sess models.TrainingSession
					if err := json.Unmarshal(val, &sess); err != nil {
						skipped++
						return nil
					}
					snap.Sessions = append(snap.Sessions, &sess)
				case strings.HasPrefix(key, eventPrefix):
					var e models.CompetitionEvent
					if err := json.Unmarshal(val, &e); err != nil {
						skipped++
						return nil
					}
					snap.Events = append(snap.Events, &e)
				default:
					skipped++
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("read legacy store: %w", err)
	}

	return snap, skipped, nil
}
