// ABOUTME: Full-database JSON export and import.
// ABOUTME: Used for backups and for the legacy-store migration path.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rollready/rollready/internal/models"
)

// ExportData is the portable snapshot of every table.
type ExportData struct {
	ExportedAt time.Time                    `json:"exported_at"`
	Checkins   []*models.ReadinessCheckin   `json:"checkins"`
	Sessions   []*models.TrainingSession    `json:"sessions"`
	Recoveries []*models.WearableRecovery   `json:"wearable_recoveries"`
	Workouts   []*models.WearableWorkout    `json:"wearable_workouts"`
	Events     []*models.CompetitionEvent   `json:"events"`
}

// GetAllData collects every record for export.
func (d *DB) GetAllData() (*ExportData, error) {
	checkins, err := d.ListCheckins(0)
	if err != nil {
		return nil, fmt.Errorf("export checkins: %w", err)
	}
	sessions, err := d.ListSessions(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("export sessions: %w", err)
	}
	recoveries, err := d.ListRecoveriesSince("0000-01-01")
	if err != nil {
		return nil, fmt.Errorf("export recoveries: %w", err)
	}
	workouts, err := d.ListWorkoutsBetween(time.Time{}, time.Now().AddDate(100, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("export workouts: %w", err)
	}
	events, err := d.ListEvents(0)
	if err != nil {
		return nil, fmt.Errorf("export events: %w", err)
	}

	return &ExportData{
		ExportedAt: time.Now(),
		Checkins:   checkins,
		Sessions:   sessions,
		Recoveries: recoveries,
		Workouts:   workouts,
		Events:     events,
	}, nil
}

// ImportData loads a snapshot into the database. Checkins, recoveries,
// and workouts upsert; sessions and events insert and will error on
// duplicate IDs.
func (d *DB) ImportData(data *ExportData) error {
	for _, c := range data.Checkins {
		if err := d.UpsertCheckin(c); err != nil {
			return fmt.Errorf("import checkin %s: %w", c.Date, err)
		}
	}
	for _, s := range data.Sessions {
		if err := d.CreateSession(s); err != nil {
			return fmt.Errorf("import session %s: %w", s.ID, err)
		}
	}
	for _, r := range data.Recoveries {
		if err := d.UpsertRecovery(r); err != nil {
			return fmt.Errorf("import recovery %s: %w", r.Date, err)
		}
	}
	for _, w := range data.Workouts {
		if err := d.UpsertWearableWorkout(w); err != nil {
			return fmt.Errorf("import workout %s: %w", w.ExternalID, err)
		}
	}
	for _, e := range data.Events {
		if err := d.CreateEvent(e); err != nil {
			return fmt.Errorf("import event %s: %w", e.Name, err)
		}
	}
	return nil
}

// WriteExport serializes an export snapshot as indented JSON.
func WriteExport(w io.Writer, data *ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ReadExport parses an export snapshot.
func ReadExport(r io.Reader) (*ExportData, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return &data, nil
}
