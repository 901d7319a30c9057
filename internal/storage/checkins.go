// ABOUTME: Checkin CRUD operations for SQLite storage.
// ABOUTME: Upsert keyed on calendar day; provenance transitions enforced here.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rollready/rollready/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("not found")

const checkinColumns = `id, date, sleep, stress, soreness, energy, hotspot, body_weight_kg,
	source, hrv_ms, resting_hr, spo2, recovery_score, sleep_score, created_at, updated_at`

// UpsertCheckin inserts or replaces the checkin for its calendar day.
// Re-submitting the same day updates in place. When the existing row
// was wearable-sourced, the provenance moves to wearable+manual; that
// transition is one-way and a later resync never reverts it.
func (d *DB) UpsertCheckin(c *models.ReadinessCheckin) error {
	existing, err := d.GetCheckinByDate(c.Date)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("upsert checkin: %w", err)
	}

	if existing != nil {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
		if c.Source == models.ProvenanceManual {
			c.Source = existing.Source.WithManualEdit()
		}
	}
	c.UpdatedAt = time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = c.UpdatedAt
	}

	query := `
		INSERT INTO checkins (` + checkinColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			sleep = excluded.sleep,
			stress = excluded.stress,
			soreness = excluded.soreness,
			energy = excluded.energy,
			hotspot = excluded.hotspot,
			body_weight_kg = excluded.body_weight_kg,
			source = excluded.source,
			hrv_ms = excluded.hrv_ms,
			resting_hr = excluded.resting_hr,
			spo2 = excluded.spo2,
			recovery_score = excluded.recovery_score,
			sleep_score = excluded.sleep_score,
			updated_at = excluded.updated_at
	`
	_, err = d.db.Exec(query,
		c.ID.String(), c.Date, c.Sleep, c.Stress, c.Soreness, c.Energy,
		c.Hotspot, c.BodyWeightKg, string(c.Source),
		c.HRVMs, c.RestingHR, c.SpO2, c.RecoveryScore, c.SleepScore,
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert checkin: %w", err)
	}
	return nil
}

// GetCheckinByDate retrieves the checkin for a calendar day.
func (d *DB) GetCheckinByDate(date string) (*models.ReadinessCheckin, error) {
	query := `SELECT ` + checkinColumns + ` FROM checkins WHERE date = ?`
	return scanCheckin(d.db.QueryRow(query, date))
}

// ListCheckins retrieves checkins, most recent day first.
func (d *DB) ListCheckins(limit int) ([]*models.ReadinessCheckin, error) {
	query := `SELECT ` + checkinColumns + ` FROM checkins ORDER BY date DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()

	var checkins []*models.ReadinessCheckin
	for rows.Next() {
		c, err := scanCheckinRows(rows)
		if err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

// DeleteCheckin removes the checkin for a calendar day.
func (d *DB) DeleteCheckin(date string) error {
	result, err := d.db.Exec("DELETE FROM checkins WHERE date = ?", date)
	if err != nil {
		return fmt.Errorf("delete checkin: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete checkin: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete checkin %s: %w", date, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCheckin(row *sql.Row) (*models.ReadinessCheckin, error) {
	c, err := scanCheckinFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanCheckinRows(rows *sql.Rows) (*models.ReadinessCheckin, error) {
	return scanCheckinFrom(rows)
}

func scanCheckinFrom(row rowScanner) (*models.ReadinessCheckin, error) {
	var c models.ReadinessCheckin
	var idStr, source, createdAt, updatedAt string
	var hotspot sql.NullString
	var bodyWeight, hrv, restingHR, spo2, recovery, sleepScore sql.NullFloat64

	err := row.Scan(&idStr, &c.Date, &c.Sleep, &c.Stress, &c.Soreness, &c.Energy,
		&hotspot, &bodyWeight, &source, &hrv, &restingHR, &spo2, &recovery, &sleepScore,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.ID, _ = uuid.Parse(idStr)
	c.Source = models.Provenance(source)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if hotspot.Valid {
		c.Hotspot = &hotspot.String
	}
	c.BodyWeightKg = nullFloat(bodyWeight)
	c.HRVMs = nullFloat(hrv)
	c.RestingHR = nullFloat(restingHR)
	c.SpO2 = nullFloat(spo2)
	c.RecoveryScore = nullFloat(recovery)
	c.SleepScore = nullFloat(sleepScore)

	return &c, nil
}

func nullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
