// ABOUTME: Wearable recovery and workout persistence for SQLite storage.
// ABOUTME: Upserts keyed on day (recoveries) and external ID (workouts).
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rollready/rollready/internal/models"
)

const recoveryColumns = `id, date, recovery_score, hrv_ms, resting_hr, spo2, sleep_score, recorded_at`

const workoutColumns = `id, external_id, sport, started_at, ended_at, strain, calories,
	avg_heart_rate, max_heart_rate, created_at`

// UpsertRecovery inserts or replaces the recovery snapshot for its day.
// Re-sync overwrites wearable-sourced data; manual checkin columns live
// in the checkins table and are untouched.
func (d *DB) UpsertRecovery(r *models.WearableRecovery) error {
	query := `
		INSERT INTO wearable_recoveries (` + recoveryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			recovery_score = excluded.recovery_score,
			hrv_ms = excluded.hrv_ms,
			resting_hr = excluded.resting_hr,
			spo2 = excluded.spo2,
			sleep_score = excluded.sleep_score,
			recorded_at = excluded.recorded_at
	`
	_, err := d.db.Exec(query,
		r.ID.String(), r.Date, r.RecoveryScore, r.HRVMs, r.RestingHR, r.SpO2, r.SleepScore,
		r.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert recovery: %w", err)
	}
	return nil
}

// GetRecoveryByDate retrieves the recovery snapshot for a calendar day.
func (d *DB) GetRecoveryByDate(date string) (*models.WearableRecovery, error) {
	query := `SELECT ` + recoveryColumns + ` FROM wearable_recoveries WHERE date = ?`
	r, err := scanRecoveryFrom(d.db.QueryRow(query, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

// ListRecoveriesSince retrieves recovery snapshots on or after the
// given day, most recent first.
func (d *DB) ListRecoveriesSince(date string) ([]*models.WearableRecovery, error) {
	query := `SELECT ` + recoveryColumns + ` FROM wearable_recoveries WHERE date >= ? ORDER BY date DESC`
	rows, err := d.db.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("list recoveries: %w", err)
	}
	defer rows.Close()

	var recoveries []*models.WearableRecovery
	for rows.Next() {
		r, err := scanRecoveryFrom(rows)
		if err != nil {
			return nil, err
		}
		recoveries = append(recoveries, r)
	}
	return recoveries, rows.Err()
}

// UpsertWearableWorkout inserts or replaces a workout keyed on its
// external identity, so repeated imports stay idempotent.
func (d *DB) UpsertWearableWorkout(w *models.WearableWorkout) error {
	query := `
		INSERT INTO wearable_workouts (` + workoutColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			sport = excluded.sport,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			strain = excluded.strain,
			calories = excluded.calories,
			avg_heart_rate = excluded.avg_heart_rate,
			max_heart_rate = excluded.max_heart_rate
	`
	_, err := d.db.Exec(query,
		w.ID.String(), w.ExternalID, w.Sport,
		w.StartedAt.Format(time.RFC3339), w.EndedAt.Format(time.RFC3339),
		w.Strain, w.Calories, w.AvgHeartRate, w.MaxHeartRate,
		w.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert wearable workout: %w", err)
	}
	return nil
}

// GetWearableWorkout retrieves a workout by ID or ID prefix.
func (d *DB) GetWearableWorkout(idOrPrefix string) (*models.WearableWorkout, error) {
	id, err := d.resolveID("wearable_workouts", idOrPrefix)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + workoutColumns + ` FROM wearable_workouts WHERE id = ?`
	w, err := scanWorkoutFrom(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

// ListWorkoutsBetween retrieves workouts whose interval touches
// [start, end], ordered by start time.
func (d *DB) ListWorkoutsBetween(start, end time.Time) ([]*models.WearableWorkout, error) {
	query := `SELECT ` + workoutColumns + ` FROM wearable_workouts
		WHERE ended_at >= ? AND started_at <= ?
		ORDER BY started_at`
	rows, err := d.db.Query(query, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.WearableWorkout
	for rows.Next() {
		w, err := scanWorkoutFrom(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func scanRecoveryFrom(row rowScanner) (*models.WearableRecovery, error) {
	var r models.WearableRecovery
	var idStr, recordedAt string
	var recovery, hrv, restingHR, spo2, sleepScore sql.NullFloat64

	err := row.Scan(&idStr, &r.Date, &recovery, &hrv, &restingHR, &spo2, &sleepScore, &recordedAt)
	if err != nil {
		return nil, err
	}

	r.ID, _ = uuid.Parse(idStr)
	r.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
	r.RecoveryScore = nullFloat(recovery)
	r.HRVMs = nullFloat(hrv)
	r.RestingHR = nullFloat(restingHR)
	r.SpO2 = nullFloat(spo2)
	r.SleepScore = nullFloat(sleepScore)

	return &r, nil
}

func scanWorkoutFrom(row rowScanner) (*models.WearableWorkout, error) {
	var w models.WearableWorkout
	var idStr, startedAt, endedAt, createdAt string

	err := row.Scan(&idStr, &w.ExternalID, &w.Sport, &startedAt, &endedAt,
		&w.Strain, &w.Calories, &w.AvgHeartRate, &w.MaxHeartRate, &createdAt)
	if err != nil {
		return nil, err
	}

	w.ID, _ = uuid.Parse(idStr)
	w.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	w.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	return &w, nil
}
