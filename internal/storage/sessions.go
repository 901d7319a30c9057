// ABOUTME: Training session CRUD operations for SQLite storage.
// ABOUTME: Includes the one-linking-event wearable biometrics update.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rollready/rollready/internal/models"
)

const sessionColumns = `id, date, start_time, duration_minutes, intensity, class_type,
	rolls, partners, submissions_for, submissions_against, notes,
	workout_id, strain, calories, avg_heart_rate, max_heart_rate, linked_at, created_at`

// CreateSession stores a new training session.
func (d *DB) CreateSession(s *models.TrainingSession) error {
	var startTime, linkedAt *string
	if s.StartTime != nil {
		v := s.StartTime.Format(time.RFC3339)
		startTime = &v
	}
	if s.LinkedAt != nil {
		v := s.LinkedAt.Format(time.RFC3339)
		linkedAt = &v
	}

	var workoutID *string
	var strain, calories, avgHR, maxHR *float64
	if s.Biometrics != nil {
		if s.Biometrics.WorkoutID != nil {
			v := s.Biometrics.WorkoutID.String()
			workoutID = &v
		}
		strain = &s.Biometrics.Strain
		calories = &s.Biometrics.Calories
		avgHR = &s.Biometrics.AvgHeartRate
		maxHR = &s.Biometrics.MaxHeartRate
	}

	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		s.ID.String(), s.Date, startTime, s.DurationMinutes, s.Intensity, s.ClassType,
		s.Rolls, s.Partners, s.SubmissionsFor, s.SubmissionsAgainst, s.Notes,
		workoutID, strain, calories, avgHR, maxHR, linkedAt,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID or ID prefix.
func (d *DB) GetSession(idOrPrefix string) (*models.TrainingSession, error) {
	id, err := d.resolveID("sessions", idOrPrefix)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	s, err := scanSessionFrom(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListSessions retrieves sessions with optional class-type filtering,
// most recent first.
func (d *DB) ListSessions(classType *string, limit int) ([]*models.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions`
	var args []interface{}
	if classType != nil {
		query += " WHERE class_type = ?"
		args = append(args, *classType)
	}
	query += " ORDER BY date DESC, created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// ListSessionsSince retrieves sessions on or after the given day,
// most recent first.
func (d *DB) ListSessionsSince(date string) ([]*models.TrainingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE date >= ? ORDER BY date DESC, created_at DESC`
	rows, err := d.db.Query(query, date)
	if err != nil {
		return nil, fmt.Errorf("list sessions since: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// LinkSessionWorkout attaches wearable biometrics to a session.
// Re-linking overwrites the previous link (re-sync semantics).
func (d *DB) LinkSessionWorkout(sessionID uuid.UUID, b models.SessionBiometrics) error {
	var workoutID *string
	if b.WorkoutID != nil {
		v := b.WorkoutID.String()
		workoutID = &v
	}
	result, err := d.db.Exec(`
		UPDATE sessions
		SET workout_id = ?, strain = ?, calories = ?, avg_heart_rate = ?, max_heart_rate = ?, linked_at = ?
		WHERE id = ?`,
		workoutID, b.Strain, b.Calories, b.AvgHeartRate, b.MaxHeartRate,
		time.Now().Format(time.RFC3339), sessionID.String(),
	)
	if err != nil {
		return fmt.Errorf("link session workout: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("link session workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("link session workout %s: %w", sessionID, ErrNotFound)
	}
	return nil
}

// DeleteSession removes a session by ID or prefix.
func (d *DB) DeleteSession(idOrPrefix string) error {
	id, err := d.resolveID("sessions", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	result, err := d.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete session %s: %w", idOrPrefix, ErrNotFound)
	}
	return nil
}

// resolveID finds the full ID from a prefix in the given table.
func (d *DB) resolveID(table, idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM `+table+` WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%s: %w", idOrPrefix, ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return matches[0], nil
}

func scanSessions(rows *sql.Rows) ([]*models.TrainingSession, error) {
	var sessions []*models.TrainingSession
	for rows.Next() {
		s, err := scanSessionFrom(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSessionFrom(row rowScanner) (*models.TrainingSession, error) {
	var s models.TrainingSession
	var idStr, createdAt string
	var startTime, notes, workoutID, linkedAt sql.NullString
	var rolls, partners, subsFor, subsAgainst sql.NullInt64
	var strain, calories, avgHR, maxHR sql.NullFloat64

	err := row.Scan(&idStr, &s.Date, &startTime, &s.DurationMinutes, &s.Intensity, &s.ClassType,
		&rolls, &partners, &subsFor, &subsAgainst, &notes,
		&workoutID, &strain, &calories, &avgHR, &maxHR, &linkedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	s.ID, _ = uuid.Parse(idStr)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if startTime.Valid {
		t, err := time.Parse(time.RFC3339, startTime.String)
		if err == nil {
			s.StartTime = &t
		}
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
	s.Rolls = nullInt(rolls)
	s.Partners = nullInt(partners)
	s.SubmissionsFor = nullInt(subsFor)
	s.SubmissionsAgainst = nullInt(subsAgainst)

	if strain.Valid || workoutID.Valid {
		b := models.SessionBiometrics{
			Strain:       strain.Float64,
			Calories:     calories.Float64,
			AvgHeartRate: avgHR.Float64,
			MaxHeartRate: maxHR.Float64,
		}
		if workoutID.Valid {
			if wid, err := uuid.Parse(workoutID.String); err == nil {
				b.WorkoutID = &wid
			}
		}
		s.Biometrics = &b
	}
	if linkedAt.Valid {
		t, err := time.Parse(time.RFC3339, linkedAt.String)
		if err == nil {
			s.LinkedAt = &t
		}
	}

	return &s, nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
