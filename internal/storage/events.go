// ABOUTME: Competition calendar persistence for SQLite storage.
// ABOUTME: NextEventAfter feeds the comp_* rules in the engine.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rollready/rollready/internal/models"
)

const eventColumns = `id, name, date, notes, created_at`

// CreateEvent stores a new competition event.
func (d *DB) CreateEvent(e *models.CompetitionEvent) error {
	_, err := d.db.Exec(`
		INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?)`,
		e.ID.String(), e.Name, e.Date, e.Notes, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// ListEvents retrieves events ordered by date ascending.
func (d *DB) ListEvents(limit int) ([]*models.CompetitionEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*models.CompetitionEvent
	for rows.Next() {
		e, err := scanEventFrom(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// NextEventAfter returns the earliest event on or after the given day,
// or ErrNotFound when the calendar is empty.
func (d *DB) NextEventAfter(date string) (*models.CompetitionEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE date >= ? ORDER BY date LIMIT 1`
	e, err := scanEventFrom(d.db.QueryRow(query, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// DeleteEvent removes an event by ID or prefix.
func (d *DB) DeleteEvent(idOrPrefix string) error {
	id, err := d.resolveID("events", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	result, err := d.db.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete event %s: %w", idOrPrefix, ErrNotFound)
	}
	return nil
}

func scanEventFrom(row rowScanner) (*models.CompetitionEvent, error) {
	var e models.CompetitionEvent
	var idStr, createdAt string
	var notes sql.NullString

	err := row.Scan(&idStr, &e.Name, &e.Date, &notes, &createdAt)
	if err != nil {
		return nil, err
	}

	e.ID, _ = uuid.Parse(idStr)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if notes.Valid {
		e.Notes = &notes.String
	}
	return &e, nil
}
