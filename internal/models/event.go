// ABOUTME: CompetitionEvent model for the competition calendar.
// ABOUTME: Feeds the comp_* rules in the recommendation engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CompetitionEvent is an upcoming competition on the calendar.
type CompetitionEvent struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"` // calendar day, DateLayout
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent creates a competition event.
func NewEvent(name, date string) *CompetitionEvent {
	return &CompetitionEvent{
		ID:        uuid.New(),
		Name:      name,
		Date:      date,
		CreatedAt: time.Now(),
	}
}

// WithNotes sets free-text notes.
func (e *CompetitionEvent) WithNotes(notes string) *CompetitionEvent {
	e.Notes = &notes
	return e
}

// DaysUntil returns whole days from the given day to the event.
// Negative means the event has passed.
func (e *CompetitionEvent) DaysUntil(from time.Time) int {
	eventDay, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return 0
	}
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	eventDay = time.Date(eventDay.Year(), eventDay.Month(), eventDay.Day(), 0, 0, 0, 0, from.Location())
	return int(eventDay.Sub(fromDay).Hours() / 24)
}
