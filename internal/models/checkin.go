// ABOUTME: ReadinessCheckin model and Provenance state machine.
// ABOUTME: One checkin per calendar day; sliders are 1-5 integers.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Provenance records where a day's readiness inputs came from.
// Transitions are one-way: wearable -> wearable+manual. A manual
// checkin never becomes wearable-sourced.
type Provenance string

const (
	ProvenanceManual         Provenance = "manual"
	ProvenanceWearable       Provenance = "wearable"
	ProvenanceWearableManual Provenance = "wearable+manual"
)

// WithManualEdit returns the provenance after a user edits a slider.
// Editing a wearable-sourced day marks it as a partial override; all
// other states are unchanged.
func (p Provenance) WithManualEdit() Provenance {
	if p == ProvenanceWearable {
		return ProvenanceWearableManual
	}
	return p
}

// IsValidProvenance checks if a string is a known provenance tag.
func IsValidProvenance(s string) bool {
	switch Provenance(s) {
	case ProvenanceManual, ProvenanceWearable, ProvenanceWearableManual:
		return true
	}
	return false
}

// DateLayout is the calendar-day format used for checkin uniqueness.
const DateLayout = "2006-01-02"

// ReadinessCheckin is a daily wellness check-in. Sleep and Energy are
// direct 1-5 sliders; Stress and Soreness are 1-5 where lower is better.
type ReadinessCheckin struct {
	ID           uuid.UUID  `json:"id"`
	Date         string     `json:"date"` // calendar day, DateLayout, unique per user
	Sleep        int        `json:"sleep"`
	Stress       int        `json:"stress"`
	Soreness     int        `json:"soreness"`
	Energy       int        `json:"energy"`
	Hotspot      *string    `json:"hotspot,omitempty"`
	BodyWeightKg *float64   `json:"body_weight_kg,omitempty"`
	Source       Provenance `json:"source"`

	// Wearable fields, present when a recovery snapshot contributed.
	HRVMs         *float64 `json:"hrv_ms,omitempty"`
	RestingHR     *float64 `json:"resting_hr,omitempty"`
	SpO2          *float64 `json:"spo2,omitempty"`
	RecoveryScore *float64 `json:"recovery_score,omitempty"` // 0-100 wearable scale
	SleepScore    *float64 `json:"sleep_score,omitempty"`    // 0-100 wearable scale

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCheckin creates a manual checkin for the given day.
func NewCheckin(date string, sleep, stress, soreness, energy int) *ReadinessCheckin {
	now := time.Now()
	return &ReadinessCheckin{
		ID:        uuid.New(),
		Date:      date,
		Sleep:     sleep,
		Stress:    stress,
		Soreness:  soreness,
		Energy:    energy,
		Source:    ProvenanceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithHotspot sets an injury hotspot note.
func (c *ReadinessCheckin) WithHotspot(note string) *ReadinessCheckin {
	c.Hotspot = &note
	return c
}

// WithBodyWeight sets the body weight in kilograms.
func (c *ReadinessCheckin) WithBodyWeight(kg float64) *ReadinessCheckin {
	c.BodyWeightKg = &kg
	return c
}

// WithSource overrides the provenance tag.
func (c *ReadinessCheckin) WithSource(p Provenance) *ReadinessCheckin {
	c.Source = p
	return c
}

// HasHotspot reports whether a non-empty hotspot note is present.
func (c *ReadinessCheckin) HasHotspot() bool {
	return c.Hotspot != nil && *c.Hotspot != ""
}
