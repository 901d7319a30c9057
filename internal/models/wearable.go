// ABOUTME: Wearable recovery snapshot and external workout models.
// ABOUTME: Read-only inputs owned by the wearable importer, not the engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WearableRecovery is a point-in-time recovery snapshot for a day.
// Any field may be absent; a nil RecoveryScore means the wearable had
// not computed recovery yet.
type WearableRecovery struct {
	ID            uuid.UUID `json:"id"`
	Date          string    `json:"date"` // calendar day, DateLayout
	RecoveryScore *float64  `json:"recovery_score,omitempty"`
	HRVMs         *float64  `json:"hrv_ms,omitempty"`
	RestingHR     *float64  `json:"resting_hr,omitempty"`
	SpO2          *float64  `json:"spo2,omitempty"`
	SleepScore    *float64  `json:"sleep_score,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// NewRecovery creates a recovery snapshot for the given day.
func NewRecovery(date string, recordedAt time.Time) *WearableRecovery {
	return &WearableRecovery{
		ID:         uuid.New(),
		Date:       date,
		RecordedAt: recordedAt,
	}
}

// WearableWorkout is an externally logged activity with its own
// identity. A training session may match zero, one, or many.
type WearableWorkout struct {
	ID           uuid.UUID `json:"id"`
	ExternalID   string    `json:"external_id"`
	Sport        string    `json:"sport"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
	Strain       float64   `json:"strain"`
	Calories     float64   `json:"calories"`
	AvgHeartRate float64   `json:"avg_heart_rate"`
	MaxHeartRate float64   `json:"max_heart_rate"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewWearableWorkout creates a workout record for an external activity.
func NewWearableWorkout(externalID, sport string, startedAt, endedAt time.Time) *WearableWorkout {
	return &WearableWorkout{
		ID:         uuid.New(),
		ExternalID: externalID,
		Sport:      sport,
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		CreatedAt:  time.Now(),
	}
}

// Duration returns the workout length.
func (w *WearableWorkout) Duration() time.Duration {
	return w.EndedAt.Sub(w.StartedAt)
}
