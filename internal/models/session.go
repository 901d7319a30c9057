// ABOUTME: TrainingSession model with optional wearable biometrics link.
// ABOUTME: Optional counts are pointers so absent and zero stay distinct.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Class types with dedicated scoring rubrics. Anything else scores
// under the default bjj rubric.
const (
	ClassGi           = "gi"
	ClassNoGi         = "nogi"
	ClassOpenMat      = "open_mat"
	ClassCompetition  = "competition"
	ClassStrength     = "strength"
	ClassMobility     = "mobility"
	ClassConditioning = "conditioning"
)

// SupplementaryClassTypes are non-grappling session types.
var SupplementaryClassTypes = map[string]bool{
	ClassStrength:     true,
	ClassMobility:     true,
	ClassConditioning: true,
}

// SessionBiometrics holds wearable metrics linked to a session, set by
// auto-match, user disambiguation, or manual entry.
type SessionBiometrics struct {
	WorkoutID    *uuid.UUID `json:"workout_id,omitempty"`
	Strain       float64    `json:"strain"`
	Calories     float64    `json:"calories"`
	AvgHeartRate float64    `json:"avg_heart_rate"`
	MaxHeartRate float64    `json:"max_heart_rate"`
}

// TrainingSession is a logged mat session.
type TrainingSession struct {
	ID                 uuid.UUID          `json:"id"`
	Date               string             `json:"date"` // calendar day, DateLayout
	StartTime          *time.Time         `json:"start_time,omitempty"`
	DurationMinutes    int                `json:"duration_minutes"`
	Intensity          int                `json:"intensity"` // 1-5
	ClassType          string             `json:"class_type"`
	Rolls              *int               `json:"rolls,omitempty"`
	Partners           *int               `json:"partners,omitempty"`
	SubmissionsFor     *int               `json:"submissions_for,omitempty"`
	SubmissionsAgainst *int               `json:"submissions_against,omitempty"`
	Notes              *string            `json:"notes,omitempty"`
	Biometrics         *SessionBiometrics `json:"biometrics,omitempty"`
	LinkedAt           *time.Time         `json:"linked_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// NewSession creates a session for the given day.
func NewSession(date, classType string, durationMinutes, intensity int) *TrainingSession {
	return &TrainingSession{
		ID:              uuid.New(),
		Date:            date,
		ClassType:       classType,
		DurationMinutes: durationMinutes,
		Intensity:       intensity,
		CreatedAt:       time.Now(),
	}
}

// WithStartTime sets the class start time.
func (s *TrainingSession) WithStartTime(t time.Time) *TrainingSession {
	s.StartTime = &t
	return s
}

// WithRolls sets the roll and partner counts.
func (s *TrainingSession) WithRolls(rolls, partners int) *TrainingSession {
	s.Rolls = &rolls
	s.Partners = &partners
	return s
}

// WithSubmissions sets submissions achieved and conceded.
func (s *TrainingSession) WithSubmissions(won, lost int) *TrainingSession {
	s.SubmissionsFor = &won
	s.SubmissionsAgainst = &lost
	return s
}

// WithNotes sets free-text notes.
func (s *TrainingSession) WithNotes(notes string) *TrainingSession {
	s.Notes = &notes
	return s
}

// LinkBiometrics attaches wearable metrics to the session. Re-linking
// overwrites the previous link.
func (s *TrainingSession) LinkBiometrics(b SessionBiometrics) *TrainingSession {
	now := time.Now()
	s.Biometrics = &b
	s.LinkedAt = &now
	return s
}

// IsSupplementary reports whether the session is non-grappling work.
func (s *TrainingSession) IsSupplementary() bool {
	return SupplementaryClassTypes[s.ClassType]
}

// Interval returns the implied [start, start+duration] window, or
// ok=false when no start time was recorded.
func (s *TrainingSession) Interval() (start, end time.Time, ok bool) {
	if s.StartTime == nil {
		return time.Time{}, time.Time{}, false
	}
	start = *s.StartTime
	end = start.Add(time.Duration(s.DurationMinutes) * time.Minute)
	return start, end, true
}
