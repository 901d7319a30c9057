// ABOUTME: Assembly layer between storage and the pure engine functions.
// ABOUTME: Fetches inputs, degrades gracefully when wearable data is absent.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rollready/rollready/internal/engine"
	"github.com/rollready/rollready/internal/models"
	"github.com/rollready/rollready/internal/storage"
)

// History windows for rule evaluation and session scoring.
const (
	checkinLookbackDays = 7
	sessionLookbackDays = 30
	// Workout candidates are searched in a window around the session
	// so late-starting or early-ending workouts still surface.
	candidatePaddingHours = 6
)

// Service wires the repository to the engine. All engine calls remain
// pure; this layer only fetches and joins inputs.
type Service struct {
	repo         storage.Repository
	autoFill     engine.AutoFillTable
	recoveryMode bool
}

// New creates a Service.
func New(repo storage.Repository, autoFill engine.AutoFillTable, recoveryMode bool) *Service {
	return &Service{repo: repo, autoFill: autoFill, recoveryMode: recoveryMode}
}

// Readiness reconciles the readiness state for a day, or nil when
// neither a checkin nor a wearable snapshot exists.
func (s *Service) Readiness(date string) (*engine.Reconciled, error) {
	checkin, err := s.repo.GetCheckinByDate(date)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("fetch checkin: %w", err)
	}
	recovery, err := s.repo.GetRecoveryByDate(date)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("fetch recovery: %w", err)
	}
	return engine.Reconcile(checkin, recovery)
}

// Suggestion evaluates the rule catalog for the given day.
func (s *Service) Suggestion(now time.Time) (engine.Suggestion, error) {
	date := now.Format(models.DateLayout)

	readiness, err := s.Readiness(date)
	if err != nil {
		return engine.Suggestion{}, err
	}

	checkins, err := s.repo.ListCheckins(checkinLookbackDays)
	if err != nil {
		return engine.Suggestion{}, fmt.Errorf("fetch checkins: %w", err)
	}
	recoveries, err := s.repo.ListRecoveriesSince(now.AddDate(0, 0, -checkinLookbackDays).Format(models.DateLayout))
	if err != nil {
		return engine.Suggestion{}, fmt.Errorf("fetch recoveries: %w", err)
	}
	sessions, err := s.repo.ListSessionsSince(now.AddDate(0, 0, -sessionLookbackDays).Format(models.DateLayout))
	if err != nil {
		return engine.Suggestion{}, fmt.Errorf("fetch sessions: %w", err)
	}
	event, err := s.repo.NextEventAfter(date)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return engine.Suggestion{}, fmt.Errorf("fetch event: %w", err)
	}

	return engine.Evaluate(&engine.Inputs{
		Readiness:    readiness,
		Checkins:     checkins,
		Recoveries:   recoveries,
		Sessions:     sessions,
		Event:        event,
		RecoveryMode: s.recoveryMode,
		Now:          now,
	}), nil
}

// AutoFillForDate returns the wearable-derived slider prefill for a
// day, or nil when no wearable data exists for that date.
func (s *Service) AutoFillForDate(date string) (*engine.AutoFill, error) {
	recovery, err := s.repo.GetRecoveryByDate(date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch recovery: %w", err)
	}
	return engine.BuildAutoFill(recovery, s.autoFill), nil
}

// WorkoutCandidates runs the matcher for a logged session against
// wearable workouts near its time window.
func (s *Service) WorkoutCandidates(sessionIDOrPrefix string) (*models.TrainingSession, engine.MatchResult, error) {
	session, err := s.repo.GetSession(sessionIDOrPrefix)
	if err != nil {
		return nil, engine.MatchResult{}, err
	}

	start, end, ok := session.Interval()
	if !ok {
		// No start time: the matcher reports insufficient data rather
		// than guessing an interval.
		result, err := engine.MatchWorkouts(nil, session.DurationMinutes, nil)
		return session, result, err
	}

	padding := time.Duration(candidatePaddingHours) * time.Hour
	workouts, err := s.repo.ListWorkoutsBetween(start.Add(-padding), end.Add(padding))
	if err != nil {
		return nil, engine.MatchResult{}, fmt.Errorf("fetch workouts: %w", err)
	}

	candidates := make([]models.WearableWorkout, 0, len(workouts))
	for _, w := range workouts {
		candidates = append(candidates, *w)
	}

	result, err := engine.MatchWorkouts(session.StartTime, session.DurationMinutes, candidates)
	if err != nil {
		return nil, engine.MatchResult{}, err
	}
	engine.SortCandidates(result.Candidates)
	return session, result, nil
}

// LinkWorkout attaches a wearable workout's metrics to a session.
func (s *Service) LinkWorkout(sessionIDOrPrefix, workoutIDOrPrefix string) error {
	session, err := s.repo.GetSession(sessionIDOrPrefix)
	if err != nil {
		return err
	}
	workout, err := s.repo.GetWearableWorkout(workoutIDOrPrefix)
	if err != nil {
		return err
	}
	wid := workout.ID
	return s.repo.LinkSessionWorkout(session.ID, models.SessionBiometrics{
		WorkoutID:    &wid,
		Strain:       workout.Strain,
		Calories:     workout.Calories,
		AvgHeartRate: workout.AvgHeartRate,
		MaxHeartRate: workout.MaxHeartRate,
	})
}

// SessionScore computes the performance breakdown for a session.
// Recalculation is the same pure computation, so repeated calls on
// unchanged inputs yield identical output.
func (s *Service) SessionScore(sessionIDOrPrefix string) (*models.TrainingSession, *engine.ScoreBreakdown, error) {
	session, err := s.repo.GetSession(sessionIDOrPrefix)
	if err != nil {
		return nil, nil, err
	}

	readiness, err := s.Readiness(session.Date)
	if err != nil {
		return nil, nil, err
	}

	sessionDay, err := time.Parse(models.DateLayout, session.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("parse session date: %w", err)
	}
	history, err := s.repo.ListSessionsSince(sessionDay.AddDate(0, 0, -sessionLookbackDays).Format(models.DateLayout))
	if err != nil {
		return nil, nil, fmt.Errorf("fetch history: %w", err)
	}

	// Exclude the session itself and anything after its day.
	filtered := history[:0]
	for _, h := range history {
		if h.ID != session.ID && h.Date <= session.Date {
			filtered = append(filtered, h)
		}
	}

	breakdown, err := engine.ScoreSession(session, readiness, filtered)
	if err != nil {
		return nil, nil, err
	}
	return session, breakdown, nil
}
