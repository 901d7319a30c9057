// ABOUTME: Matches logged sessions to wearable workouts by interval overlap.
// ABOUTME: Single high-confidence match auto-accepts; anything else defers.
package engine

import (
	"sort"
	"time"

	"github.com/rollready/rollready/internal/models"
)

// MatchStatus describes the outcome of workout matching.
type MatchStatus string

const (
	// MatchInsufficientData means the session has no start time, so an
	// interval cannot be computed. Matching never guesses.
	MatchInsufficientData MatchStatus = "insufficient_data"
	// MatchNone means no candidate workout overlapped the session at all.
	MatchNone MatchStatus = "none"
	// MatchAuto means exactly one candidate overlapped at or above the
	// auto-accept threshold and was selected without confirmation.
	MatchAuto MatchStatus = "auto"
	// MatchAmbiguous means one low-confidence or several overlapping
	// candidates exist; a human must disambiguate.
	MatchAmbiguous MatchStatus = "ambiguous"
)

// AutoAcceptOverlapPct is the minimum overlap percentage for a sole
// candidate to be accepted without confirmation.
const AutoAcceptOverlapPct = 90.0

// Candidate is a workout with its overlap against the session window.
type Candidate struct {
	Workout    models.WearableWorkout
	OverlapPct float64 // share of the workout's duration inside the session interval, 0-100
}

// MatchResult is the outcome of MatchWorkouts. Accepted is set only
// for MatchAuto; Candidates carries the full overlapping set for
// MatchAmbiguous so the caller can prompt the user.
type MatchResult struct {
	Status     MatchStatus
	Accepted   *Candidate
	Candidates []Candidate
}

// MatchWorkouts resolves which wearable workout corresponds to a
// logged session. Only a single candidate at >= 90% overlap is
// auto-accepted; everything else is deferred to the user.
func MatchWorkouts(start *time.Time, durationMinutes int, workouts []models.WearableWorkout) (MatchResult, error) {
	if durationMinutes <= 0 {
		return MatchResult{}, &ValidationError{Field: "duration_minutes", Value: durationMinutes, Min: 1, Max: 24 * 60}
	}
	if start == nil {
		return MatchResult{Status: MatchInsufficientData}, nil
	}

	sessionStart := *start
	sessionEnd := sessionStart.Add(time.Duration(durationMinutes) * time.Minute)

	var candidates []Candidate
	for _, w := range workouts {
		pct := overlapPct(sessionStart, sessionEnd, w.StartedAt, w.EndedAt)
		if pct <= 0 {
			continue
		}
		candidates = append(candidates, Candidate{Workout: w, OverlapPct: pct})
	}

	switch {
	case len(candidates) == 0:
		return MatchResult{Status: MatchNone}, nil
	case len(candidates) == 1 && candidates[0].OverlapPct >= AutoAcceptOverlapPct:
		return MatchResult{Status: MatchAuto, Accepted: &candidates[0], Candidates: candidates}, nil
	default:
		return MatchResult{Status: MatchAmbiguous, Candidates: candidates}, nil
	}
}

// SortCandidates orders candidates by descending overlap for display;
// ties break on start time so output is deterministic.
func SortCandidates(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].OverlapPct != cands[j].OverlapPct {
			return cands[i].OverlapPct > cands[j].OverlapPct
		}
		return cands[i].Workout.StartedAt.Before(cands[j].Workout.StartedAt)
	})
}

// overlapPct returns how much of [wStart, wEnd] falls inside
// [sStart, sEnd], as a percentage of the workout's duration.
func overlapPct(sStart, sEnd, wStart, wEnd time.Time) float64 {
	workoutDur := wEnd.Sub(wStart)
	if workoutDur <= 0 {
		return 0
	}
	start := sStart
	if wStart.After(start) {
		start = wStart
	}
	end := sEnd
	if wEnd.Before(end) {
		end = wEnd
	}
	overlap := end.Sub(start)
	if overlap <= 0 {
		return 0
	}
	return float64(overlap) / float64(workoutDur) * 100
}
