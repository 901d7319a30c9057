// ABOUTME: Multi-pillar post-session performance score (0-100).
// ABOUTME: Pure function of the session, readiness at log time, and history.
package engine

import (
	"math"
	"time"

	"github.com/rollready/rollready/internal/models"
)

// Rubric selects the pillar weighting for a session's class type.
type Rubric string

const (
	RubricBJJ           Rubric = "bjj"
	RubricCompetition   Rubric = "competition"
	RubricSupplementary Rubric = "supplementary"
)

// Pillar names, stable identifiers for the breakdown map.
const (
	PillarEffort        = "effort"
	PillarEngagement    = "engagement"
	PillarEffectiveness = "effectiveness"
	PillarReadiness     = "readiness_alignment"
	PillarBiometric     = "biometric_validation"
	PillarConsistency   = "consistency"
)

// Session score label thresholds on the 0-100 aggregate. Independent
// constants from the readiness bands; the two scoring systems never
// share threshold tables.
var scoreLabels = []struct {
	Min   float64
	Label string
}{
	{85, "Elite"},
	{70, "Strong"},
	{55, "Solid"},
	{40, "Developing"},
	{0, "Light"},
}

// pillarMaxes per rubric; each row sums to 100.
var pillarMaxes = map[Rubric]map[string]float64{
	RubricBJJ: {
		PillarEffort:        25,
		PillarEngagement:    20,
		PillarEffectiveness: 20,
		PillarReadiness:     15,
		PillarBiometric:     10,
		PillarConsistency:   10,
	},
	RubricCompetition: {
		PillarEffort:        20,
		PillarEngagement:    15,
		PillarEffectiveness: 30,
		PillarReadiness:     15,
		PillarBiometric:     10,
		PillarConsistency:   10,
	},
	RubricSupplementary: {
		PillarEffort:        35,
		PillarEngagement:    5,
		PillarEffectiveness: 10,
		PillarReadiness:     20,
		PillarBiometric:     15,
		PillarConsistency:   15,
	},
}

// pillarOrder fixes iteration order so recalculation is byte-identical.
var pillarOrder = []string{
	PillarEffort, PillarEngagement, PillarEffectiveness,
	PillarReadiness, PillarBiometric, PillarConsistency,
}

// PillarScore is one pillar's contribution.
type PillarScore struct {
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
	Pct   float64 `json:"pct"`
}

// ScoreBreakdown is the full session score.
type ScoreBreakdown struct {
	Score            float64                `json:"score"` // 0-100 aggregate
	Label            string                 `json:"label"`
	Rubric           Rubric                 `json:"rubric"`
	DataCompleteness float64                `json:"data_completeness"` // 0-1
	Pillars          map[string]PillarScore `json:"pillars"`
}

// RubricFor picks the scoring rubric for a session.
func RubricFor(s *models.TrainingSession) Rubric {
	switch {
	case s.ClassType == models.ClassCompetition:
		return RubricCompetition
	case s.IsSupplementary():
		return RubricSupplementary
	default:
		return RubricBJJ
	}
}

// ScoreSession computes the six-pillar performance score. It is a pure
// function: scoring the same inputs twice yields identical output,
// which is what makes the recalculate operation idempotent. Missing
// inputs lower data completeness instead of being defaulted to
// midpoints.
func ScoreSession(s *models.TrainingSession, readiness *Reconciled, history []*models.TrainingSession) (*ScoreBreakdown, error) {
	if s.DurationMinutes <= 0 {
		return nil, &ValidationError{Field: "duration_minutes", Value: s.DurationMinutes, Min: 1, Max: 24 * 60}
	}
	if err := validateSlider("intensity", s.Intensity); err != nil {
		return nil, err
	}

	rubric := RubricFor(s)
	maxes := pillarMaxes[rubric]

	pillars := map[string]PillarScore{}
	real := map[string]bool{}

	pillars[PillarEffort] = scaled(effortFraction(s), maxes[PillarEffort])
	real[PillarEffort] = true

	engFrac, engReal := engagementFraction(s)
	pillars[PillarEngagement] = scaled(engFrac, maxes[PillarEngagement])
	real[PillarEngagement] = engReal

	effFrac, effReal := effectivenessFraction(s)
	pillars[PillarEffectiveness] = scaled(effFrac, maxes[PillarEffectiveness])
	real[PillarEffectiveness] = effReal

	readyFrac, readyReal := readinessAlignmentFraction(s, readiness)
	pillars[PillarReadiness] = scaled(readyFrac, maxes[PillarReadiness])
	real[PillarReadiness] = readyReal

	bioFrac, bioReal := biometricFraction(s)
	pillars[PillarBiometric] = scaled(bioFrac, maxes[PillarBiometric])
	real[PillarBiometric] = bioReal

	pillars[PillarConsistency] = scaled(consistencyFraction(s, history), maxes[PillarConsistency])
	real[PillarConsistency] = len(history) > 0

	var total, maxTotal float64
	var realCount int
	for _, name := range pillarOrder {
		total += pillars[name].Score
		maxTotal += pillars[name].Max
		if real[name] {
			realCount++
		}
	}

	aggregate := round1(total / maxTotal * 100)
	return &ScoreBreakdown{
		Score:            aggregate,
		Label:            scoreLabel(aggregate),
		Rubric:           rubric,
		DataCompleteness: round2(float64(realCount) / float64(len(pillarOrder))),
		Pillars:          pillars,
	}, nil
}

func scoreLabel(score float64) string {
	for _, row := range scoreLabels {
		if score >= row.Min {
			return row.Label
		}
	}
	return scoreLabels[len(scoreLabels)-1].Label
}

func scaled(fraction, max float64) PillarScore {
	fraction = clamp01(fraction)
	return PillarScore{
		Score: round1(fraction * max),
		Max:   max,
		Pct:   round1(fraction * 100),
	}
}

// effortFraction weights duration (up to 90 minutes) at 60% and
// intensity at 40%.
func effortFraction(s *models.TrainingSession) float64 {
	duration := math.Min(float64(s.DurationMinutes)/90, 1)
	intensity := float64(s.Intensity) / 5
	return duration*0.6 + intensity*0.4
}

// engagementFraction weights roll count (up to 10) at 60% and distinct
// partner count (up to 5) at 40%. Real only when counts were recorded.
func engagementFraction(s *models.TrainingSession) (float64, bool) {
	if s.Rolls == nil && s.Partners == nil {
		return 0, false
	}
	var rolls, partners float64
	if s.Rolls != nil {
		rolls = math.Min(float64(*s.Rolls)/10, 1)
	}
	if s.Partners != nil {
		partners = math.Min(float64(*s.Partners)/5, 1)
	}
	return rolls*0.6 + partners*0.4, true
}

// effectivenessFraction combines submissions achieved (up to 5, 50%),
// submission differential (up to +3, 25%), and whether technique notes
// were logged (25%).
func effectivenessFraction(s *models.TrainingSession) (float64, bool) {
	hasSubs := s.SubmissionsFor != nil || s.SubmissionsAgainst != nil
	hasNotes := s.Notes != nil && *s.Notes != ""
	if !hasSubs && !hasNotes {
		return 0, false
	}

	var frac float64
	if s.SubmissionsFor != nil {
		frac += math.Min(float64(*s.SubmissionsFor)/5, 1) * 0.5
	}
	if s.SubmissionsFor != nil && s.SubmissionsAgainst != nil {
		diff := *s.SubmissionsFor - *s.SubmissionsAgainst
		if diff > 0 {
			frac += math.Min(float64(diff)/3, 1) * 0.25
		}
	}
	if hasNotes {
		frac += 0.25
	}
	return frac, true
}

// alignmentFractions scores session intensity against the readiness
// band at logging time. Rows are readiness bands, columns intensity
// tiers (low 1-2, moderate 3, high 4-5).
var alignmentFractions = map[Band]map[string]float64{
	BandHigh:     {"low": 0.5, "moderate": 0.8, "high": 1.0},
	BandModerate: {"low": 0.8, "moderate": 1.0, "high": 0.5},
	BandLow:      {"low": 1.0, "moderate": 0.5, "high": 0.2},
}

// readinessAlignmentFraction rewards matching intensity to that day's
// readiness. Zero with reduced completeness when no readiness data
// existed, never a defaulted midpoint.
func readinessAlignmentFraction(s *models.TrainingSession, readiness *Reconciled) (float64, bool) {
	band := readiness.Band()
	if band == BandUnknown {
		return 0, false
	}

	tier := "moderate"
	switch {
	case s.Intensity <= 2:
		tier = "low"
	case s.Intensity >= 4:
		tier = "high"
	}
	return alignmentFractions[band][tier], true
}

// biometricFraction validates effort with linked wearable data: strain
// (up to 15) at 70%, plus 30% when heart-rate data is present. Zero
// and not-real when nothing is linked; absence is never a penalty
// beyond completeness.
func biometricFraction(s *models.TrainingSession) (float64, bool) {
	if s.Biometrics == nil {
		return 0, false
	}
	frac := math.Min(s.Biometrics.Strain/15, 1) * 0.7
	if s.Biometrics.AvgHeartRate > 0 {
		frac += 0.3
	}
	return frac, true
}

// consistencyFraction rewards a streak of consecutive training days
// ending at the session's date, capped at 5 days.
func consistencyFraction(s *models.TrainingSession, history []*models.TrainingSession) float64 {
	days := map[string]bool{s.Date: true}
	for _, h := range history {
		days[h.Date] = true
	}

	sessionDay, err := time.Parse(models.DateLayout, s.Date)
	if err != nil {
		return 0
	}

	streak := 0
	for d := sessionDay; days[d.Format(models.DateLayout)]; d = d.AddDate(0, 0, -1) {
		streak++
		if streak == 5 {
			break
		}
	}
	return float64(streak) / 5
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
