// ABOUTME: Rule evaluation over reconciled readiness, history, and calendar.
// ABOUTME: Produces a suggestion label, rendered text, and sorted rules.
package engine

import (
	"sort"
	"time"

	"github.com/rollready/rollready/internal/models"
)

// Suggestion labels shown to the user.
const (
	LabelTrainHard    = "Train Hard"
	LabelLightSession = "Light Session"
	LabelRestDay      = "Rest Day"
	LabelCheckIn      = "Check In"
)

// TopRuleCount caps how many triggered rules are surfaced to the UI.
// The full sorted set is retained for analytics.
const TopRuleCount = 3

// Inputs is everything a rule predicate may consult. All slices are
// newest-first. The struct is read-only during evaluation.
type Inputs struct {
	Readiness    *Reconciled
	Checkins     []*models.ReadinessCheckin
	Recoveries   []*models.WearableRecovery
	Sessions     []*models.TrainingSession
	Event        *models.CompetitionEvent
	RecoveryMode bool
	Now          time.Time
}

// Suggestion is the evaluation result. Triggered holds every firing
// rule sorted by ascending priority; Top holds at most TopRuleCount of
// them in the same order.
type Suggestion struct {
	Label     string
	Text      string
	Triggered []TriggeredRule
	Top       []TriggeredRule
	Composite *int
}

// Evaluate runs every catalog rule against the inputs. Rules are not
// mutually exclusive; the stable sort keeps insertion order for equal
// priorities. With no inputs at all the result is an empty rule set
// and a generic check-in prompt, never an error.
func Evaluate(in *Inputs) Suggestion {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	vars := in.templateVars()

	var fired []TriggeredRule
	for _, r := range catalog {
		if r.When(in) {
			fired = append(fired, TriggeredRule{
				Name:           r.Name,
				Recommendation: RenderTemplate(r.Template, vars),
				Explanation:    r.Explanation,
				Priority:       r.Priority,
			})
		}
	}
	sort.SliceStable(fired, func(i, j int) bool { return fired[i].Priority < fired[j].Priority })

	top := fired
	if len(top) > TopRuleCount {
		top = top[:TopRuleCount]
	}

	s := Suggestion{
		Label:     labelFor(in.Readiness),
		Triggered: fired,
		Top:       top,
	}
	if in.Readiness.HasCheckin() {
		s.Composite = in.Readiness.Composite
	}

	switch {
	case len(fired) > 0:
		s.Text = fired[0].Recommendation
	case s.Label == LabelCheckIn:
		s.Text = "No readiness data yet today. Check in to get a recommendation."
	case s.Label == LabelTrainHard:
		s.Text = "Readiness looks good. Train hard today."
	case s.Label == LabelLightSession:
		s.Text = "Readiness is middling. A light technical session fits best."
	default:
		s.Text = "Readiness is low. Take a rest day and recover."
	}

	return s
}

// labelFor maps readiness state to a suggestion label. A manual
// checkin's composite band wins; a wearable-only day falls back to the
// recovery band; with neither the user is asked to check in.
func labelFor(r *Reconciled) string {
	switch r.Band() {
	case BandHigh:
		return LabelTrainHard
	case BandModerate:
		return LabelLightSession
	case BandLow:
		return LabelRestDay
	default:
		return LabelCheckIn
	}
}

func (in *Inputs) templateVars() map[string]string {
	vars := map[string]string{}
	if in.Readiness != nil && in.Readiness.Hotspot != "" {
		vars["hotspot"] = in.Readiness.Hotspot
	}
	if in.Event != nil {
		vars["event"] = in.Event.Name
	}
	return vars
}

// eventDays returns whole days until the next competition event, or
// ok=false when the calendar is empty.
func (in *Inputs) eventDays() (int, bool) {
	if in.Event == nil {
		return 0, false
	}
	return in.Event.DaysUntil(in.Now), true
}

// checkinsWithinDays returns checkins dated within the last n calendar
// days, inclusive of today.
func (in *Inputs) checkinsWithinDays(n int) []*models.ReadinessCheckin {
	cutoff := dayString(in.Now.AddDate(0, 0, -n))
	var out []*models.ReadinessCheckin
	for _, c := range in.Checkins {
		if c.Date >= cutoff {
			out = append(out, c)
		}
	}
	return out
}

// recentCheckins returns up to n most recent checkins.
func (in *Inputs) recentCheckins(n int) []*models.ReadinessCheckin {
	if len(in.Checkins) < n {
		return in.Checkins
	}
	return in.Checkins[:n]
}

// sessionsWithinDays returns sessions dated within the last n calendar
// days, inclusive of today.
func (in *Inputs) sessionsWithinDays(n int) []*models.TrainingSession {
	cutoff := dayString(in.Now.AddDate(0, 0, -n))
	var out []*models.TrainingSession
	for _, s := range in.Sessions {
		if s.Date >= cutoff {
			out = append(out, s)
		}
	}
	return out
}

// lastSessionsAllType reports whether the n most recent sessions all
// have the given class type.
func (in *Inputs) lastSessionsAllType(n int, classType string) bool {
	if len(in.Sessions) < n {
		return false
	}
	for _, s := range in.Sessions[:n] {
		if s.ClassType != classType {
			return false
		}
	}
	return true
}

// recentHRV returns up to n most recent daily HRV readings, newest
// first, preferring checkin values and falling back to raw snapshots.
func (in *Inputs) recentHRV(n int) []float64 {
	byDate := map[string]float64{}
	var order []string
	add := func(date string, v *float64) {
		if v == nil {
			return
		}
		if _, ok := byDate[date]; !ok {
			byDate[date] = *v
			order = append(order, date)
		}
	}
	for _, c := range in.Checkins {
		add(c.Date, c.HRVMs)
	}
	for _, r := range in.Recoveries {
		add(r.Date, r.HRVMs)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	var out []float64
	for _, d := range order {
		out = append(out, byDate[d])
		if len(out) == n {
			break
		}
	}
	return out
}

// hrvBaseline averages daily HRV readings from days strictly before
// today, over at most n readings. Returns 0 when none exist.
func (in *Inputs) hrvBaseline(n int) float64 {
	today := dayString(in.Now)
	byDate := map[string]float64{}
	add := func(date string, v *float64) {
		if v == nil || date >= today {
			return
		}
		if _, ok := byDate[date]; !ok {
			byDate[date] = *v
		}
	}
	for _, c := range in.Checkins {
		add(c.Date, c.HRVMs)
	}
	for _, r := range in.Recoveries {
		add(r.Date, r.HRVMs)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > n {
		dates = dates[:n]
	}
	if len(dates) == 0 {
		return 0
	}
	var sum float64
	for _, d := range dates {
		sum += byDate[d]
	}
	return sum / float64(len(dates))
}

func dayString(t time.Time) string {
	return t.Format(models.DateLayout)
}
