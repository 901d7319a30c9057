// ABOUTME: Fixed catalog of named recommendation rules as plain records.
// ABOUTME: Lower priority number means higher urgency.
package engine

// Rule is one row of the catalog: a pure predicate over the evaluation
// inputs plus fixed priority and message templates. Rules are data, not
// an inheritance hierarchy, so each one is testable in isolation.
type Rule struct {
	Name        string
	Priority    int
	Template    string
	Explanation string
	When        func(in *Inputs) bool
}

// TriggeredRule is one rule that fired, with its rendered text.
// Ephemeral: recomputed on every evaluation, never persisted.
type TriggeredRule struct {
	Name           string `json:"name"`
	Recommendation string `json:"recommendation"`
	Explanation    string `json:"explanation"`
	Priority       int    `json:"priority"`
}

// Thresholds used by rule predicates. Day windows are calendar days.
const (
	consecutiveTypeRun   = 3
	hrvDropRatio         = 0.85
	hrvDeclineDays       = 3
	fightWeekDays        = 7
	taperWindowDays      = 14
	peakPhaseMinDays     = 8
	peakPhaseMaxDays     = 21
	baseBuildingMinDays  = 42
	staleNotesDays       = 14
	lowFrequencyWindow   = 14
	lowFrequencyMin      = 2
	deloadWindowSessions = 10
	deloadWindowDays     = 14
	sleepDebtCheckins    = 3
	injuryWindowDays     = 7
	injuryHotspotMin     = 3
)

// catalog is evaluated in insertion order; equal priorities keep this
// order after the stable sort in Evaluate.
var catalog = []Rule{
	{
		Name:        "persistent_injuries",
		Priority:    1,
		Template:    "You've flagged {hotspot} on several recent days. Get it looked at before hard training.",
		Explanation: "The same injury hotspot appeared on three or more checkins this week.",
		When: func(in *Inputs) bool {
			count := 0
			for _, c := range in.checkinsWithinDays(injuryWindowDays) {
				if c.HasHotspot() {
					count++
				}
			}
			return count >= injuryHotspotMin
		},
	},
	{
		Name:        "hotspot_active",
		Priority:    2,
		Template:    "Work around {hotspot} today. Tell your partners before rolling.",
		Explanation: "Today's checkin flags an active injury hotspot.",
		When: func(in *Inputs) bool {
			return in.Readiness != nil && in.Readiness.Hotspot != ""
		},
	},
	{
		Name:        "recovery_mode_active",
		Priority:    3,
		Template:    "Recovery mode is on. Keep everything technical and light until you switch it off.",
		Explanation: "The user has recovery mode enabled in their profile.",
		When: func(in *Inputs) bool {
			return in.RecoveryMode
		},
	},
	{
		Name:        "whoop_low_recovery",
		Priority:    4,
		Template:    "Your wearable recovery is in the red. Favor drilling over live rounds.",
		Explanation: "Wearable recovery score is below the low-recovery threshold.",
		When: func(in *Inputs) bool {
			return in.Readiness != nil && in.Readiness.RecoveryScore != nil &&
				RecoveryBand(*in.Readiness.RecoveryScore) == BandLow
		},
	},
	{
		Name:        "high_soreness",
		Priority:    5,
		Template:    "Soreness is high. Flow rolls and mobility beat another hard session today.",
		Explanation: "Reported soreness is 4 or above.",
		When: func(in *Inputs) bool {
			return in.Readiness.HasCheckin() && in.Readiness.Soreness >= 4
		},
	},
	{
		Name:        "high_stress_low_energy",
		Priority:    6,
		Template:    "High stress plus low energy is a bad mix for hard rounds. Keep it short and technical.",
		Explanation: "Reported stress is 4+ while energy is 2 or below.",
		When: func(in *Inputs) bool {
			return in.Readiness.HasCheckin() && in.Readiness.Stress >= 4 && in.Readiness.Energy <= 2
		},
	},
	{
		Name:        "sleep_debt_high",
		Priority:    7,
		Template:    "Sleep has been short for several days. Prioritize an early night over extra mat time.",
		Explanation: "Average reported sleep over the last three checkins is 2 or below.",
		When: func(in *Inputs) bool {
			recent := in.recentCheckins(sleepDebtCheckins)
			if len(recent) < sleepDebtCheckins {
				return false
			}
			total := 0
			for _, c := range recent {
				total += c.Sleep
			}
			return float64(total)/float64(len(recent)) <= 2
		},
	},
	{
		Name:        "whoop_hrv_sustained_decline",
		Priority:    8,
		Template:    "HRV has dropped three days straight. Back off volume until it recovers.",
		Explanation: "Heart-rate variability declined on each of the last three days.",
		When: func(in *Inputs) bool {
			vals := in.recentHRV(hrvDeclineDays + 1)
			if len(vals) < hrvDeclineDays+1 {
				return false
			}
			// vals is newest-first; decline means each day below the one before.
			for i := 0; i < hrvDeclineDays; i++ {
				if vals[i] >= vals[i+1] {
					return false
				}
			}
			return true
		},
	},
	{
		Name:        "whoop_hrv_drop",
		Priority:    9,
		Template:    "Today's HRV is well below your weekly baseline. Treat it as a caution flag.",
		Explanation: "Today's HRV is under 85% of the trailing 7-day average.",
		When: func(in *Inputs) bool {
			if in.Readiness == nil || in.Readiness.HRVMs == nil {
				return false
			}
			baseline := in.hrvBaseline(7)
			return baseline > 0 && *in.Readiness.HRVMs < baseline*hrvDropRatio
		},
	},
	{
		Name:        "rest_after_high_intensity",
		Priority:    10,
		Template:    "Yesterday was a max-effort session. Today is for recovery, not another war.",
		Explanation: "An intensity-5 session was logged within the last day.",
		When: func(in *Inputs) bool {
			for _, s := range in.sessionsWithinDays(1) {
				if s.Intensity >= 5 {
					return true
				}
			}
			return false
		},
	},
	{
		Name:        "comp_fight_week",
		Priority:    11,
		Template:    "{event} is this week. Sharpen your A-game, stay healthy, cut nothing new.",
		Explanation: "A competition is seven or fewer days out.",
		When: func(in *Inputs) bool {
			d, ok := in.eventDays()
			return ok && d >= 0 && d <= fightWeekDays
		},
	},
	{
		Name:        "comp_taper_warning",
		Priority:    12,
		Template:    "You're inside the taper window for {event} but still logging hard sessions. Ease off.",
		Explanation: "A high-intensity session was logged within two weeks of a competition.",
		When: func(in *Inputs) bool {
			d, ok := in.eventDays()
			if !ok || d < 0 || d > taperWindowDays {
				return false
			}
			for _, s := range in.sessionsWithinDays(2) {
				if s.Intensity >= 4 {
					return true
				}
			}
			return false
		},
	},
	{
		Name:        "deload_week",
		Priority:    13,
		Template:    "Training volume has spiked. Schedule a deload before your body schedules one for you.",
		Explanation: "Ten or more sessions logged in the last two weeks.",
		When: func(in *Inputs) bool {
			return len(in.sessionsWithinDays(deloadWindowDays)) >= deloadWindowSessions
		},
	},
	{
		Name:        "comp_peak_phase",
		Priority:    14,
		Template:    "{event} is two to three weeks out. This is your peak phase: hard, specific, short.",
		Explanation: "A competition sits in the 8-21 day peak window.",
		When: func(in *Inputs) bool {
			d, ok := in.eventDays()
			return ok && d >= peakPhaseMinDays && d <= peakPhaseMaxDays
		},
	},
	{
		Name:        "consecutive_gi",
		Priority:    16,
		Template:    "Three gi sessions in a row. Mix in some no-gi to keep your game honest.",
		Explanation: "The last three sessions were all gi.",
		When: func(in *Inputs) bool {
			return in.lastSessionsAllType(consecutiveTypeRun, "gi")
		},
	},
	{
		Name:        "consecutive_nogi",
		Priority:    16,
		Template:    "Three no-gi sessions in a row. Put the gi back on before your grips forget it.",
		Explanation: "The last three sessions were all no-gi.",
		When: func(in *Inputs) bool {
			return in.lastSessionsAllType(consecutiveTypeRun, "nogi")
		},
	},
	{
		Name:        "session_frequency_low",
		Priority:    18,
		Template:    "Mat time has been sparse lately. Even one light session keeps the wheels turning.",
		Explanation: "Fewer than two sessions logged in the last two weeks.",
		When: func(in *Inputs) bool {
			return len(in.sessionsWithinDays(lowFrequencyWindow)) < lowFrequencyMin &&
				len(in.Sessions) > 0
		},
	},
	{
		Name:        "stale_technique",
		Priority:    20,
		Template:    "No technique notes in two weeks. Write down one thing from your next session.",
		Explanation: "Recent sessions exist but none in the last 14 days carry notes.",
		When: func(in *Inputs) bool {
			recent := in.sessionsWithinDays(staleNotesDays)
			if len(recent) == 0 {
				return false
			}
			for _, s := range recent {
				if s.Notes != nil && *s.Notes != "" {
					return false
				}
			}
			return true
		},
	},
	{
		Name:        "comp_base_building",
		Priority:    22,
		Template:    "{event} is still a long way out. Build your base: volume, fundamentals, new positions.",
		Explanation: "The next competition is more than six weeks away.",
		When: func(in *Inputs) bool {
			d, ok := in.eventDays()
			return ok && d > baseBuildingMinDays
		},
	},
	{
		Name:        "whoop_green_recovery",
		Priority:    24,
		Template:    "Your wearable says you're fully recovered. Good day to push the pace.",
		Explanation: "Wearable recovery score is in the high band.",
		When: func(in *Inputs) bool {
			return in.Readiness != nil && in.Readiness.RecoveryScore != nil &&
				RecoveryBand(*in.Readiness.RecoveryScore) == BandHigh
		},
	},
	{
		Name:        "green_light",
		Priority:    25,
		Template:    "Everything is green: slept well, fresh, low stress. Go train hard.",
		Explanation: "High composite readiness with low soreness and stress.",
		When: func(in *Inputs) bool {
			return in.Readiness.HasCheckin() &&
				ReadinessBand(*in.Readiness.Composite) == BandHigh &&
				in.Readiness.Soreness <= 2 && in.Readiness.Stress <= 2
		},
	},
}

// Catalog returns the full rule catalog in insertion order.
func Catalog() []Rule {
	out := make([]Rule, len(catalog))
	copy(out, catalog)
	return out
}
