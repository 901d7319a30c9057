// ABOUTME: Tests for rule evaluation, priority ordering, and labels.
// ABOUTME: Exercises individual catalog rules through realistic inputs.
package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/rollready/rollready/internal/models"
)

var evalNow = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func dayOffset(n int) string {
	return evalNow.AddDate(0, 0, n).Format(models.DateLayout)
}

func reconciledFor(t *testing.T, checkin *models.ReadinessCheckin, recovery *models.WearableRecovery) *Reconciled {
	t.Helper()
	r, err := Reconcile(checkin, recovery)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestCatalogShape(t *testing.T) {
	rules := Catalog()
	if len(rules) != 21 {
		t.Fatalf("catalog has %d rules, want 21", len(rules))
	}

	seen := map[string]bool{}
	for _, r := range rules {
		if r.Name == "" || r.Template == "" || r.Explanation == "" || r.When == nil {
			t.Errorf("rule %q has empty fields", r.Name)
		}
		if seen[r.Name] {
			t.Errorf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = true
		if r.Priority < 1 {
			t.Errorf("rule %q has priority %d, want >= 1", r.Name, r.Priority)
		}
	}
}

func TestEvaluateNoInputs(t *testing.T) {
	s := Evaluate(&Inputs{Now: evalNow})
	if s.Label != LabelCheckIn {
		t.Errorf("Label = %q, want %q", s.Label, LabelCheckIn)
	}
	if len(s.Triggered) != 0 {
		t.Errorf("Triggered = %d rules, want 0", len(s.Triggered))
	}
	if s.Composite != nil {
		t.Error("Composite set with no checkin")
	}
	if s.Text == "" {
		t.Error("Text empty; should prompt for a check-in")
	}
}

func TestEvaluateGreenLight(t *testing.T) {
	checkin := models.NewCheckin(dayOffset(0), 5, 1, 1, 5)
	s := Evaluate(&Inputs{
		Readiness: reconciledFor(t, checkin, nil),
		Checkins:  []*models.ReadinessCheckin{checkin},
		Now:       evalNow,
	})

	if s.Label != LabelTrainHard {
		t.Errorf("Label = %q, want %q", s.Label, LabelTrainHard)
	}
	if !ruleFired(s, "green_light") {
		t.Errorf("green_light did not fire; triggered: %v", ruleNames(s))
	}
	if s.Composite == nil || *s.Composite != 20 {
		t.Errorf("Composite = %v, want 20", s.Composite)
	}
}

func TestEvaluateHotspotRendersTemplate(t *testing.T) {
	checkin := models.NewCheckin(dayOffset(0), 4, 2, 2, 4).WithHotspot("left knee")
	s := Evaluate(&Inputs{
		Readiness: reconciledFor(t, checkin, nil),
		Checkins:  []*models.ReadinessCheckin{checkin},
		Now:       evalNow,
	})

	if !ruleFired(s, "hotspot_active") {
		t.Fatalf("hotspot_active did not fire; triggered: %v", ruleNames(s))
	}
	for _, r := range s.Triggered {
		if r.Name == "hotspot_active" {
			if !strings.Contains(r.Recommendation, "left knee") {
				t.Errorf("recommendation %q missing hotspot text", r.Recommendation)
			}
			if strings.Contains(r.Recommendation, "{") {
				t.Errorf("unrendered token in %q", r.Recommendation)
			}
		}
	}
}

func TestEvaluatePersistentInjuries(t *testing.T) {
	var checkins []*models.ReadinessCheckin
	for i := 0; i < 3; i++ {
		c := models.NewCheckin(dayOffset(-i), 4, 2, 2, 4).WithHotspot("right shoulder")
		checkins = append(checkins, c)
	}
	s := Evaluate(&Inputs{
		Readiness: reconciledFor(t, checkins[0], nil),
		Checkins:  checkins,
		Now:       evalNow,
	})

	if !ruleFired(s, "persistent_injuries") {
		t.Errorf("persistent_injuries did not fire; triggered: %v", ruleNames(s))
	}
	// Highest urgency rule provides the suggestion text.
	if !strings.Contains(s.Text, "right shoulder") {
		t.Errorf("Text = %q, want persistent-injury message", s.Text)
	}
}

func TestEvaluateRecoveryMode(t *testing.T) {
	s := Evaluate(&Inputs{RecoveryMode: true, Now: evalNow})
	if !ruleFired(s, "recovery_mode_active") {
		t.Errorf("recovery_mode_active did not fire; triggered: %v", ruleNames(s))
	}
}

func TestEvaluateLowWearableRecovery(t *testing.T) {
	recovery := models.NewRecovery(dayOffset(0), evalNow)
	recovery.RecoveryScore = floatPtr(20)

	s := Evaluate(&Inputs{
		Readiness:  reconciledFor(t, nil, recovery),
		Recoveries: []*models.WearableRecovery{recovery},
		Now:        evalNow,
	})

	if !ruleFired(s, "whoop_low_recovery") {
		t.Errorf("whoop_low_recovery did not fire; triggered: %v", ruleNames(s))
	}
	// Wearable-only day: label comes from the recovery band.
	if s.Label != LabelRestDay {
		t.Errorf("Label = %q, want %q", s.Label, LabelRestDay)
	}
	if s.Composite != nil {
		t.Error("Composite set on a wearable-only day")
	}
}

func TestEvaluateRestAfterHighIntensity(t *testing.T) {
	session := models.NewSession(dayOffset(0), "gi", 90, 5)
	s := Evaluate(&Inputs{
		Sessions: []*models.TrainingSession{session},
		Now:      evalNow,
	})

	if !ruleFired(s, "rest_after_high_intensity") {
		t.Errorf("rest_after_high_intensity did not fire; triggered: %v", ruleNames(s))
	}
}

func TestEvaluateCompetitionWindows(t *testing.T) {
	tests := []struct {
		name     string
		daysOut  int
		wantRule string
	}{
		{"fight week", 5, "comp_fight_week"},
		{"peak phase", 14, "comp_peak_phase"},
		{"base building", 60, "comp_base_building"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := models.NewEvent("Worlds", dayOffset(tt.daysOut))
			s := Evaluate(&Inputs{Event: event, Now: evalNow})
			if !ruleFired(s, tt.wantRule) {
				t.Errorf("%s did not fire at %d days out; triggered: %v",
					tt.wantRule, tt.daysOut, ruleNames(s))
			}
			for _, r := range s.Triggered {
				if r.Name == tt.wantRule && !strings.Contains(r.Recommendation, "Worlds") {
					t.Errorf("event name not rendered in %q", r.Recommendation)
				}
			}
		})
	}
}

func TestEvaluateTaperWarning(t *testing.T) {
	event := models.NewEvent("Pans", dayOffset(10))
	hard := models.NewSession(dayOffset(-1), "gi", 90, 4)
	s := Evaluate(&Inputs{
		Event:    event,
		Sessions: []*models.TrainingSession{hard},
		Now:      evalNow,
	})

	if !ruleFired(s, "comp_taper_warning") {
		t.Errorf("comp_taper_warning did not fire; triggered: %v", ruleNames(s))
	}
}

func TestEvaluateConsecutiveGi(t *testing.T) {
	var sessions []*models.TrainingSession
	for i := 0; i < 3; i++ {
		sessions = append(sessions, models.NewSession(dayOffset(-i-2), "gi", 60, 3))
	}
	s := Evaluate(&Inputs{Sessions: sessions, Now: evalNow})

	if !ruleFired(s, "consecutive_gi") {
		t.Errorf("consecutive_gi did not fire; triggered: %v", ruleNames(s))
	}
	if ruleFired(s, "consecutive_nogi") {
		t.Error("consecutive_nogi fired for gi-only history")
	}
}

func TestEvaluateHRVSustainedDecline(t *testing.T) {
	// Four days of HRV, newest first: 50 < 55 < 60 < 65.
	var recoveries []*models.WearableRecovery
	for i, hrv := range []float64{50, 55, 60, 65} {
		r := models.NewRecovery(dayOffset(-i), evalNow)
		r.HRVMs = floatPtr(hrv)
		recoveries = append(recoveries, r)
	}
	s := Evaluate(&Inputs{Recoveries: recoveries, Now: evalNow})

	if !ruleFired(s, "whoop_hrv_sustained_decline") {
		t.Errorf("whoop_hrv_sustained_decline did not fire; triggered: %v", ruleNames(s))
	}
}

func TestEvaluateHRVDropBelowBaseline(t *testing.T) {
	// Baseline from prior days is 70; today's 50 is below 85% of it.
	checkin := models.NewCheckin(dayOffset(0), 3, 3, 3, 3)
	checkin.HRVMs = floatPtr(50)

	var recoveries []*models.WearableRecovery
	for i := 1; i <= 4; i++ {
		r := models.NewRecovery(dayOffset(-i), evalNow)
		r.HRVMs = floatPtr(70)
		recoveries = append(recoveries, r)
	}

	s := Evaluate(&Inputs{
		Readiness:  reconciledFor(t, checkin, nil),
		Checkins:   []*models.ReadinessCheckin{checkin},
		Recoveries: recoveries,
		Now:        evalNow,
	})

	if !ruleFired(s, "whoop_hrv_drop") {
		t.Errorf("whoop_hrv_drop did not fire; triggered: %v", ruleNames(s))
	}
}

func TestEvaluatePriorityOrderAndTopCap(t *testing.T) {
	// Stack inputs so many rules fire at once.
	checkin := models.NewCheckin(dayOffset(0), 1, 5, 5, 1).WithHotspot("neck")
	recovery := models.NewRecovery(dayOffset(0), evalNow)
	recovery.RecoveryScore = floatPtr(10)

	var checkins []*models.ReadinessCheckin
	checkins = append(checkins, checkin)
	for i := 1; i < 4; i++ {
		c := models.NewCheckin(dayOffset(-i), 1, 5, 5, 1).WithHotspot("neck")
		checkins = append(checkins, c)
	}

	s := Evaluate(&Inputs{
		Readiness:    reconciledFor(t, checkin, recovery),
		Checkins:     checkins,
		Recoveries:   []*models.WearableRecovery{recovery},
		RecoveryMode: true,
		Now:          evalNow,
	})

	if len(s.Triggered) < 4 {
		t.Fatalf("expected several rules, got %v", ruleNames(s))
	}
	for i := 1; i < len(s.Triggered); i++ {
		if s.Triggered[i-1].Priority > s.Triggered[i].Priority {
			t.Errorf("rules out of priority order: %s(%d) before %s(%d)",
				s.Triggered[i-1].Name, s.Triggered[i-1].Priority,
				s.Triggered[i].Name, s.Triggered[i].Priority)
		}
	}
	if len(s.Top) != TopRuleCount {
		t.Errorf("Top = %d rules, want %d", len(s.Top), TopRuleCount)
	}
	if s.Top[0].Name != "persistent_injuries" {
		t.Errorf("top rule = %s, want persistent_injuries", s.Top[0].Name)
	}
	if s.Label != LabelRestDay {
		t.Errorf("Label = %q, want %q", s.Label, LabelRestDay)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	checkin := models.NewCheckin(dayOffset(0), 5, 1, 1, 5)
	in := &Inputs{
		Readiness: reconciledFor(t, checkin, nil),
		Checkins:  []*models.ReadinessCheckin{checkin},
		Now:       evalNow,
	}

	first := Evaluate(in)
	second := Evaluate(in)
	if first.Text != second.Text || first.Label != second.Label {
		t.Error("Evaluate is not deterministic for identical inputs")
	}
	if len(first.Triggered) != len(second.Triggered) {
		t.Fatal("triggered rule counts differ across runs")
	}
	for i := range first.Triggered {
		if first.Triggered[i] != second.Triggered[i] {
			t.Errorf("rule %d differs: %+v vs %+v", i, first.Triggered[i], second.Triggered[i])
		}
	}
}

func ruleFired(s Suggestion, name string) bool {
	for _, r := range s.Triggered {
		if r.Name == name {
			return true
		}
	}
	return false
}

func ruleNames(s Suggestion) []string {
	var names []string
	for _, r := range s.Triggered {
		names = append(names, r.Name)
	}
	return names
}
