// ABOUTME: Tests for model invariants: provenance, intervals, event math.
// ABOUTME: Pure struct behavior, no storage involved.
package models

import (
	"testing"
	"time"
)

func TestProvenanceWithManualEdit(t *testing.T) {
	tests := []struct {
		in, want Provenance
	}{
		{ProvenanceWearable, ProvenanceWearableManual},
		{ProvenanceManual, ProvenanceManual},
		{ProvenanceWearableManual, ProvenanceWearableManual},
	}

	for _, tt := range tests {
		if got := tt.in.WithManualEdit(); got != tt.want {
			t.Errorf("%s.WithManualEdit() = %s, want %s", tt.in, got, tt.want)
		}
	}

	// The transition is one-way: applying repeatedly never reverts.
	p := ProvenanceWearable.WithManualEdit().WithManualEdit()
	if p != ProvenanceWearableManual {
		t.Errorf("repeated edits gave %s, want wearable+manual", p)
	}
}

func TestIsValidProvenance(t *testing.T) {
	for _, valid := range []string{"manual", "wearable", "wearable+manual"} {
		if !IsValidProvenance(valid) {
			t.Errorf("IsValidProvenance(%q) = false", valid)
		}
	}
	if IsValidProvenance("device") {
		t.Error(`IsValidProvenance("device") = true`)
	}
}

func TestSessionInterval(t *testing.T) {
	s := NewSession("2024-01-10", "gi", 90, 4)

	if _, _, ok := s.Interval(); ok {
		t.Error("Interval() ok without a start time")
	}

	start := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	s.WithStartTime(start)
	gotStart, gotEnd, ok := s.Interval()
	if !ok {
		t.Fatal("Interval() not ok with a start time")
	}
	if !gotStart.Equal(start) {
		t.Errorf("start = %v, want %v", gotStart, start)
	}
	if want := start.Add(90 * time.Minute); !gotEnd.Equal(want) {
		t.Errorf("end = %v, want %v", gotEnd, want)
	}
}

func TestIsSupplementary(t *testing.T) {
	tests := []struct {
		classType string
		want      bool
	}{
		{"strength", true},
		{"mobility", true},
		{"conditioning", true},
		{"gi", false},
		{"nogi", false},
		{"competition", false},
	}

	for _, tt := range tests {
		s := NewSession("2024-01-10", tt.classType, 60, 3)
		if got := s.IsSupplementary(); got != tt.want {
			t.Errorf("IsSupplementary(%s) = %v, want %v", tt.classType, got, tt.want)
		}
	}
}

func TestEventDaysUntil(t *testing.T) {
	from := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		date string
		want int
	}{
		{"2024-01-10", 0},
		{"2024-01-17", 7},
		{"2024-03-20", 70},
		{"2024-01-05", -5},
	}

	for _, tt := range tests {
		e := NewEvent("Test", tt.date)
		if got := e.DaysUntil(from); got != tt.want {
			t.Errorf("DaysUntil(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestWorkoutDuration(t *testing.T) {
	start := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	w := NewWearableWorkout("ext-1", "jiu_jitsu", start, start.Add(90*time.Minute))
	if w.Duration() != 90*time.Minute {
		t.Errorf("Duration() = %v, want 90m", w.Duration())
	}
}

func TestCheckinHasHotspot(t *testing.T) {
	c := NewCheckin("2024-01-10", 4, 2, 2, 4)
	if c.HasHotspot() {
		t.Error("HasHotspot() = true without a hotspot")
	}
	c.WithHotspot("")
	if c.HasHotspot() {
		t.Error("HasHotspot() = true for empty string")
	}
	c.WithHotspot("left knee")
	if !c.HasHotspot() {
		t.Error("HasHotspot() = false with a hotspot set")
	}
}
