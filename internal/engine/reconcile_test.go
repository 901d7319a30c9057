// ABOUTME: Tests for readiness reconciliation and wearable auto-fill.
// ABOUTME: Manual sliders must always win; wearable data only annotates.
package engine

import (
	"testing"
	"time"

	"github.com/rollready/rollready/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestRecoveryBand(t *testing.T) {
	tests := []struct {
		score float64
		want  Band
	}{
		{100, BandHigh},
		{67, BandHigh},
		{66.9, BandModerate},
		{34, BandModerate},
		{33.9, BandLow},
		{0, BandLow},
	}

	for _, tt := range tests {
		if got := RecoveryBand(tt.score); got != tt.want {
			t.Errorf("RecoveryBand(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAutoFillTableSlider(t *testing.T) {
	table := DefaultAutoFillTable()
	tests := []struct {
		score float64
		want  int
	}{
		{100, 5},
		{90, 5},
		{89.9, 4},
		{75, 4},
		{74.9, 3},
		{50, 3},
		{49.9, 2},
		{25, 2},
		{24.9, 1},
		{0, 1},
	}

	for _, tt := range tests {
		if got := table.Slider(tt.score); got != tt.want {
			t.Errorf("Slider(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestReconcileNeitherSource(t *testing.T) {
	r, err := Reconcile(nil, nil)
	if err != nil {
		t.Fatalf("Reconcile(nil, nil) error = %v", err)
	}
	if r != nil {
		t.Fatalf("Reconcile(nil, nil) = %+v, want nil", r)
	}
	if r.Band() != BandUnknown {
		t.Errorf("nil Reconciled Band() = %s, want unknown", r.Band())
	}
	if r.HasCheckin() {
		t.Error("nil Reconciled HasCheckin() = true, want false")
	}
}

func TestReconcileCheckinOnly(t *testing.T) {
	checkin := models.NewCheckin("2024-01-10", 4, 2, 2, 4)
	checkin.WithHotspot("left knee")

	r, err := Reconcile(checkin, nil)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if !r.HasCheckin() {
		t.Fatal("HasCheckin() = false, want true")
	}
	if *r.Composite != 16 {
		t.Errorf("Composite = %d, want 16", *r.Composite)
	}
	if r.Band() != BandHigh {
		t.Errorf("Band() = %s, want high", r.Band())
	}
	if r.Source != models.ProvenanceManual {
		t.Errorf("Source = %s, want manual", r.Source)
	}
	if r.Hotspot != "left knee" {
		t.Errorf("Hotspot = %q, want left knee", r.Hotspot)
	}
}

func TestReconcileWearableOnly(t *testing.T) {
	recovery := models.NewRecovery("2024-01-10", time.Now())
	recovery.RecoveryScore = floatPtr(45)
	recovery.HRVMs = floatPtr(62)

	r, err := Reconcile(nil, recovery)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if r.HasCheckin() {
		t.Error("HasCheckin() = true for wearable-only day")
	}
	if r.Composite != nil {
		t.Errorf("Composite = %v, want nil (no self-reported sliders)", *r.Composite)
	}
	// No composite, so the band falls back to the recovery band.
	if r.Band() != BandModerate {
		t.Errorf("Band() = %s, want moderate", r.Band())
	}
	if r.Source != models.ProvenanceWearable {
		t.Errorf("Source = %s, want wearable", r.Source)
	}
}

func TestReconcileCheckinWinsOverWearable(t *testing.T) {
	checkin := models.NewCheckin("2024-01-10", 2, 4, 4, 2)
	recovery := models.NewRecovery("2024-01-10", time.Now())
	recovery.RecoveryScore = floatPtr(95)
	recovery.HRVMs = floatPtr(80)

	r, err := Reconcile(checkin, recovery)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	// Low manual composite (8) wins over the green recovery score.
	if r.Band() != BandLow {
		t.Errorf("Band() = %s, want low (composite is authoritative)", r.Band())
	}
	if r.Sleep != 2 || r.Stress != 4 {
		t.Errorf("sliders not from checkin: sleep=%d stress=%d", r.Sleep, r.Stress)
	}
	// Wearable fields annotate alongside.
	if r.RecoveryScore == nil || *r.RecoveryScore != 95 {
		t.Error("recovery score not surfaced alongside the checkin")
	}
	if r.HRVMs == nil || *r.HRVMs != 80 {
		t.Error("HRV not surfaced alongside the checkin")
	}
}

func TestReconcileRejectsBadSliders(t *testing.T) {
	checkin := models.NewCheckin("2024-01-10", 9, 2, 2, 4)
	if _, err := Reconcile(checkin, nil); err == nil {
		t.Fatal("expected validation error for slider out of range")
	}
}

func TestBuildAutoFill(t *testing.T) {
	table := DefaultAutoFillTable()

	t.Run("nil recovery", func(t *testing.T) {
		if af := BuildAutoFill(nil, table); af != nil {
			t.Errorf("BuildAutoFill(nil) = %+v, want nil", af)
		}
	})

	t.Run("no scores at all", func(t *testing.T) {
		rec := models.NewRecovery("2024-01-10", time.Now())
		rec.HRVMs = floatPtr(60)
		if af := BuildAutoFill(rec, table); af != nil {
			t.Errorf("BuildAutoFill with no scores = %+v, want nil", af)
		}
	})

	t.Run("both scores present", func(t *testing.T) {
		rec := models.NewRecovery("2024-01-10", time.Now())
		rec.SleepScore = floatPtr(92)
		rec.RecoveryScore = floatPtr(60)

		af := BuildAutoFill(rec, table)
		if af == nil {
			t.Fatal("BuildAutoFill returned nil")
		}
		if af.Sleep != 5 {
			t.Errorf("Sleep = %d, want 5 (from sleep score 92)", af.Sleep)
		}
		if af.Energy != 3 {
			t.Errorf("Energy = %d, want 3 (from recovery score 60)", af.Energy)
		}
		if af.DataSource != models.ProvenanceWearable {
			t.Errorf("DataSource = %s, want wearable", af.DataSource)
		}
	})

	t.Run("sleep falls back to recovery score", func(t *testing.T) {
		rec := models.NewRecovery("2024-01-10", time.Now())
		rec.RecoveryScore = floatPtr(80)

		af := BuildAutoFill(rec, table)
		if af == nil {
			t.Fatal("BuildAutoFill returned nil")
		}
		if af.Sleep != 4 || af.Energy != 4 {
			t.Errorf("Sleep, Energy = %d, %d, want 4, 4", af.Sleep, af.Energy)
		}
	})

	t.Run("energy falls back to sleep score", func(t *testing.T) {
		rec := models.NewRecovery("2024-01-10", time.Now())
		rec.SleepScore = floatPtr(30)

		af := BuildAutoFill(rec, table)
		if af == nil {
			t.Fatal("BuildAutoFill returned nil")
		}
		if af.Sleep != 2 || af.Energy != 2 {
			t.Errorf("Sleep, Energy = %d, %d, want 2, 2", af.Sleep, af.Energy)
		}
	})
}
