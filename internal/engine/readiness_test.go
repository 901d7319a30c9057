// ABOUTME: Tests for the composite readiness score and its bands.
// ABOUTME: Covers the inverted sliders and out-of-range rejection.
package engine

import (
	"errors"
	"testing"
)

func TestReadinessScore(t *testing.T) {
	tests := []struct {
		name                           string
		sleep, stress, soreness, energy int
		want                           int
	}{
		{"typical good day", 4, 2, 2, 4, 16},
		{"best possible", 5, 1, 1, 5, 20},
		{"worst possible", 1, 5, 5, 1, 4},
		{"all midpoints", 3, 3, 3, 3, 12},
		{"stress and soreness invert", 3, 1, 1, 3, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadinessScore(tt.sleep, tt.stress, tt.soreness, tt.energy)
			if err != nil {
				t.Fatalf("ReadinessScore() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadinessScore(%d,%d,%d,%d) = %d, want %d",
					tt.sleep, tt.stress, tt.soreness, tt.energy, got, tt.want)
			}
		})
	}
}

func TestReadinessScoreRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name                           string
		sleep, stress, soreness, energy int
		field                          string
	}{
		{"sleep zero", 0, 3, 3, 3, "sleep"},
		{"sleep six", 6, 3, 3, 3, "sleep"},
		{"stress negative", 3, -1, 3, 3, "stress"},
		{"soreness six", 3, 3, 6, 3, "soreness"},
		{"energy zero", 3, 3, 3, 0, "energy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadinessScore(tt.sleep, tt.stress, tt.soreness, tt.energy)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("error field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestReadinessBand(t *testing.T) {
	tests := []struct {
		composite int
		want      Band
	}{
		{20, BandHigh},
		{16, BandHigh},
		{15, BandModerate},
		{12, BandModerate},
		{11, BandLow},
		{4, BandLow},
	}

	for _, tt := range tests {
		if got := ReadinessBand(tt.composite); got != tt.want {
			t.Errorf("ReadinessBand(%d) = %s, want %s", tt.composite, got, tt.want)
		}
	}
}
