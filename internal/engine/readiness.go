// ABOUTME: Composite readiness score from the four daily sliders.
// ABOUTME: Stress and soreness are inverted; scale is 0-20.
package engine

// Band is a coarse readiness classification.
type Band string

const (
	BandHigh     Band = "high"
	BandModerate Band = "moderate"
	BandLow      Band = "low"
	BandUnknown  Band = "unknown"
)

// Composite readiness thresholds on the 0-20 scale. These are domain
// constants, independent from the wearable recovery bands in
// reconcile.go (0-100 scale) despite the similar names.
const (
	readinessHighMin     = 16
	readinessModerateMin = 12
)

// ReadinessScore computes the composite wellness score from the four
// 1-5 sliders: sleep + (6 - stress) + (6 - soreness) + energy. Lower
// reported stress and soreness contribute more. Each input must be an
// integer in [1,5]; anything else is a caller error.
func ReadinessScore(sleep, stress, soreness, energy int) (int, error) {
	if err := validateSlider("sleep", sleep); err != nil {
		return 0, err
	}
	if err := validateSlider("stress", stress); err != nil {
		return 0, err
	}
	if err := validateSlider("soreness", soreness); err != nil {
		return 0, err
	}
	if err := validateSlider("energy", energy); err != nil {
		return 0, err
	}
	return sleep + (6 - stress) + (6 - soreness) + energy, nil
}

// ReadinessBand classifies a composite score on the 0-20 scale.
func ReadinessBand(composite int) Band {
	switch {
	case composite >= readinessHighMin:
		return BandHigh
	case composite >= readinessModerateMin:
		return BandModerate
	default:
		return BandLow
	}
}
