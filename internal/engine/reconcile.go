// ABOUTME: Reconciles manual checkins with wearable recovery snapshots.
// ABOUTME: Manual values are authoritative; wearable auto-fill is advisory.
package engine

import (
	"sort"

	"github.com/rollready/rollready/internal/models"
)

// Wearable recovery display bands on the 0-100 scale. Kept physically
// separate from the composite readiness thresholds in readiness.go:
// the two scales must never share constants.
const (
	recoveryHighMin     = 67.0
	recoveryModerateMin = 34.0
)

// RecoveryBand classifies a wearable recovery score on the 0-100 scale.
func RecoveryBand(score float64) Band {
	switch {
	case score >= recoveryHighMin:
		return BandHigh
	case score >= recoveryModerateMin:
		return BandModerate
	default:
		return BandLow
	}
}

// AutoFillTable maps a 0-100 wearable score onto a 1-5 slider value.
// Breakpoints must be sorted descending by Min; the first breakpoint
// whose Min the score meets wins. The exact breakpoints are product
// configuration, injectable via config, not fixed here.
type AutoFillTable struct {
	Breakpoints []AutoFillBreakpoint
}

// AutoFillBreakpoint is one row of the mapping table.
type AutoFillBreakpoint struct {
	Min    float64 `json:"min"`
	Slider int     `json:"slider"`
}

// DefaultAutoFillTable returns the stock wearable-to-slider mapping.
func DefaultAutoFillTable() AutoFillTable {
	return AutoFillTable{Breakpoints: []AutoFillBreakpoint{
		{Min: 90, Slider: 5},
		{Min: 75, Slider: 4},
		{Min: 50, Slider: 3},
		{Min: 25, Slider: 2},
		{Min: 0, Slider: 1},
	}}
}

// Slider maps a 0-100 score to a 1-5 slider value.
func (t AutoFillTable) Slider(score float64) int {
	bps := make([]AutoFillBreakpoint, len(t.Breakpoints))
	copy(bps, t.Breakpoints)
	sort.Slice(bps, func(i, j int) bool { return bps[i].Min > bps[j].Min })
	for _, bp := range bps {
		if score >= bp.Min {
			return bp.Slider
		}
	}
	return 1
}

// AutoFill is the suggested slider prefill derived from a wearable
// recovery snapshot, offered when no manual checkin exists yet.
type AutoFill struct {
	Sleep         int
	Energy        int
	HRVMs         *float64
	RestingHR     *float64
	SpO2          *float64
	RecoveryScore *float64
	SleepScore    *float64
	DataSource    models.Provenance
}

// Reconciled is the resolved readiness state for one day. Composite is
// nil when no manual checkin exists (a wearable snapshot alone cannot
// produce a composite score; stress and soreness are self-reported).
type Reconciled struct {
	Date      string
	Source    models.Provenance
	Sleep     int
	Stress    int
	Soreness  int
	Energy    int
	Composite *int
	Hotspot   string

	RecoveryScore *float64 // 0-100, surfaced alongside, never overwrites sliders
	HRVMs         *float64
	RestingHR     *float64
}

// Band returns the readiness band, falling back to the wearable
// recovery band when no composite exists. Unknown when neither source
// is present.
func (r *Reconciled) Band() Band {
	if r == nil {
		return BandUnknown
	}
	if r.Composite != nil {
		return ReadinessBand(*r.Composite)
	}
	if r.RecoveryScore != nil {
		return RecoveryBand(*r.RecoveryScore)
	}
	return BandUnknown
}

// HasCheckin reports whether a manual checkin contributed.
func (r *Reconciled) HasCheckin() bool {
	return r != nil && r.Composite != nil
}

// Reconcile decides the day's readiness source. A manual checkin is
// authoritative for the sliders; the wearable snapshot only annotates.
// With no checkin, the wearable snapshot yields recovery context but
// no composite. With neither, the day is unknown and nil is returned;
// callers must treat nil as "unknown", never as zero.
func Reconcile(checkin *models.ReadinessCheckin, recovery *models.WearableRecovery) (*Reconciled, error) {
	if checkin == nil && recovery == nil {
		return nil, nil
	}

	if checkin != nil {
		composite, err := ReadinessScore(checkin.Sleep, checkin.Stress, checkin.Soreness, checkin.Energy)
		if err != nil {
			return nil, err
		}
		r := &Reconciled{
			Date:      checkin.Date,
			Source:    checkin.Source,
			Sleep:     checkin.Sleep,
			Stress:    checkin.Stress,
			Soreness:  checkin.Soreness,
			Energy:    checkin.Energy,
			Composite: &composite,
			RecoveryScore: checkin.RecoveryScore,
			HRVMs:         checkin.HRVMs,
			RestingHR:     checkin.RestingHR,
		}
		if checkin.HasHotspot() {
			r.Hotspot = *checkin.Hotspot
		}
		if recovery != nil {
			// Surface the snapshot alongside; slider values stay as entered.
			if r.RecoveryScore == nil {
				r.RecoveryScore = recovery.RecoveryScore
			}
			if r.HRVMs == nil {
				r.HRVMs = recovery.HRVMs
			}
			if r.RestingHR == nil {
				r.RestingHR = recovery.RestingHR
			}
		}
		return r, nil
	}

	return &Reconciled{
		Date:          recovery.Date,
		Source:        models.ProvenanceWearable,
		RecoveryScore: recovery.RecoveryScore,
		HRVMs:         recovery.HRVMs,
		RestingHR:     recovery.RestingHR,
	}, nil
}

// BuildAutoFill derives slider prefill values from a recovery
// snapshot, or nil when no wearable data exists for the date. Sleep
// comes from the wearable sleep score, energy from the recovery score;
// whichever is missing falls back to the other before defaulting to
// the table floor.
func BuildAutoFill(recovery *models.WearableRecovery, table AutoFillTable) *AutoFill {
	if recovery == nil {
		return nil
	}
	sleepSrc := recovery.SleepScore
	if sleepSrc == nil {
		sleepSrc = recovery.RecoveryScore
	}
	energySrc := recovery.RecoveryScore
	if energySrc == nil {
		energySrc = recovery.SleepScore
	}
	if sleepSrc == nil && energySrc == nil {
		return nil
	}

	af := &AutoFill{
		Sleep:         3,
		Energy:        3,
		HRVMs:         recovery.HRVMs,
		RestingHR:     recovery.RestingHR,
		SpO2:          recovery.SpO2,
		RecoveryScore: recovery.RecoveryScore,
		SleepScore:    recovery.SleepScore,
		DataSource:    models.ProvenanceWearable,
	}
	if sleepSrc != nil {
		af.Sleep = table.Slider(*sleepSrc)
	}
	if energySrc != nil {
		af.Energy = table.Slider(*energySrc)
	}
	return af
}
