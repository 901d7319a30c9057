// ABOUTME: CLI command for daily readiness check-ins.
// ABOUTME: Same-day re-runs upsert; --auto prefills from wearable data.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/rollready/rollready/internal/engine"
	"github.com/rollready/rollready/internal/models"
	"github.com/spf13/cobra"
)

var (
	checkinDate    string
	checkinHotspot string
	checkinWeight  float64
	checkinAuto    bool
)

var checkinCmd = &cobra.Command{
	Use:     "checkin [sleep stress soreness energy]",
	Aliases: []string{"ci"},
	Short:   "Record a daily readiness check-in",
	Long: `Record a daily readiness check-in. All four sliders are 1-5 integers;
stress and soreness are inverted (lower is better).

The composite score is sleep + (6-stress) + (6-soreness) + energy on a
0-20 scale: 16+ is high readiness, 12-15 moderate, below 12 low.

Re-running for the same day updates the existing check-in. If the day's
values were auto-filled from a wearable, a manual edit marks the day as
wearable+manual; that tag never reverts.

Examples:
  rollready checkin 4 2 2 4
  rollready checkin 3 4 4 2 --hotspot "left knee"
  rollready checkin --auto                 # prefill from wearable data
  rollready checkin 5 1 1 5 --date 2024-01-09`,
	Args: cobra.RangeArgs(0, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := checkinDate
		if date == "" {
			date = time.Now().Format(models.DateLayout)
		} else if _, err := time.Parse(models.DateLayout, date); err != nil {
			return fmt.Errorf("invalid date: %s", checkinDate)
		}

		var sleep, stress, soreness, energy int
		source := models.ProvenanceManual

		switch {
		case checkinAuto && len(args) == 0:
			af, err := svc.AutoFillForDate(date)
			if err != nil {
				return fmt.Errorf("auto-fill: %w", err)
			}
			if af == nil {
				return fmt.Errorf("no wearable data for %s; enter sliders manually", date)
			}
			sleep, energy = af.Sleep, af.Energy
			stress, soreness = 3, 3 // wearables don't report these; midpoint until edited
			source = af.DataSource
			color.Yellow("Auto-filled sleep=%d energy=%d from wearable (edit stress/soreness as needed)", sleep, energy)
		case len(args) == 4:
			vals := make([]int, 4)
			for i, a := range args {
				v, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("invalid slider value: %s", a)
				}
				vals[i] = v
			}
			sleep, stress, soreness, energy = vals[0], vals[1], vals[2], vals[3]
		default:
			return fmt.Errorf("provide all four slider values, or --auto with none")
		}

		composite, err := engine.ReadinessScore(sleep, stress, soreness, energy)
		if err != nil {
			return err
		}

		c := models.NewCheckin(date, sleep, stress, soreness, energy).WithSource(source)
		if checkinHotspot != "" {
			c.WithHotspot(checkinHotspot)
		}
		if checkinWeight > 0 {
			c.WithBodyWeight(checkinWeight)
		}

		if recovery, err := repo.GetRecoveryByDate(date); err == nil {
			c.HRVMs = recovery.HRVMs
			c.RestingHR = recovery.RestingHR
			c.SpO2 = recovery.SpO2
			c.RecoveryScore = recovery.RecoveryScore
			c.SleepScore = recovery.SleepScore
		}

		if err := repo.UpsertCheckin(c); err != nil {
			return fmt.Errorf("save checkin: %w", err)
		}

		band := engine.ReadinessBand(composite)
		color.Green("✓ Checked in for %s", date)
		fmt.Printf("  composite %d/20 (%s readiness)\n", composite, band)
		return nil
	},
}

func init() {
	checkinCmd.Flags().StringVar(&checkinDate, "date", "", "calendar day (YYYY-MM-DD), defaults to today")
	checkinCmd.Flags().StringVar(&checkinHotspot, "hotspot", "", "injury hotspot note")
	checkinCmd.Flags().Float64Var(&checkinWeight, "weight", 0, "body weight in kg")
	checkinCmd.Flags().BoolVar(&checkinAuto, "auto", false, "prefill sleep/energy from wearable data")
	rootCmd.AddCommand(checkinCmd)
}
