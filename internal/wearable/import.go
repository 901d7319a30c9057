// ABOUTME: Parser for wearable JSON exports (daily cycles + workouts).
// ABOUTME: Missing or partial files degrade to fewer rows, never errors.
package wearable

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rollready/rollready/internal/models"
	"github.com/rollready/rollready/internal/storage"
)

// exportFile is the shape of a wearable data export.
type exportFile struct {
	Cycles   []cycle   `json:"cycles"`
	Workouts []workout `json:"workouts"`
}

type cycle struct {
	Date          string   `json:"date"`
	RecoveryScore *float64 `json:"recovery_score"`
	HRVMs         *float64 `json:"hrv_ms"`
	RestingHR     *float64 `json:"resting_hr"`
	SpO2          *float64 `json:"spo2"`
	SleepScore    *float64 `json:"sleep_score"`
	RecordedAt    string   `json:"recorded_at"`
}

type workout struct {
	ID           string  `json:"id"`
	Sport        string  `json:"sport"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Strain       float64 `json:"strain"`
	Calories     float64 `json:"calories"`
	AvgHeartRate float64 `json:"avg_heart_rate"`
	MaxHeartRate float64 `json:"max_heart_rate"`
}

// Summary counts imported and skipped records.
type Summary struct {
	Recoveries int
	Workouts   int
	Skipped    int
}

// Import parses a wearable export and upserts its records. Rows with
// unparseable dates or intervals are skipped and counted; the import
// never fails part-way on bad data.
func Import(r io.Reader, repo storage.Repository) (*Summary, error) {
	var file exportFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse wearable export: %w", err)
	}

	summary := &Summary{}

	for _, c := range file.Cycles {
		if _, err := time.Parse(models.DateLayout, c.Date); err != nil {
			summary.Skipped++
			continue
		}
		recordedAt, err := time.Parse(time.RFC3339, c.RecordedAt)
		if err != nil {
			recordedAt = time.Now()
		}

		rec := models.NewRecovery(c.Date, recordedAt)
		rec.RecoveryScore = c.RecoveryScore
		rec.HRVMs = c.HRVMs
		rec.RestingHR = c.RestingHR
		rec.SpO2 = c.SpO2
		rec.SleepScore = c.SleepScore

		if err := repo.UpsertRecovery(rec); err != nil {
			return nil, fmt.Errorf("import recovery %s: %w", c.Date, err)
		}
		summary.Recoveries++
	}

	for _, w := range file.Workouts {
		start, err := time.Parse(time.RFC3339, w.Start)
		if err != nil {
			summary.Skipped++
			continue
		}
		end, err := time.Parse(time.RFC3339, w.End)
		if err != nil || !end.After(start) || w.ID == "" {
			summary.Skipped++
			continue
		}

		rec := models.NewWearableWorkout(w.ID, w.Sport, start, end)
		rec.Strain = w.Strain
		rec.Calories = w.Calories
		rec.AvgHeartRate = w.AvgHeartRate
		rec.MaxHeartRate = w.MaxHeartRate

		if err := repo.UpsertWearableWorkout(rec); err != nil {
			return nil, fmt.Errorf("import workout %s: %w", w.ID, err)
		}
		summary.Workouts++
	}

	return summary, nil
}
