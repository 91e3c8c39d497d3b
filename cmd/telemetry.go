package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/earlab/aiprobe/internal/probe"
	consts "github.com/earlab/aiprobe/internal/shared/constants"
)

type telemetryRecord struct {
	Timestamp           time.Time `json:"timestamp"`
	Command             string    `json:"command"`
	ProbeCount          int       `json:"probe_count"`
	SuccessCount        int       `json:"success_count"`
	SkippedCount        int       `json:"skipped_count"`
	ErrorCount          int       `json:"error_count"`
	SuccessRate         float64   `json:"success_rate"`
	DurationSeconds     float64   `json:"duration_seconds"`
	AvgDurationPerProbe float64   `json:"avg_duration_per_probe"`
	EstimatedSpendUSD   float64   `json:"estimated_spend_usd"`
}

func recordTelemetry(appCtx *AppContext, command string, results []probe.Result, duration time.Duration) error {
	okCount, skippedCount, errorCount := summarizeStatuses(results)
	total := len(results)

	successRate := 0.0
	if total > 0 {
		successRate = (float64(okCount+skippedCount) / float64(total)) * 100
	}

	avgDuration := 0.0
	if total > 0 {
		avgDuration = duration.Seconds() / float64(total)
	}

	spend := 0.0
	for _, r := range results {
		spend += r.EstimatedCost
	}

	record := telemetryRecord{
		Timestamp:           time.Now().UTC(),
		Command:             command,
		ProbeCount:          total,
		SuccessCount:        okCount,
		SkippedCount:        skippedCount,
		ErrorCount:          errorCount,
		SuccessRate:         successRate,
		DurationSeconds:     duration.Seconds(),
		AvgDurationPerProbe: avgDuration,
		EstimatedSpendUSD:   spend,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal telemetry: %w", err)
	}

	telemetryPath := filepath.Join(appCtx.ResultsDir, "telemetry.jsonl")
	f, err := os.OpenFile(telemetryPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, consts.DefaultFilePerm)
	if err != nil {
		return fmt.Errorf("open telemetry file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write telemetry: %w", err)
	}

	return nil
}

func summarizeStatuses(results []probe.Result) (okCount, skippedCount, errorCount int) {
	for _, r := range results {
		switch r.Status {
		case probe.StatusOK:
			okCount++
		case probe.StatusSkipped:
			skippedCount++
		default:
			errorCount++
		}
	}
	return okCount, skippedCount, errorCount
}
