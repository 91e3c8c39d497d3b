package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/earlab/aiprobe/internal/credential"
	"github.com/earlab/aiprobe/internal/probe"
	consts "github.com/earlab/aiprobe/internal/shared/constants"
)

const (
	jsonPrefix = ""
	jsonIndent = "  "
)

// RunMetadata describes one suite run in results.json. The credential is
// stored only as a masked preview.
type RunMetadata struct {
	KeyPreview  string    `json:"key_preview"`
	BaseURL     string    `json:"base_url,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	TotalProbes int       `json:"total_probes"`
}

// RunOutput is the results.json document.
type RunOutput struct {
	Metadata RunMetadata    `json:"metadata"`
	Results  []probe.Result `json:"results"`
}

// writeResults persists a suite run under the results directory.
func writeResults(appCtx *AppContext, filename string, results []probe.Result, startedAt time.Time) (string, error) {
	out := RunOutput{
		Metadata: RunMetadata{
			KeyPreview:  credential.Preview(appCtx.APIKey),
			BaseURL:     appCtx.Config.Defaults.BaseURL,
			StartedAt:   startedAt,
			CompletedAt: time.Now().UTC(),
			TotalProbes: len(results),
		},
		Results: results,
	}

	b, err := json.MarshalIndent(out, jsonPrefix, jsonIndent)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	resultsPath := filepath.Join(appCtx.ResultsDir, filename)
	if err := os.WriteFile(resultsPath, b, consts.DefaultFilePerm); err != nil {
		return "", fmt.Errorf("failed to write results: %w", err)
	}
	return resultsPath, nil
}
