package probe

import (
	"context"
	"errors"
	"time"

	"github.com/earlab/aiprobe/internal/openai"
)

// STTProber exercises the transcription endpoint. A real audio file is
// required for a live upload; without one the probe reports a skip rather
// than failing the suite.
type STTProber struct {
	Client    *openai.Client
	Model     string
	AudioPath string
}

// Probe uploads the audio file, or skips when none was provided.
func (p *STTProber) Probe(ctx context.Context) Result {
	result := Result{
		Probe:     p.Name(),
		CheckedAt: time.Now().UTC(),
	}

	if p.AudioPath == "" {
		result.Status = StatusSkipped
		result.AddNote("transcription requires an audio file; pass --audio to run a live upload")
		return result
	}

	start := time.Now()
	tr, err := p.Client.Transcribe(ctx, p.Model, p.AudioPath)
	result.ResponseTime = float64(time.Since(start).Milliseconds())

	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			result.HTTPStatus = apiErr.StatusCode
		}
		return result
	}

	result.Status = StatusOK
	result.HTTPStatus = 200
	result.SetDetail("transcript", snippet(tr.Text))
	return result
}

// Name returns the name of this probe.
func (p *STTProber) Name() string {
	return "probe stt"
}
