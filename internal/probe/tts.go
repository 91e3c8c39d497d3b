package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/earlab/aiprobe/internal/openai"
	consts "github.com/earlab/aiprobe/internal/shared/constants"
)

// TTSProber synthesizes a short utterance to confirm speech output works,
// and optionally saves the audio for a manual listen.
type TTSProber struct {
	Client     *openai.Client
	Model      string
	Voice      string
	Input      string
	OutputPath string // empty disables saving
}

// Probe requests synthesis and records size, latency, and character cost.
func (p *TTSProber) Probe(ctx context.Context) Result {
	result := Result{
		Probe:     p.Name(),
		CheckedAt: time.Now().UTC(),
	}

	req := openai.SpeechRequest{
		Model: p.Model,
		Input: p.Input,
		Voice: p.Voice,
	}

	start := time.Now()
	audio, err := p.Client.CreateSpeech(ctx, req)
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
	result.EstimatedCost = float64(len(p.Input)) * openai.TTSPer1KChars / 1000
	result.SetDetail("audio_bytes", len(audio))
	result.SetDetail("voice", p.Voice)

	if p.OutputPath != "" {
		if err := os.WriteFile(p.OutputPath, audio, consts.DefaultFilePerm); err != nil {
			result.AddNote(fmt.Sprintf("warning: failed to save audio: %v", err))
		} else {
			result.SetDetail("audio_path", p.OutputPath)
			result.AddNote("audio saved to " + p.OutputPath)
		}
	}

	return result
}

// Name returns the name of this probe.
func (p *TTSProber) Name() string {
	return "probe tts"
}
