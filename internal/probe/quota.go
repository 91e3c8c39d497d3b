package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/earlab/aiprobe/internal/openai"
)

// QuotaProber diagnoses credential validity and remaining quota by fetching
// a single cheap model record, then falling back to the models listing as
// the most minimal possible request.
type QuotaProber struct {
	Client         *openai.Client
	ReferenceModel string // defaults to gpt-3.5-turbo
}

// Probe checks the reference model and classifies 200/401/429 outcomes.
func (p *QuotaProber) Probe(ctx context.Context) Result {
	result := Result{
		Probe:     p.Name(),
		CheckedAt: time.Now().UTC(),
	}

	model := p.ReferenceModel
	if model == "" {
		model = "gpt-3.5-turbo"
	}

	start := time.Now()
	_, err := p.Client.RetrieveModel(ctx, model)
	result.ResponseTime = float64(time.Since(start).Milliseconds())

	if err == nil {
		result.Status = StatusOK
		result.HTTPStatus = http.StatusOK
		result.AddNote("API key is valid and active")
		return result
	}

	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}

	result.Status = StatusError
	result.HTTPStatus = apiErr.StatusCode
	result.Error = apiErr.Message

	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		result.AddNote("invalid API key")
	case http.StatusTooManyRequests:
		result.AddNote("rate limit or quota exceeded")
		if !apiErr.RateLimit.Empty() {
			result.SetDetail("rate_limit", map[string]string{
				"limit_requests":     apiErr.RateLimit.LimitRequests,
				"remaining_requests": apiErr.RateLimit.RemainingRequests,
				"limit_tokens":       apiErr.RateLimit.LimitTokens,
				"remaining_tokens":   apiErr.RateLimit.RemainingTokens,
			})
		}
	default:
		result.AddNote(fmt.Sprintf("unexpected status %d", apiErr.StatusCode))
	}

	// Minimal fallback request: can the key at least list models?
	list, listErr := p.Client.ListModels(ctx)
	if listErr == nil {
		result.SetDetail("models_visible", len(list.Data))
		result.AddNote(fmt.Sprintf("can list models (found %d); key works but may have usage limits", len(list.Data)))
	} else {
		status := 0
		var listAPIErr *openai.APIError
		if errors.As(listErr, &listAPIErr) {
			status = listAPIErr.StatusCode
		}
		result.AddNote(fmt.Sprintf("cannot even list models (status %d)", status))
	}

	return result
}

// Name returns the name of this probe.
func (p *QuotaProber) Name() string {
	return "probe quota"
}
