package probe

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Probe statuses.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Result represents the outcome of a single API probe.
type Result struct {
	Probe         string         `json:"probe"`
	CheckedAt     time.Time      `json:"checked_at"`
	Status        string         `json:"status"`
	HTTPStatus    int            `json:"http_status,omitempty"`
	ResponseTime  float64        `json:"response_time_ms,omitempty"`
	TokensUsed    int            `json:"tokens_used,omitempty"`
	EstimatedCost float64        `json:"estimated_cost_usd,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// AddNote appends a note fragment, separating it from existing notes.
func (r *Result) AddNote(note string) {
	if note == "" {
		return
	}
	if r.Notes != "" {
		r.Notes += "; "
	}
	r.Notes += note
}

// SetDetail records a structured detail value.
func (r *Result) SetDetail(key string, value any) {
	if r.Details == nil {
		r.Details = make(map[string]any)
	}
	r.Details[key] = value
}

// Passed reports whether the probe succeeded or was deliberately skipped.
func (r *Result) Passed() bool {
	return r.Status == StatusOK || r.Status == StatusSkipped
}

// Prober is the interface every API probe implements.
type Prober interface {
	// Probe performs the live request(s) and reports the outcome.
	Probe(ctx context.Context) Result

	// Name returns the probe name (e.g. "probe chat", "probe realtime").
	Name() string
}

// AuditFunc is a callback invoked with every finished probe result.
type AuditFunc func(probe string, result Result, duration float64) error

// Runner executes a list of probes with rate limiting and a per-probe
// timeout. Probes hit a metered external API, so the default posture is
// sequential execution at a gentle rate.
type Runner struct {
	Concurrency int           // maximum concurrent probes
	RateLimit   int           // requests per second (global)
	Timeout     time.Duration // timeout for each probe
}

// RunProbes executes every prober and returns results in input order.
func (r *Runner) RunProbes(ctx context.Context, probers []Prober, auditFn AuditFunc) []Result {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	rps := r.RateLimit
	if rps <= 0 {
		rps = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	results := make([]Result, len(probers))

	for i, p := range probers {
		wg.Add(1)
		go func(idx int, p Prober) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			_ = limiter.Wait(ctx)

			start := time.Now()

			probeCtx, cancel := context.WithTimeout(ctx, r.Timeout)
			defer cancel()

			result := p.Probe(probeCtx)

			duration := time.Since(start).Seconds()

			if auditFn != nil {
				_ = auditFn(p.Name(), result, duration)
			}

			results[idx] = result
		}(i, p)
	}

	wg.Wait()
	return results
}
