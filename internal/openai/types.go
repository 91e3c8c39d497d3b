package openai

import (
	"fmt"
	"net/http"
)

// Model describes a single entry from the models listing endpoint.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the envelope returned by GET /v1/models.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// Contains reports whether a model ID is present in the listing.
func (l *ModelList) Contains(id string) bool {
	for _, m := range l.Data {
		if m.ID == id {
			return true
		}
	}
	return false
}

// ContainsAny reports whether any of the given model IDs is present.
func (l *ModelList) ContainsAny(ids ...string) bool {
	for _, id := range ids {
		if l.Contains(id) {
			return true
		}
	}
	return false
}

// ChatMessage is a single role/content turn in a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the POST /v1/chat/completions payload.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// Usage reports token consumption for a completed request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatChoice is one candidate completion.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatCompletionResponse is the POST /v1/chat/completions reply.
type ChatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
}

// SpeechRequest is the POST /v1/audio/speech payload.
type SpeechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// Transcription is the POST /v1/audio/transcriptions reply.
type Transcription struct {
	Text string `json:"text"`
}

// RateLimitInfo carries the x-ratelimit-* response headers, when present.
// Values are kept as strings since they are only echoed to the operator.
type RateLimitInfo struct {
	LimitRequests     string
	RemainingRequests string
	LimitTokens       string
	RemainingTokens   string
}

// Empty reports whether no rate-limit headers were observed.
func (r RateLimitInfo) Empty() bool {
	return r.LimitRequests == "" && r.RemainingRequests == "" &&
		r.LimitTokens == "" && r.RemainingTokens == ""
}

// ParseRateLimit extracts rate-limit headers from an API response.
func ParseRateLimit(h http.Header) RateLimitInfo {
	return RateLimitInfo{
		LimitRequests:     h.Get("x-ratelimit-limit-requests"),
		RemainingRequests: h.Get("x-ratelimit-remaining-requests"),
		LimitTokens:       h.Get("x-ratelimit-limit-tokens"),
		RemainingTokens:   h.Get("x-ratelimit-remaining-tokens"),
	}
}

// APIError is a non-2xx reply decoded from the standard error envelope.
// RateLimit is populated from headers so quota diagnostics can report
// remaining request/token budgets alongside the error itself.
type APIError struct {
	StatusCode int           `json:"-"`
	RateLimit  RateLimitInfo `json:"-"`
	Type       string        `json:"type"`
	Code       string        `json:"code"`
	Message    string        `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

type apiErrorEnvelope struct {
	Error *APIError `json:"error"`
}
