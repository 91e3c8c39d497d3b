package probe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/earlab/aiprobe/internal/openai"
)

func TestQuotaProbe_ValidKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gpt-3.5-turbo" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(openai.Model{ID: "gpt-3.5-turbo", Object: "model"})
	}))
	defer server.Close()

	prober := &QuotaProber{Client: openai.NewClient("sk-test", openai.WithBaseURL(server.URL))}
	result := prober.Probe(context.Background())

	if result.Status != StatusOK {
		t.Fatalf("status = %q, want ok (error: %s)", result.Status, result.Error)
	}
	if !strings.Contains(result.Notes, "valid and active") {
		t.Errorf("notes = %q", result.Notes)
	}
}

func TestQuotaProbe_InvalidKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"invalid_api_key","message":"Incorrect API key provided"}}`))
	}))
	defer server.Close()

	prober := &QuotaProber{Client: openai.NewClient("sk-bad", openai.WithBaseURL(server.URL))}
	result := prober.Probe(context.Background())

	if result.Status != StatusError {
		t.Fatalf("status = %q, want error", result.Status)
	}
	if result.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("HTTPStatus = %d, want 401", result.HTTPStatus)
	}
	if !strings.Contains(result.Notes, "invalid API key") {
		t.Errorf("notes = %q", result.Notes)
	}
	if !strings.Contains(result.Notes, "cannot even list models (status 401)") {
		t.Errorf("notes should report the fallback outcome, got %q", result.Notes)
	}
}

func TestQuotaProbe_QuotaExceededWithWorkingListFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/models/") {
			w.Header().Set("x-ratelimit-limit-requests", "200")
			w.Header().Set("x-ratelimit-remaining-requests", "0")
			w.Header().Set("x-ratelimit-limit-tokens", "40000")
			w.Header().Set("x-ratelimit-remaining-tokens", "123")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":"insufficient_quota","message":"You exceeded your current quota."}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ModelList{
			Object: "list",
			Data:   []openai.Model{{ID: "gpt-3.5-turbo"}, {ID: "whisper-1"}},
		})
	}))
	defer server.Close()

	prober := &QuotaProber{Client: openai.NewClient("sk-test", openai.WithBaseURL(server.URL))}
	result := prober.Probe(context.Background())

	if result.Status != StatusError {
		t.Fatalf("status = %q, want error", result.Status)
	}
	if result.HTTPStatus != http.StatusTooManyRequests {
		t.Errorf("HTTPStatus = %d, want 429", result.HTTPStatus)
	}
	if !strings.Contains(result.Notes, "rate limit or quota exceeded") {
		t.Errorf("notes = %q", result.Notes)
	}
	if !strings.Contains(result.Notes, "can list models (found 2)") {
		t.Errorf("notes should report the fallback success, got %q", result.Notes)
	}

	rl, ok := result.Details["rate_limit"].(map[string]string)
	if !ok {
		t.Fatalf("rate_limit detail has wrong type: %T", result.Details["rate_limit"])
	}
	if rl["remaining_requests"] != "0" || rl["limit_tokens"] != "40000" {
		t.Errorf("rate_limit detail = %v", rl)
	}
	if result.Details["models_visible"] != 2 {
		t.Errorf("models_visible = %v, want 2", result.Details["models_visible"])
	}
}

func TestQuotaProbe_CustomReferenceModel(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(openai.Model{ID: "gpt-4", Object: "model"})
	}))
	defer server.Close()

	prober := &QuotaProber{
		Client:         openai.NewClient("sk-test", openai.WithBaseURL(server.URL)),
		ReferenceModel: "gpt-4",
	}
	prober.Probe(context.Background())

	if gotPath != "/models/gpt-4" {
		t.Errorf("request path = %q, want /models/gpt-4", gotPath)
	}
}
