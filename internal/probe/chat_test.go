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

func TestChatProbe_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-3.5-turbo" || req.MaxTokens != 50 {
			t.Errorf("unexpected request: %+v", req)
		}
		if len(req.Messages) != 2 || req.Messages[1].Content != "Hello, how are you today?" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: "gpt-3.5-turbo-0125",
			Choices: []openai.ChatChoice{
				{Message: openai.ChatMessage{Role: "assistant", Content: "I'm doing well, thanks!"}},
			},
			Usage: openai.Usage{PromptTokens: 25, CompletionTokens: 8, TotalTokens: 33},
		})
	}))
	defer server.Close()

	prober := &ChatProber{
		Client:       openai.NewClient("sk-test", openai.WithBaseURL(server.URL)),
		Model:        "gpt-3.5-turbo",
		SystemPrompt: "You are a helpful English tutor. Keep responses brief.",
		UserMessage:  "Hello, how are you today?",
		Temperature:  0.7,
		MaxTokens:    50,
	}
	result := prober.Probe(context.Background())

	if result.Status != StatusOK {
		t.Fatalf("status = %q, want ok (error: %s)", result.Status, result.Error)
	}
	if result.TokensUsed != 33 {
		t.Errorf("TokensUsed = %d, want 33", result.TokensUsed)
	}
	if result.Details["response_snippet"] != "I'm doing well, thanks!" {
		t.Errorf("response_snippet = %v", result.Details["response_snippet"])
	}
	// 25 prompt + 8 completion at gpt-3.5-turbo rates
	want := 25*0.0015/1000 + 8*0.0015/1000
	if result.EstimatedCost != want {
		t.Errorf("EstimatedCost = %v, want %v", result.EstimatedCost, want)
	}
}

func TestChatProbe_UnknownModelHasNoCost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model:   "experimental-1",
			Choices: []openai.ChatChoice{{Message: openai.ChatMessage{Content: "ok"}}},
			Usage:   openai.Usage{TotalTokens: 10},
		})
	}))
	defer server.Close()

	prober := &ChatProber{
		Client:      openai.NewClient("sk-test", openai.WithBaseURL(server.URL)),
		Model:       "experimental-1",
		UserMessage: "hi",
	}
	result := prober.Probe(context.Background())

	if result.Status != StatusOK {
		t.Fatalf("status = %q, want ok", result.Status)
	}
	if result.EstimatedCost != 0 {
		t.Errorf("EstimatedCost = %v, want 0", result.EstimatedCost)
	}
	if !strings.Contains(result.Notes, "no pricing data") {
		t.Errorf("notes = %q", result.Notes)
	}
}

func TestChatProbe_QuotaError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":"insufficient_quota","message":"You exceeded your current quota."}}`))
	}))
	defer server.Close()

	prober := &ChatProber{
		Client:      openai.NewClient("sk-test", openai.WithBaseURL(server.URL)),
		Model:       "gpt-3.5-turbo",
		UserMessage: "hi",
	}
	result := prober.Probe(context.Background())

	if result.Status != StatusError {
		t.Fatalf("status = %q, want error", result.Status)
	}
	if result.HTTPStatus != http.StatusTooManyRequests {
		t.Errorf("HTTPStatus = %d, want 429", result.HTTPStatus)
	}
}

func TestSnippetTruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", 150)
	got := snippet(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncation suffix, got %q", got)
	}
	if len([]rune(got)) != 103 {
		t.Errorf("snippet length = %d, want 103", len([]rune(got)))
	}

	if got := snippet("short"); got != "short" {
		t.Errorf("short text should pass through, got %q", got)
	}
}
