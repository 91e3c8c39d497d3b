package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/earlab/aiprobe/internal/openai"
	consts "github.com/earlab/aiprobe/internal/shared/constants"
)

// ChatProber runs one small chat completion exchange to confirm the
// credential can consume the chat API, and prices the tokens it used.
type ChatProber struct {
	Client       *openai.Client
	Model        string
	SystemPrompt string
	UserMessage  string
	Temperature  float64
	MaxTokens    int
}

// Probe sends the configured system+user exchange.
func (p *ChatProber) Probe(ctx context.Context) Result {
	result := Result{
		Probe:     p.Name(),
		CheckedAt: time.Now().UTC(),
	}

	req := openai.ChatCompletionRequest{
		Model: p.Model,
		Messages: []openai.ChatMessage{
			{Role: "system", Content: p.SystemPrompt},
			{Role: "user", Content: p.UserMessage},
		},
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	}

	start := time.Now()
	resp, err := p.Client.CreateChatCompletion(ctx, req)
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
	result.TokensUsed = resp.Usage.TotalTokens
	result.SetDetail("model", resp.Model)

	if len(resp.Choices) > 0 {
		result.SetDetail("response_snippet", snippet(resp.Choices[0].Message.Content))
	} else {
		result.AddNote("no choices returned")
	}

	if cost, ok := openai.EstimateChatCost(p.Model, resp.Usage); ok {
		result.EstimatedCost = cost
	} else {
		result.AddNote("no pricing data for model " + p.Model)
	}

	return result
}

// Name returns the name of this probe.
func (p *ChatProber) Name() string {
	return "probe chat"
}

func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= consts.ResponseSnippetRunes {
		return s
	}
	return fmt.Sprintf("%s...", string(runes[:consts.ResponseSnippetRunes]))
}
