package openai

import "fmt"

// Published per-unit prices (USD) the probes use for cost estimates.
// These mirror the 2024 price sheet and are advisory only.
const (
	WhisperPerMinute       = 0.006
	TTSPer1KChars          = 0.015
	DallE3PerImage         = 0.04
	RealtimeAudioInPerMin  = 0.06
	RealtimeAudioOutPerMin = 0.24
)

// ChatRate is the per-1K-token price pair for a chat model.
type ChatRate struct {
	Input  float64
	Output float64
}

var chatRates = map[string]ChatRate{
	"gpt-4-turbo-preview": {Input: 0.01, Output: 0.03},
	"gpt-4":               {Input: 0.03, Output: 0.06},
	"gpt-3.5-turbo":       {Input: 0.0015, Output: 0.0015},
}

// ChatRateFor returns the price pair for a model, matching on the longest
// known prefix so dated snapshots (gpt-4-0613 etc.) resolve to their family.
func ChatRateFor(model string) (ChatRate, bool) {
	if rate, ok := chatRates[model]; ok {
		return rate, true
	}
	best := ""
	for name := range chatRates {
		if len(name) > len(best) && hasPrefix(model, name) {
			best = name
		}
	}
	if best == "" {
		return ChatRate{}, false
	}
	return chatRates[best], true
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// EstimateChatCost converts reported token usage into dollars. The second
// return is false when the model has no known rate.
func EstimateChatCost(model string, usage Usage) (float64, bool) {
	rate, ok := ChatRateFor(model)
	if !ok {
		return 0, false
	}
	cost := float64(usage.PromptTokens)*rate.Input/1000 +
		float64(usage.CompletionTokens)*rate.Output/1000
	return cost, true
}

// ConversationCost breaks down the estimated price of one spoken
// conversation turn: STT in, chat in the middle, TTS out.
type ConversationCost struct {
	Chat    float64
	Whisper float64
	TTS     float64
}

// Total is the per-conversation sum.
func (c ConversationCost) Total() float64 { return c.Chat + c.Whisper + c.TTS }

// Assumed shape of an average conversation turn.
const (
	avgInputTokens  = 50
	avgOutputTokens = 100
	avgAudioSeconds = 5
	charsPerToken   = 5
)

// EstimateConversation prices an average turn using GPT-4 rates, the shape
// assumptions above, and the published STT/TTS unit prices.
func EstimateConversation() ConversationCost {
	rate := chatRates["gpt-4-turbo-preview"]
	return ConversationCost{
		Chat:    (avgInputTokens*rate.Input + avgOutputTokens*rate.Output) / 1000,
		Whisper: (avgAudioSeconds / 60.0) * WhisperPerMinute,
		TTS:     (avgOutputTokens * charsPerToken) * TTSPer1KChars / 1000,
	}
}

// BudgetLine is one "what $N buys" row for operator guidance.
type BudgetLine struct {
	Service string
	Detail  string
}

// BudgetTable computes roughly what a dollar budget buys per service.
func BudgetTable(budget float64) []BudgetLine {
	gpt4 := chatRates["gpt-4-turbo-preview"]
	return []BudgetLine{
		{
			Service: "GPT-4 Turbo",
			Detail: fmt.Sprintf("~%s input tokens OR ~%s output tokens",
				approxCount(budget/gpt4.Input*1000), approxCount(budget/gpt4.Output*1000)),
		},
		{
			Service: "GPT-3.5 Turbo",
			Detail:  fmt.Sprintf("~%s tokens", approxCount(budget/chatRates["gpt-3.5-turbo"].Input*1000)),
		},
		{
			Service: "Whisper",
			Detail: fmt.Sprintf("~%s minutes of audio (~%.0f hours)",
				approxCount(budget/WhisperPerMinute), budget/WhisperPerMinute/60),
		},
		{
			Service: "TTS",
			Detail:  fmt.Sprintf("~%s characters", approxCount(budget/TTSPer1KChars*1000)),
		},
		{
			Service: "DALL-E 3",
			Detail:  fmt.Sprintf("~%s images (1024x1024)", approxCount(budget/DallE3PerImage)),
		},
	}
}

// approxCount renders large counts the way an operator reads them:
// 13333333 -> "13.3 million", 666666 -> "666,000", 3333 -> "3,333".
func approxCount(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1f million", n/1_000_000)
	case n >= 10_000:
		return fmt.Sprintf("%s,000", group(int(n / 1000)))
	case n >= 1000:
		return fmt.Sprintf("%d,%03d", int(n)/1000, int(n)%1000)
	default:
		return fmt.Sprintf("%.0f", n)
	}
}

func group(thousands int) string {
	if thousands >= 1000 {
		return fmt.Sprintf("%d,%03d", thousands/1000, thousands%1000)
	}
	return fmt.Sprintf("%d", thousands)
}
