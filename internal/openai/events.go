package openai

// Realtime event type tags. The wire protocol is a stream of JSON objects
// discriminated by a "type" field; only the members the probe exchanges are
// modeled here.
const (
	EventSessionUpdate          = "session.update"
	EventSessionCreated         = "session.created"
	EventConversationItemCreate = "conversation.item.create"
	EventResponseCreate         = "response.create"
	EventResponseTextDelta      = "response.text.delta"
	EventResponseDone           = "response.done"
	EventError                  = "error"
)

// Realtime error codes the probe classifies explicitly.
const (
	ErrCodeInvalidAPIKey     = "invalid_api_key"
	ErrCodeInsufficientQuota = "insufficient_quota"
	ErrCodeUnauthorized      = "unauthorized"
)

// RealtimeEvent is a tagged realtime message. Payload fields are pointers or
// omitempty values so one struct covers both directions of the exchange.
type RealtimeEvent struct {
	Type    string            `json:"type"`
	EventID string            `json:"event_id,omitempty"`
	Session *RealtimeSession  `json:"session,omitempty"`
	Item    *ConversationItem `json:"item,omitempty"`
	Delta   string            `json:"delta,omitempty"`
	Error   *RealtimeError    `json:"error,omitempty"`
}

// RealtimeSession carries session configuration (outbound) or the created
// session description (inbound).
type RealtimeSession struct {
	ID                string   `json:"id,omitempty"`
	Model             string   `json:"model,omitempty"`
	Modalities        []string `json:"modalities,omitempty"`
	Instructions      string   `json:"instructions,omitempty"`
	Voice             string   `json:"voice,omitempty"`
	InputAudioFormat  string   `json:"input_audio_format,omitempty"`
	OutputAudioFormat string   `json:"output_audio_format,omitempty"`
	Temperature       float64  `json:"temperature,omitempty"`
}

// ConversationItem is the inner item object of conversation.item.create.
type ConversationItem struct {
	ID      string                `json:"id,omitempty"`
	Type    string                `json:"type"`
	Role    string                `json:"role"`
	Content []ConversationContent `json:"content,omitempty"`
}

// ConversationContent is one content part of a conversation item.
type ConversationContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// RealtimeError is the payload of an "error" event.
type RealtimeError struct {
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
