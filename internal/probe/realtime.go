package probe

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/earlab/aiprobe/internal/openai"
)

// Default read timeouts for the realtime exchange: the first event confirms
// the session, everything after is model output.
const (
	DefaultFirstEventTimeout = 5 * time.Second
	DefaultEventTimeout      = 10 * time.Second
)

// RealtimeProber runs one text turn over a realtime WebSocket session to
// determine whether the credential has realtime access.
type RealtimeProber struct {
	Config       openai.RealtimeConfig
	Voice        string
	Instructions string
	TestMessage  string

	FirstEventTimeout time.Duration
	EventTimeout      time.Duration

	// OnDelta streams response.text.delta payloads as they arrive (optional).
	OnDelta func(delta string)
}

// Probe dials the endpoint, configures the session, sends a test turn, and
// reads events until response.done or a timeout.
func (p *RealtimeProber) Probe(ctx context.Context) Result {
	result := Result{
		Probe:     p.Name(),
		CheckedAt: time.Now().UTC(),
	}

	firstTimeout := p.FirstEventTimeout
	if firstTimeout <= 0 {
		firstTimeout = DefaultFirstEventTimeout
	}
	eventTimeout := p.EventTimeout
	if eventTimeout <= 0 {
		eventTimeout = DefaultEventTimeout
	}

	start := time.Now()
	conn, err := openai.DialRealtime(ctx, p.Config)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		var hsErr *openai.HandshakeError
		if errors.As(err, &hsErr) {
			result.HTTPStatus = hsErr.StatusCode
			result.AddNote(classifyHandshakeStatus(hsErr.StatusCode))
		}
		return result
	}
	defer conn.Close()
	result.ResponseTime = float64(time.Since(start).Milliseconds())

	if err := conn.UpdateSession(openai.RealtimeSession{
		Modalities:        []string{"text", "audio"},
		Instructions:      p.Instructions,
		Voice:             p.Voice,
		InputAudioFormat:  "pcm16",
		OutputAudioFormat: "pcm16",
		Temperature:       0.8,
	}); err != nil {
		result.Status = StatusError
		result.Error = "send session configuration: " + err.Error()
		return result
	}

	event, err := conn.ReadEvent(firstTimeout)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		result.AddNote("no reply to session configuration within " + firstTimeout.String())
		return result
	}

	switch event.Type {
	case openai.EventError:
		result.Status = StatusError
		if event.Error != nil {
			result.Error = event.Error.Message
			result.SetDetail("error_code", event.Error.Code)
			result.AddNote(classifyRealtimeError(event.Error.Code))
		}
		return result

	case openai.EventSessionCreated:
		if event.Session != nil {
			result.SetDetail("session_id", event.Session.ID)
			result.SetDetail("session_model", event.Session.Model)
		}

	default:
		result.Status = StatusError
		result.Error = "unexpected event type: " + event.Type
		return result
	}

	if err := conn.CreateUserMessage(p.TestMessage); err != nil {
		result.Status = StatusError
		result.Error = "send test message: " + err.Error()
		return result
	}
	if err := conn.CreateResponse(); err != nil {
		result.Status = StatusError
		result.Error = "request response: " + err.Error()
		return result
	}

	var transcript strings.Builder
	for {
		event, err := conn.ReadEvent(eventTimeout)
		if err != nil {
			result.Status = StatusError
			result.Error = err.Error()
			result.AddNote("gave up waiting for response.done after " + eventTimeout.String())
			return result
		}

		switch event.Type {
		case openai.EventResponseDone:
			result.Status = StatusOK
			result.AddNote("realtime session completed a full response")
			if transcript.Len() > 0 {
				result.SetDetail("transcript", snippet(transcript.String()))
			}
			return result

		case openai.EventResponseTextDelta:
			transcript.WriteString(event.Delta)
			if p.OnDelta != nil {
				p.OnDelta(event.Delta)
			}

		case openai.EventError:
			result.Status = StatusError
			if event.Error != nil {
				result.Error = event.Error.Message
				result.SetDetail("error_code", event.Error.Code)
			}
			return result
		}
	}
}

// Name returns the name of this probe.
func (p *RealtimeProber) Name() string {
	return "probe realtime"
}

func classifyHandshakeStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "invalid API key"
	case http.StatusForbidden:
		return "API key does not have realtime access"
	case http.StatusTooManyRequests:
		return "rate limit exceeded or quota exhausted"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	case 0:
		return "no HTTP response received"
	}
	return ""
}

func classifyRealtimeError(code string) string {
	switch code {
	case openai.ErrCodeInvalidAPIKey:
		return "API key is invalid"
	case openai.ErrCodeInsufficientQuota:
		return "insufficient quota; add credits to the account"
	case openai.ErrCodeUnauthorized:
		return "API key does not have realtime access"
	}
	return ""
}
