package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DefaultRealtimeURL is the production realtime WebSocket endpoint.
const DefaultRealtimeURL = "wss://api.openai.com/v1/realtime"

// RealtimeConfig describes how to reach the realtime endpoint.
type RealtimeConfig struct {
	APIKey  string
	BaseURL string // defaults to DefaultRealtimeURL
	Model   string
}

// HandshakeError reports a failed WebSocket upgrade together with the HTTP
// status the server replied with (0 when no response was received at all).
type HandshakeError struct {
	StatusCode int
	Err        error
}

func (e *HandshakeError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("realtime handshake failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("realtime handshake failed: %v", e.Err)
}

func (e *HandshakeError) Unwrap() error { return e.Err }

// RealtimeConn is a single realtime session connection. The probe exchanges
// messages strictly sequentially, so reads use per-call deadlines instead of
// a background read loop.
type RealtimeConn struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	closeOnce sync.Once
}

// DialRealtime opens the WebSocket with bearer auth and the realtime beta
// header.
func DialRealtime(ctx context.Context, cfg RealtimeConfig) (*RealtimeConn, error) {
	base := cfg.BaseURL
	if strings.TrimSpace(base) == "" {
		base = DefaultRealtimeURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse realtime url: %w", err)
	}
	q := u.Query()
	q.Set("model", cfg.Model)
	u.RawQuery = q.Encode()

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+cfg.APIKey)
	headers.Set("OpenAI-Beta", "realtime=v1")

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), headers)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return nil, &HandshakeError{StatusCode: status, Err: err}
	}
	return &RealtimeConn{conn: conn}, nil
}

// Send writes one event to the session.
func (c *RealtimeConn) Send(event RealtimeEvent) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(event)
}

// ReadEvent waits up to timeout for the next event.
func (c *RealtimeConn) ReadEvent(timeout time.Duration) (*RealtimeEvent, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}
	var event RealtimeEvent
	if err := c.conn.ReadJSON(&event); err != nil {
		return nil, fmt.Errorf("read realtime event: %w", err)
	}
	return &event, nil
}

// UpdateSession sends a session.update with the desired configuration.
func (c *RealtimeConn) UpdateSession(session RealtimeSession) error {
	return c.Send(RealtimeEvent{Type: EventSessionUpdate, Session: &session})
}

// CreateUserMessage sends a user text turn as a conversation item. The item
// id is client-generated so follow-up events can be correlated.
func (c *RealtimeConn) CreateUserMessage(text string) error {
	return c.Send(RealtimeEvent{
		Type: EventConversationItemCreate,
		Item: &ConversationItem{
			ID:   "item_" + uuid.NewString(),
			Type: "message",
			Role: "user",
			Content: []ConversationContent{
				{Type: "text", Text: text},
			},
		},
	})
}

// CreateResponse asks the model to respond to the conversation so far.
func (c *RealtimeConn) CreateResponse() error {
	return c.Send(RealtimeEvent{Type: EventResponseCreate})
}

// Close shuts the connection down; safe to call more than once.
func (c *RealtimeConn) Close() error {
	var retErr error
	c.closeOnce.Do(func() {
		retErr = c.conn.Close()
	})
	return retErr
}
