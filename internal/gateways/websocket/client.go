package websocket

import (
	"crypto/rand"
	"encoding/base64"
	"strconv"
	"sync"
	"time"

	"backend/internal/app/message"
)

// ClientConn is the subset of the websocket connection the gateway uses,
// narrowed so tests can substitute a fake.
type ClientConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v interface{}) error
	Close() error
}

// Client is one authenticated websocket connection. It owns exactly one
// conversation session; snapshots and errors flow out through Frame values.
type Client struct {
	hub     *Hub
	conn    ClientConn
	ID      string
	UserID  string
	Role    string
	session *message.Session

	writeMu sync.Mutex
}

// Frame is the outbound wire shape.
type Frame struct {
	Event          string             `json:"event"`
	ConversationID string             `json:"conversation_id,omitempty"`
	Messages       []*message.Message `json:"messages,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// Command is the inbound wire shape.
type Command struct {
	Action         string `json:"action"`
	ConversationID string `json:"conversation_id"`
	Body           string `json:"body"`
}

const (
	EventConversationSnapshot = "conversation_snapshot"
	EventSubscriptionError    = "subscription_error"
	EventSendError            = "send_error"

	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionSend        = "send"
)

func (c *Client) writeFrame(frame Frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(frame)
}

func generateClientID() string {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		// Keep log lines distinguishable even without entropy.
		return "t" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return base64.URLEncoding.EncodeToString(bytes)
}
