package websocket

import (
	"context"
	"encoding/json"
	"net/http"

	"backend/internal/app/message"
	"backend/internal/app/user"
	"backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades an authenticated connection and binds it to a
// conversation session. Clients are pinned to their own conversation;
// admins pick one with a subscribe command and may switch at any time.
func (h *Hub) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.logger.Warnw("WebSocket connection rejected: token missing",
			"client_ip", c.ClientIP(),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	userID, role, err := auth.ValidateToken(token, h.jwtSecret)
	if err != nil {
		h.logger.Warnw("WebSocket connection rejected: invalid token",
			"client_ip", c.ClientIP(),
			"error", err,
		)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorw("Failed to upgrade connection",
			"user_id", userID.String(),
			"error", err,
		)
		return
	}
	defer conn.Close()

	client := &Client{
		hub:    h,
		conn:   conn,
		ID:     generateClientID(),
		UserID: userID.String(),
		Role:   role,
	}
	client.session = message.NewSession(h.feed, h.messageSvc.Send, client.UserID, func(messages []*message.Message) {
		if err := client.writeFrame(Frame{
			Event:    EventConversationSnapshot,
			Messages: messages,
		}); err != nil {
			h.logger.Warnw("Failed to push snapshot", "client_id", client.ID, "error", err)
		}
	})

	h.register <- client

	// A client talks to the support desk only; its conversation is fixed
	// and live from the moment it connects.
	if role == user.RoleClient {
		h.activate(client, client.UserID)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		h.handleCommand(client, data)
	}

	h.unregister <- client
}

func (h *Hub) handleCommand(client *Client, data []byte) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		h.logger.Debugw("Ignoring malformed command", "client_id", client.ID, "error", err)
		return
	}

	switch cmd.Action {
	case ActionSubscribe:
		if client.Role != user.RoleAdmin {
			return
		}
		h.activate(client, cmd.ConversationID)

	case ActionUnsubscribe:
		client.session.Deactivate()

	case ActionSend:
		client.session.UpdateDraft(cmd.Body)
		if err := client.session.Submit(context.Background()); err != nil {
			h.logger.Warnw("Send failed",
				"client_id", client.ID,
				"user_id", client.UserID,
				"error", err,
			)
			client.writeFrame(Frame{
				Event: EventSendError,
				Error: err.Error(),
			})
		}

	default:
		h.logger.Debugw("Unknown command action", "client_id", client.ID, "action", cmd.Action)
	}
}

func (h *Hub) activate(client *Client, conversationID string) {
	if err := client.session.Activate(conversationID); err != nil {
		h.logger.Warnw("Subscription failed",
			"client_id", client.ID,
			"conversation_id", conversationID,
			"error", err,
		)
		client.writeFrame(Frame{
			Event:          EventSubscriptionError,
			ConversationID: conversationID,
			Error:          "can't load messages",
		})
	}
}
