package message

import (
	"errors"
	"net/http"

	"backend/internal/app/user"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	SendMessage(c *gin.Context)
	GetConversation(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Send message
// @Description Append one message to a user's conversation
// @Tags Message
// @Accept json
// @Produce json
// @Param user_id path string true "Conversation owner ID"
// @Param request body SendMessageRequest true "Message payload"
// @Success 201 {object} Message
// @Failure 403 {object} ErrorResponse
// @Router /api/messages/{user_id} [post]
func (h *handler) SendMessage(c *gin.Context) {
	conversationOwnerID, ok := h.authorizeConversation(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	senderID := c.GetString(middleware.ContextUserID)

	message, err := h.service.Send(c.Request.Context(), conversationOwnerID, senderID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrBodyTooLong), errors.Is(err, ErrSelfMessage):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrConversationNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, message)
}

// @Summary Get conversation
// @Description Full ordered message list of a user's conversation
// @Tags Message
// @Produce json
// @Param user_id path string true "Conversation owner ID"
// @Success 200 {object} MessageListResponse
// @Router /api/messages/{user_id} [get]
func (h *handler) GetConversation(c *gin.Context) {
	conversationOwnerID, ok := h.authorizeConversation(c)
	if !ok {
		return
	}

	messages, err := h.service.ListConversation(c.Request.Context(), conversationOwnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get messages"})
		return
	}

	c.JSON(http.StatusOK, MessageListResponse{Messages: messages})
}

// authorizeConversation resolves the conversation owner from the path.
// Clients may only address their own conversation; admins may address any.
func (h *handler) authorizeConversation(c *gin.Context) (string, bool) {
	conversationOwnerID := c.Param("user_id")
	userID := c.GetString(middleware.ContextUserID)
	role := c.GetString(middleware.ContextRole)

	if role != user.RoleAdmin && conversationOwnerID != userID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "cannot access another user's conversation"})
		return "", false
	}
	return conversationOwnerID, true
}
