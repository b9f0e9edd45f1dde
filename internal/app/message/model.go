package message

import "time"

// Message is one record of a conversation. Records are append-only: they are
// never updated or deleted after creation.
//
// A conversation is keyed by the client participant's user ID; every message
// of the conversation, in either direction, is filed under that key.
type Message struct {
	ID             uint64    `json:"id" gorm:"primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"type:uuid;not null;index"`
	SenderID       string    `json:"senderId" gorm:"type:uuid;not null"`
	ReceiverID     string    `json:"receiverId" gorm:"type:uuid;not null"`
	Body           string    `json:"message" gorm:"column:body;not null"`
	CreatedAt      time.Time `json:"timestamp"`
}

type SendMessageRequest struct {
	Body string `json:"message" binding:"required"`
}

type MessageListResponse struct {
	Messages []*Message `json:"messages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
