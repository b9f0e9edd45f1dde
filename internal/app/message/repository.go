package message

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateMessage(conversationID, senderID, receiverID, body string) (*Message, error)
	GetMessagesByConversationID(conversationID string) ([]*Message, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateMessage(conversationID, senderID, receiverID, body string) (*Message, error) {
	message := &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	result := r.db.Create(message)
	if result.Error != nil {
		return nil, result.Error
	}
	return message, nil
}

// GetMessagesByConversationID returns the full conversation in store order.
// Timestamp ties are broken by the insert-assigned ID.
func (r *repository) GetMessagesByConversationID(conversationID string) ([]*Message, error) {
	var messages []*Message
	err := r.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}
