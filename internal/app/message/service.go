package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"backend/internal/app/user"
	"backend/internal/providers/redis"
	"backend/internal/utils"

	"go.uber.org/zap"
)

const (
	EventMessageCreated = "message_created"

	maxBodyLength    = 9999
	snapshotCacheTTL = time.Minute
	cachePrefix      = "messages:conversation"
)

var (
	ErrEmptyMessage         = errors.New("message body must not be blank")
	ErrBodyTooLong          = errors.New("message body is too long")
	ErrSelfMessage          = errors.New("sender and receiver must differ")
	ErrConversationNotFound = errors.New("conversation owner not found")
	ErrNotParticipant       = errors.New("sender is not a participant of this conversation")
)

// MessageCreatedEvent is the bus payload published after a successful write.
type MessageCreatedEvent struct {
	ConversationID string   `json:"conversation_id"`
	Message        *Message `json:"message"`
}

type Service interface {
	// Send appends one record to the canonical conversation of the given
	// owner. The receiver is resolved as the sender's counterpart: the
	// support admin when the owner sends, the owner otherwise.
	Send(ctx context.Context, conversationOwnerID, senderID, body string) (*Message, error)
	// ListConversation returns the full conversation ordered by timestamp.
	ListConversation(ctx context.Context, conversationOwnerID string) ([]*Message, error)
}

type service struct {
	repo     Repository
	userSvc  user.Service
	redisP   *redis.RedisProvider
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
}

func NewService(repo Repository, userSvc user.Service, redisP *redis.RedisProvider, eventBus *utils.EventBus, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		userSvc:  userSvc,
		redisP:   redisP,
		eventBus: eventBus,
		logger:   logger.Sugar(),
	}
}

func (s *service) Send(ctx context.Context, conversationOwnerID, senderID, body string) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(body) > maxBodyLength {
		return nil, ErrBodyTooLong
	}

	owner, err := s.userSvc.GetUserByID(ctx, conversationOwnerID)
	if err != nil {
		return nil, ErrConversationNotFound
	}
	if owner.Role != user.RoleClient {
		return nil, ErrConversationNotFound
	}

	receiverID, err := s.resolveReceiver(ctx, owner, senderID)
	if err != nil {
		return nil, err
	}
	if receiverID == senderID {
		return nil, ErrSelfMessage
	}

	message, err := s.repo.CreateMessage(owner.ID, senderID, receiverID, body)
	if err != nil {
		return nil, fmt.Errorf("failed to write message: %w", err)
	}

	s.redisP.Del(ctx, s.cacheKey(owner.ID))

	s.eventBus.Publish(EventMessageCreated, MessageCreatedEvent{
		ConversationID: owner.ID,
		Message:        message,
	})

	s.logger.Debugw("Message sent",
		"conversation_id", owner.ID,
		"sender_id", senderID,
		"receiver_id", receiverID,
	)

	return message, nil
}

// resolveReceiver enforces the canonical addressing rule: the owner writes to
// the support admin, and only an admin may write into someone else's
// conversation.
func (s *service) resolveReceiver(ctx context.Context, owner *user.User, senderID string) (string, error) {
	if senderID == owner.ID {
		admin, err := s.userSvc.GetSupportAdmin(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to resolve counterpart: %w", err)
		}
		return admin.ID, nil
	}

	sender, err := s.userSvc.GetUserByID(ctx, senderID)
	if err != nil {
		return "", ErrNotParticipant
	}
	if sender.Role != user.RoleAdmin {
		return "", ErrNotParticipant
	}
	return owner.ID, nil
}

func (s *service) ListConversation(ctx context.Context, conversationOwnerID string) ([]*Message, error) {
	cacheKey := s.cacheKey(conversationOwnerID)

	cached, err := s.redisP.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var messages []*Message
		if json.Unmarshal([]byte(cached), &messages) == nil {
			return messages, nil
		}
	}

	messages, err := s.repo.GetMessagesByConversationID(conversationOwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	if data, err := json.Marshal(messages); err == nil {
		s.redisP.SetEX(ctx, cacheKey, data, snapshotCacheTTL)
	}

	return messages, nil
}

func (s *service) cacheKey(conversationID string) string {
	return fmt.Sprintf("%s:%s", cachePrefix, conversationID)
}
