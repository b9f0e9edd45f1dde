package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var ErrBlankNotification = errors.New("title and message must not be blank")

type Service interface {
	CreateNotification(ctx context.Context, req CreateNotificationRequest) (*Notification, error)
	ListNotifications(ctx context.Context) ([]*Notification, error)
}

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Sugar(),
	}
}

func (s *service) CreateNotification(ctx context.Context, req CreateNotificationRequest) (*Notification, error) {
	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if title == "" || message == "" {
		return nil, ErrBlankNotification
	}

	notification, err := s.repo.CreateNotification(title, message)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Infow("Notification created",
		"notification_id", notification.ID,
		"title", notification.Title,
	)
	return notification, nil
}

func (s *service) ListNotifications(ctx context.Context) ([]*Notification, error) {
	notifications, err := s.repo.GetAllNotifications()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}
