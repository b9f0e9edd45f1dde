package notification

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateNotification(title, message string) (*Notification, error)
	GetAllNotifications() ([]*Notification, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateNotification(title, message string) (*Notification, error) {
	notification := &Notification{
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

func (r *repository) GetAllNotifications() ([]*Notification, error) {
	var notifications []*Notification
	err := r.db.
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}
