package notification

import "time"

// Notification is a broadcast announcement authored by an admin. Records are
// append-only; every authenticated user sees the same list.
type Notification struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateNotificationRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type NotificationListResponse struct {
	Notifications []*Notification `json:"notifications"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
