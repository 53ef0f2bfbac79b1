package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app notification for a user.
type Notification struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1"`
	Title     string    `json:"title" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	IsRead    bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_notifications_user_created,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}

// NotificationMessage is the real-time payload pushed to a connected user.
type NotificationMessage struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationFilter represents notification query filters.
type NotificationFilter struct {
	UnreadOnly bool `form:"unread"`
	PaginationRequest
}

// UnreadCountResponse is returned by the unread counter.
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
