package outbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
)

// NotificationDatabasePort defines in-app notification persistence.
type NotificationDatabasePort interface {
	// Create creates a notification.
	Create(ctx context.Context, notification *model.Notification) error

	// FindByUser lists notifications of a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID, filter model.NotificationFilter) ([]*model.Notification, int64, error)

	// MarkRead marks a notification of the user as read. Returns false if none matched.
	MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error)

	// CountUnread counts unread notifications of a user.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

// EmailSenderPort defines email sending operations.
type EmailSenderPort interface {
	// SendNotification sends a plain notification email.
	SendNotification(ctx context.Context, to, name, subject, message string) error
}

// RealtimePort pushes notifications to users holding a live connection.
type RealtimePort interface {
	// Push publishes a message to the user's channel.
	Push(ctx context.Context, userID uuid.UUID, msg *model.NotificationMessage) error

	// Subscribe streams messages for the user until ctx is done or the returned close func is called.
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan *model.NotificationMessage, func() error, error)
}
