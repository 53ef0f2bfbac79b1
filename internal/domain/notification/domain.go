package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/propmarket/server/internal/utils/logger"
	"github.com/propmarket/server/internal/utils/pagination"
	"go.uber.org/zap"
)

// NotificationDomain defines in-app notification domain service interface.
type NotificationDomain interface {
	// Notify stores a notification and fans it out to the live channel and email.
	// Delivery failures are logged, never returned.
	Notify(ctx context.Context, userID uuid.UUID, title, message string)

	List(ctx context.Context, userID uuid.UUID, filter model.NotificationFilter) ([]*model.Notification, int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	// Subscribe streams live notifications of the user until ctx ends.
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan *model.NotificationMessage, func() error, error)
}

// notificationDomain implements NotificationDomain.
type notificationDomain struct {
	notificationDB outbound.NotificationDatabasePort
	userReader     outbound.UserReaderPort
	emailSender    outbound.EmailSenderPort
	realtime       outbound.RealtimePort
	now            func() time.Time
	logger         *zap.Logger
}

// NewNotificationDomain creates a new notification domain service.
// emailSender and realtime may be nil to disable that channel.
func NewNotificationDomain(
	notificationDB outbound.NotificationDatabasePort,
	userReader outbound.UserReaderPort,
	emailSender outbound.EmailSenderPort,
	realtime outbound.RealtimePort,
	logger *zap.Logger,
) NotificationDomain {
	return &notificationDomain{
		notificationDB: notificationDB,
		userReader:     userReader,
		emailSender:    emailSender,
		realtime:       realtime,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

func (d *notificationDomain) Notify(ctx context.Context, userID uuid.UUID, title, message string) {
	log := logger.For(ctx, d.logger).With(zap.String("user_id", userID.String()), zap.String("title", title))

	n := &model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: d.now(),
		UpdatedAt: d.now(),
	}
	if err := d.notificationDB.Create(ctx, n); err != nil {
		log.Error("failed to store notification", zap.Error(err))
	}

	if d.realtime != nil {
		msg := &model.NotificationMessage{ID: n.ID, Title: title, Message: message, CreatedAt: n.CreatedAt}
		if err := d.realtime.Push(ctx, userID, msg); err != nil {
			log.Warn("failed to push notification", zap.Error(err))
		}
	}

	if d.emailSender != nil {
		d.sendEmail(ctx, log, userID, title, message)
	}
}

func (d *notificationDomain) sendEmail(ctx context.Context, log *zap.Logger, userID uuid.UUID, title, message string) {
	user, err := d.userReader.FindByID(ctx, userID)
	if err != nil {
		log.Warn("failed to load notification recipient", zap.Error(err))
		return
	}
	if user == nil || user.Email == "" {
		log.Debug("notification recipient has no email address")
		return
	}
	if err := d.emailSender.SendNotification(ctx, user.Email, user.Name, title, message); err != nil {
		log.Warn("failed to email notification", zap.Error(err))
	}
}

func (d *notificationDomain) List(ctx context.Context, userID uuid.UUID, filter model.NotificationFilter) ([]*model.Notification, int64, error) {
	filter.DefaultPagination(pagination.DefaultAdminLimit)
	items, total, err := d.notificationDB.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return items, total, nil
}

func (d *notificationDomain) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := d.notificationDB.MarkRead(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

func (d *notificationDomain) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return d.notificationDB.CountUnread(ctx, userID)
}

func (d *notificationDomain) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan *model.NotificationMessage, func() error, error) {
	if d.realtime == nil {
		return nil, nil, fmt.Errorf("live notifications are not configured")
	}
	return d.realtime.Subscribe(ctx, userID)
}
