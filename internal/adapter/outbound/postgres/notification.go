package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"gorm.io/gorm"
)

// notificationAdapter implements outbound.NotificationDatabasePort.
type notificationAdapter struct {
	db *gorm.DB
}

// NewNotificationAdapter creates a new notification database adapter.
func NewNotificationAdapter(db *gorm.DB) outbound.NotificationDatabasePort {
	return &notificationAdapter{db: db}
}

func (a *notificationAdapter) Create(ctx context.Context, n *model.Notification) error {
	if err := conn(ctx, a.db).Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (a *notificationAdapter) FindByUser(ctx context.Context, userID uuid.UUID, filter model.NotificationFilter) ([]*model.Notification, int64, error) {
	var items []*model.Notification
	var total int64

	query := conn(ctx, a.db).Model(&model.Notification{}).Where("user_id = ?", userID)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	filter.DefaultPagination(0)
	if err := query.Offset(filter.Offset()).Limit(filter.Limit).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("find notifications: %w", err)
	}
	return items, total, nil
}

func (a *notificationAdapter) MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result := conn(ctx, a.db).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return false, fmt.Errorf("mark notification read: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (a *notificationAdapter) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, a.db).
		Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// Compile-time check
var _ outbound.NotificationDatabasePort = (*notificationAdapter)(nil)
