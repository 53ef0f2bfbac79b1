package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"gorm.io/gorm"
)

// webhookEventAdapter is the delivery log in payment_webhook_events.
// (provider, event_id) is unique, so a redelivery cannot be logged twice.
type webhookEventAdapter struct {
	db *gorm.DB
}

func NewWebhookEventAdapter(db *gorm.DB) outbound.WebhookEventDatabasePort {
	return &webhookEventAdapter{db: db}
}

func (a *webhookEventAdapter) Create(ctx context.Context, event *model.WebhookEvent) error {
	switch err := conn(ctx, a.db).Create(event).Error; {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return outbound.ErrDuplicateWebhookEvent
	case err != nil:
		return fmt.Errorf("log %s webhook %s: %w", event.Provider, event.EventID, err)
	}
	return nil
}

func (a *webhookEventAdapter) FindByEventID(ctx context.Context, provider, eventID string) (*model.WebhookEvent, error) {
	var event model.WebhookEvent
	err := conn(ctx, a.db).
		Where(&model.WebhookEvent{Provider: provider, EventID: eventID}).
		Take(&event).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("find %s webhook %s: %w", provider, eventID, err)
	}
	return &event, nil
}

// MarkProcessed stamps the delivery. With errMsg set the row stays
// unprocessed and keeps the error, so the redelivery runs again.
func (a *webhookEventAdapter) MarkProcessed(ctx context.Context, id uuid.UUID, errMsg *string) error {
	now := time.Now().UTC()
	patch := model.WebhookEvent{
		Processed:   errMsg == nil,
		ProcessedAt: &now,
		Error:       errMsg,
	}
	err := conn(ctx, a.db).
		Model(&model.WebhookEvent{ID: id}).
		Select("processed", "processed_at", "error").
		Updates(&patch).Error
	if err != nil {
		return fmt.Errorf("mark webhook event %s: %w", id, err)
	}
	return nil
}
