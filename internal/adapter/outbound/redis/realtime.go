package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const notificationChannelPrefix = "notifications:"

// realtime implements outbound.RealtimePort over Redis pub/sub.
type realtime struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRealtime creates a new real-time notification adapter.
func NewRealtime(client redis.UniversalClient, logger *zap.Logger) outbound.RealtimePort {
	return &realtime{client: client, logger: logger}
}

// NotificationChannel returns the pub/sub channel of a user.
func NotificationChannel(userID uuid.UUID) string {
	return notificationChannelPrefix + userID.String()
}

func (r *realtime) Push(ctx context.Context, userID uuid.UUID, msg *model.NotificationMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := r.client.Publish(ctx, NotificationChannel(userID), data).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Subscribe returns once the subscription is confirmed. The channel closes
// when ctx is done or the close func is called.
func (r *realtime) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan *model.NotificationMessage, func() error, error) {
	ps := r.client.Subscribe(ctx, NotificationChannel(userID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("subscribe notifications: %w", err)
	}

	out := make(chan *model.NotificationMessage)
	go func() {
		defer close(out)
		in := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-in:
				if !ok {
					return
				}
				var msg model.NotificationMessage
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					r.logger.Warn("dropping malformed notification", zap.String("channel", m.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- &msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, ps.Close, nil
}

// Compile-time check
var _ outbound.RealtimePort = (*realtime)(nil)
