package email

import (
	"context"

	"github.com/propmarket/server/internal/port/outbound"
	"go.uber.org/zap"
)

// noopSender logs instead of sending.
type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates an email sender for environments without mail delivery.
func NewNoopSender(logger *zap.Logger) outbound.EmailSenderPort {
	return &noopSender{logger: logger}
}

func (s *noopSender) SendNotification(_ context.Context, to, _, subject, _ string) error {
	s.logger.Debug("email delivery disabled", zap.String("to", to), zap.String("subject", subject))
	return nil
}
