package email

import (
	"context"
	"fmt"

	"github.com/propmarket/server/internal/port/outbound"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// sendGridSender sends emails through the SendGrid v3 API.
type sendGridSender struct {
	client *sendgrid.Client
	from   Sender
	logger *zap.Logger
}

// NewSendGridSender creates a new SendGrid email sender.
func NewSendGridSender(apiKey string, from Sender, logger *zap.Logger) outbound.EmailSenderPort {
	return &sendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
		logger: logger,
	}
}

func (s *sendGridSender) SendNotification(ctx context.Context, to, name, subject, message string) error {
	html, err := renderNotification(name, subject, message)
	if err != nil {
		return err
	}

	msg := mail.NewSingleEmail(
		mail.NewEmail(s.from.Name, s.from.Address),
		subject,
		mail.NewEmail(name, to),
		message,
		html,
	)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("send email: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
