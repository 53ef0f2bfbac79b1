package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/propmarket/server/internal/port/outbound"
	"go.uber.org/zap"
)

// SMTPConfig holds SMTP configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// smtpSender sends emails via SMTP.
type smtpSender struct {
	config SMTPConfig
	from   Sender
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	logger *zap.Logger
}

// NewSMTPSender creates a new SMTP email sender.
func NewSMTPSender(config SMTPConfig, from Sender, logger *zap.Logger) outbound.EmailSenderPort {
	return &smtpSender{
		config: config,
		from:   from,
		send:   smtp.SendMail,
		logger: logger,
	}
}

func (s *smtpSender) SendNotification(ctx context.Context, to, name, subject, message string) error {
	body, err := renderNotification(name, subject, message)
	if err != nil {
		return err
	}

	from := s.from.Address
	if s.from.Name != "" {
		from = fmt.Sprintf("%s <%s>", s.from.Name, s.from.Address)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.User != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	if err := s.send(addr, auth, s.from.Address, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
