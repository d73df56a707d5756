package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/dtroode/courseauth/internal/logger"
	"github.com/dtroode/courseauth/internal/model"
)

var _ model.Mailer = (*SMTPMailer)(nil)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      bool
}

// SMTPMailer delivers messages through an SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	host   string
	logger *logger.Logger
}

func NewSMTPMailer(cfg SMTPConfig, logger *logger.Logger) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(30 * time.Second),
	}

	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	if cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &SMTPMailer{client: client, host: cfg.Host, logger: logger}, nil
}

// Send dials the relay and delivers msg. The deadline of ctx bounds the
// whole exchange.
func (s *SMTPMailer) Send(ctx context.Context, msg model.Message) error {
	m, err := NewMsg(msg)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("SMTP mailer: failed to send email",
			"to", msg.To,
			"host", s.host,
			"error", err.Error())
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("SMTP mailer: email sent",
		"to", msg.To,
		"host", s.host)

	return nil
}
