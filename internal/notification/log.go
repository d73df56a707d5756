package notification

import (
	"context"

	"github.com/dtroode/courseauth/internal/logger"
	"github.com/dtroode/courseauth/internal/model"
)

var _ model.Mailer = (*LogMailer)(nil)

// LogMailer writes messages to the log instead of sending them. Used when
// no SMTP relay is configured.
type LogMailer struct {
	logger *logger.Logger
}

func NewLogMailer(logger *logger.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (l *LogMailer) Send(ctx context.Context, msg model.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.logger.Info("Log mailer: email not sent, no SMTP relay configured",
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.TextBody)

	return nil
}
