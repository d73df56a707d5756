package model

import "context"

// Mailer delivers outbound email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single outbound email with plain text and HTML bodies.
type Message struct {
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}
