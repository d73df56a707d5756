package notification

import (
	"bytes"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dtroode/courseauth/internal/model"
)

// NewMsg converts msg into a multipart/alternative mail message with the
// plain text part first.
func NewMsg(msg model.Message) (*mail.Msg, error) {
	if msg.To == "" {
		return nil, fmt.Errorf("message requires a recipient")
	}

	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("failed to set from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("failed to set to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	default:
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	}

	return m, nil
}

// Render returns msg in RFC 5322 wire format.
func Render(msg model.Message) ([]byte, error) {
	m, err := NewMsg(msg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render message: %w", err)
	}
	return buf.Bytes(), nil
}
