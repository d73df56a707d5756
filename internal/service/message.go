package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/dtroode/courseauth/internal/model"
)

const (
	DefaultSubject = "Please verify your email address"

	verifyPrompt = "Please verify your email address with the link below"
)

// VerificationLink returns the absolute link for target under baseURL.
func VerificationLink(baseURL string, target model.HasPath) string {
	return strings.TrimRight(baseURL, "/") + target.Path()
}

// ComposeMessage renders the verification email for event.
func ComposeMessage(cfg VerificationConfig, event model.VerificationEvent) model.Message {
	link := VerificationLink(cfg.BaseURL, event)
	escaped := html.EscapeString(link)

	subject := cfg.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	return model.Message{
		From:     cfg.SenderAddress,
		To:       event.Email,
		Subject:  subject,
		TextBody: fmt.Sprintf("%s:\n%s", verifyPrompt, link),
		HTMLBody: fmt.Sprintf("<h1>%s</h1><p><a href='%s'>%s</a></p>", verifyPrompt, escaped, escaped),
	}
}

// LoginSuccessMessage is shown after a verification email was requested.
func LoginSuccessMessage(sender string) string {
	return fmt.Sprintf("Success! Check your email for verification from %s", sender)
}
