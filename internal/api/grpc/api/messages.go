package api

import "time"

type StartVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type StartVerificationResponse struct {
	EventID   string `json:"event_id"`
	Delivered bool   `json:"delivered"`
	Message   string `json:"message"`
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
	// MaxAttempts overrides the configured ceiling when positive.
	MaxAttempts int `json:"max_attempts,omitempty" validate:"gte=0"`
}

type VerifyTokenResponse struct {
	OK           bool   `json:"ok"`
	Reason       string `json:"reason"`
	Message      string `json:"message"`
	EmailID      string `json:"email_id,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
}

type EmailStatusRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type EmailStatusResponse struct {
	Verified bool `json:"verified"`
}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	EmailID     string `json:"email_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type ListEventsRequest struct{}

// Event describes an issued verification event. The token is never exposed.
type Event struct {
	ID            string     `json:"id"`
	Attempts      int        `json:"attempts"`
	Expired       bool       `json:"expired"`
	ExpiredAt     *time.Time `json:"expired_at,omitempty"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ListEventsResponse struct {
	Events []Event `json:"events"`
}
