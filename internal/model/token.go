package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager signs and parses session tokens.
type TokenManager interface {
	GenerateSessionToken(sessionID, emailID uuid.UUID, expiresAt time.Time) (string, error)
	ParseSessionToken(token string) (sessionID uuid.UUID, emailID uuid.UUID, err error)
}
