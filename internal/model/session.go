package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionKey is the name under which the verified identity id is bound.
const SessionKey = "email_id"

// SessionStore persists bound sessions.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, id uuid.UUID) (Session, bool, error)
	Revoke(ctx context.Context, id uuid.UUID) error
}

// Session binds a verified identity to a client.
type Session struct {
	ID        uuid.UUID
	EmailID   uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}
