package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// IdentityStore persists distinct email addresses.
type IdentityStore interface {
	// GetOrCreate returns the identity for email, creating it on first use.
	GetOrCreate(ctx context.Context, email string) (Identity, error)
	GetByEmail(ctx context.Context, email string) (Identity, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Identity, bool, error)
}

// Identity is one email address known to the system.
type Identity struct {
	ID        uuid.UUID
	Email     string
	Active    bool
	CreatedAt time.Time
}

// DisplayName implements HasDisplayName.
func (i Identity) DisplayName() string {
	return i.Email
}
