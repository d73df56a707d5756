package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxAttempts is the attempt ceiling used when none is configured.
const DefaultMaxAttempts = 5

// VerificationEventStore persists verification events.
type VerificationEventStore interface {
	Create(ctx context.Context, event VerificationEvent) (VerificationEvent, error)
	GetByToken(ctx context.Context, token string) (VerificationEvent, bool, error)
	// GetByTokenForUpdate locks the matching row until the surrounding
	// transaction ends.
	GetByTokenForUpdate(ctx context.Context, token string) (VerificationEvent, bool, error)
	Update(ctx context.Context, event VerificationEvent) error
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]VerificationEvent, error)
}

// Transactor runs fn atomically. Stores called with the ctx handed to fn
// take part in the same transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// VerificationEvent is a single issued token tied to one login request.
type VerificationEvent struct {
	ID            uuid.UUID
	ParentID      uuid.UUID
	Email         string
	Token         string
	Attempts      int
	Expired       bool
	ExpiredAt     *time.Time
	LastAttemptAt *time.Time
	CreatedAt     time.Time
}

// Path implements HasPath.
func (e VerificationEvent) Path() string {
	return fmt.Sprintf("/verify/%s/", e.Token)
}

// Reason classifies the outcome of a token verification.
type Reason string

const (
	ReasonVerified     Reason = "VERIFIED"
	ReasonInvalidToken Reason = "INVALID_TOKEN"
	ReasonExpired      Reason = "EXPIRED"
	ReasonMaxAttempts  Reason = "MAX_ATTEMPTS_REACHED"
)

// Message returns the user-facing text for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonVerified:
		return "verification success"
	case ReasonInvalidToken:
		return "token invalid"
	case ReasonExpired:
		return "email expired"
	case ReasonMaxAttempts:
		return "max attempts exceeded"
	default:
		return "verification failed"
	}
}

// VerifyResult is the outcome of validating a presented token.
// Identity is set only when OK is true.
type VerifyResult struct {
	OK       bool
	Reason   Reason
	Message  string
	Identity *Identity
}

// NewVerifyFailure builds a failed result for reason.
func NewVerifyFailure(reason Reason) VerifyResult {
	return VerifyResult{Reason: reason, Message: reason.Message()}
}

// NewVerifySuccess builds a successful result bound to identity.
func NewVerifySuccess(identity Identity) VerifyResult {
	return VerifyResult{
		OK:       true,
		Reason:   ReasonVerified,
		Message:  ReasonVerified.Message(),
		Identity: &identity,
	}
}
