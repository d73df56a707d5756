package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/courseauth/internal/logger"
	"github.com/dtroode/courseauth/internal/model"
	"github.com/dtroode/courseauth/internal/notification"
)

const defaultDeliveryTimeout = 10 * time.Second

// VerificationConfig holds the settings of the verification flow.
type VerificationConfig struct {
	SenderAddress   string
	BaseURL         string
	MaxAttempts     int
	DeliveryTimeout time.Duration
	Subject         string
}

func (c VerificationConfig) withDefaults() VerificationConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = model.DefaultMaxAttempts
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = defaultDeliveryTimeout
	}
	if c.Subject == "" {
		c.Subject = DefaultSubject
	}
	return c
}

type Verification struct {
	identities model.IdentityStore
	events     model.VerificationEventStore
	tx         model.Transactor
	mailer     model.Mailer
	archive    model.Archive
	cfg        VerificationConfig
	logger     *logger.Logger

	now      func() time.Time
	newToken func() (string, error)
}

type VerificationOption func(*Verification)

func WithClock(now func() time.Time) VerificationOption {
	return func(v *Verification) { v.now = now }
}

func WithTokenGenerator(gen func() (string, error)) VerificationOption {
	return func(v *Verification) { v.newToken = gen }
}

// WithArchive keeps a copy of every outbound message in archive.
func WithArchive(archive model.Archive) VerificationOption {
	return func(v *Verification) { v.archive = archive }
}

func NewVerification(
	identities model.IdentityStore,
	events model.VerificationEventStore,
	tx model.Transactor,
	mailer model.Mailer,
	cfg VerificationConfig,
	logger *logger.Logger,
	opts ...VerificationOption,
) *Verification {
	v := &Verification{
		identities: identities,
		events:     events,
		tx:         tx,
		mailer:     mailer,
		cfg:        cfg.withDefaults(),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		newToken:   newToken,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// newToken returns a version 4 UUID (122 random bits from crypto/rand).
func newToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// SenderAddress is the From address of verification emails.
func (v *Verification) SenderAddress() string {
	return v.cfg.SenderAddress
}

// StartVerificationEvent issues a new token for email and mails the link.
// The returned flag reports delivery. An error means no event was stored.
func (v *Verification) StartVerificationEvent(ctx context.Context, email string) (model.VerificationEvent, bool, error) {
	v.logger.Debug("Verification service: starting verification",
		"email", email)

	token, err := v.newToken()
	if err != nil {
		v.logger.Error("Verification service: failed to generate token",
			"email", email,
			"error", err.Error())
		return model.VerificationEvent{}, false, fmt.Errorf("failed to generate token: %w", err)
	}

	var event model.VerificationEvent
	err = v.tx.WithinTx(ctx, func(ctx context.Context) error {
		identity, err := v.identities.GetOrCreate(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to get or create identity: %w", err)
		}

		event, err = v.events.Create(ctx, model.VerificationEvent{
			ID:        uuid.New(),
			ParentID:  identity.ID,
			Email:     identity.Email,
			Token:     token,
			CreatedAt: v.now(),
		})
		if err != nil {
			return fmt.Errorf("failed to create verification event: %w", err)
		}
		return nil
	})
	if err != nil {
		v.logger.Error("Verification service: failed to store verification event",
			"email", email,
			"error", err.Error())
		return model.VerificationEvent{}, false, err
	}

	msg := ComposeMessage(v.cfg, event)
	delivered := true
	if err := v.deliver(ctx, msg); err != nil {
		delivered = false
		v.logger.Error("Verification service: DELIVERY_FAILED",
			"email", event.Email,
			"event_id", event.ID,
			"error", err.Error())
	}
	v.archiveMessage(ctx, event, msg)

	v.logger.Info("Verification service: verification started",
		"email", email,
		"event_id", event.ID,
		"delivered", delivered)

	return event, delivered, nil
}

// deliver sends msg within the delivery timeout. Failures wrap
// model.ErrDeliveryFailed.
func (v *Verification) deliver(ctx context.Context, msg model.Message) error {
	ctx, cancel := context.WithTimeout(ctx, v.cfg.DeliveryTimeout)
	defer cancel()

	if err := v.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", model.ErrDeliveryFailed, err)
	}
	return nil
}

func (v *Verification) archiveMessage(ctx context.Context, event model.VerificationEvent, msg model.Message) {
	if v.archive == nil {
		return
	}

	raw, err := notification.Render(msg)
	if err != nil {
		v.logger.Warn("Verification service: failed to render message for archive",
			"event_id", event.ID,
			"error", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, v.cfg.DeliveryTimeout)
	defer cancel()

	if err := v.archive.Upload(ctx, archiveKey(event), bytes.NewReader(raw)); err != nil {
		v.logger.Warn("Verification service: failed to archive message",
			"event_id", event.ID,
			"error", err.Error())
	}
}

func archiveKey(event model.VerificationEvent) string {
	return path.Join("verification", event.ID.String()+".eml")
}

// Verify checks token against the configured attempt ceiling.
func (v *Verification) Verify(ctx context.Context, token string) (model.VerifyResult, error) {
	return v.VerifyToken(ctx, token, v.cfg.MaxAttempts)
}

// VerifyToken validates token and consumes one attempt. Rejections are
// reported in the result; the error is set only for storage failures.
//
// The attempt that brings the counter to maxAttempts still succeeds and
// expires the event in the same step.
func (v *Verification) VerifyToken(ctx context.Context, token string, maxAttempts int) (model.VerifyResult, error) {
	if maxAttempts <= 0 {
		maxAttempts = v.cfg.MaxAttempts
	}

	var (
		result  model.VerifyResult
		eventID uuid.UUID
	)
	err := v.tx.WithinTx(ctx, func(ctx context.Context) error {
		event, found, err := v.events.GetByTokenForUpdate(ctx, token)
		if err != nil {
			return fmt.Errorf("failed to get verification event: %w", err)
		}
		if !found {
			result = model.NewVerifyFailure(model.ReasonInvalidToken)
			return nil
		}
		eventID = event.ID

		if event.Expired {
			result = model.NewVerifyFailure(model.ReasonExpired)
			return nil
		}
		if event.Attempts >= maxAttempts {
			result = model.NewVerifyFailure(model.ReasonMaxAttempts)
			return nil
		}

		now := v.now()
		event.Attempts++
		event.LastAttemptAt = &now
		if event.Attempts >= maxAttempts {
			event.Expired = true
			event.ExpiredAt = &now
		}

		if err := v.events.Update(ctx, event); err != nil {
			return fmt.Errorf("failed to update verification event: %w", err)
		}

		identity, found, err := v.identities.GetByID(ctx, event.ParentID)
		if err != nil {
			return fmt.Errorf("failed to get identity: %w", err)
		}
		if !found {
			return fmt.Errorf("identity %s of event %s: %w", event.ParentID, event.ID, model.ErrNotFound)
		}

		result = model.NewVerifySuccess(identity)
		return nil
	})
	if err != nil {
		v.logger.Error("Verification service: failed to verify token",
			"error", err.Error())
		return model.VerifyResult{}, err
	}

	if result.OK {
		v.logger.Info("Verification service: token verified",
			"event_id", eventID,
			"email", result.Identity.Email)
	} else {
		v.logger.Info("Verification service: token rejected",
			"event_id", eventID,
			"reason", string(result.Reason))
	}

	return result, nil
}

// EmailIsVerified reports whether an identity exists for email with the
// active flag unset.
func (v *Verification) EmailIsVerified(ctx context.Context, email string) (bool, error) {
	identity, found, err := v.identities.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to get identity: %w", err)
	}
	return found && !identity.Active, nil
}

// Identity returns the identity with id.
func (v *Verification) Identity(ctx context.Context, id uuid.UUID) (model.Identity, bool, error) {
	identity, found, err := v.identities.GetByID(ctx, id)
	if err != nil {
		return model.Identity{}, false, fmt.Errorf("failed to get identity: %w", err)
	}
	return identity, found, nil
}

// ListEvents returns every event issued for email, newest first.
func (v *Verification) ListEvents(ctx context.Context, email string) ([]model.VerificationEvent, error) {
	identity, found, err := v.identities.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	if !found {
		return nil, nil
	}

	events, err := v.events.ListByParent(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list verification events: %w", err)
	}
	return events, nil
}
