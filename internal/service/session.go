package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/courseauth/internal/logger"
	"github.com/dtroode/courseauth/internal/model"
)

const defaultSessionTTL = 14 * 24 * time.Hour

// Session binds verified identities to signed session tokens backed by a
// revocable session row.
type Session struct {
	manager model.TokenManager
	store   model.SessionStore
	ttl     time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

func NewSession(manager model.TokenManager, store model.SessionStore, ttl time.Duration, logger *logger.Logger) *Session {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Session{
		manager: manager,
		store:   store,
		ttl:     ttl,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// TTL is the lifetime of a bound session.
func (s *Session) TTL() time.Duration {
	return s.ttl
}

// Bind records identity as the verified owner of a new session and returns
// its token.
func (s *Session) Bind(ctx context.Context, identity model.Identity) (string, error) {
	now := s.now()
	session := model.Session{
		ID:        uuid.New(),
		EmailID:   identity.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	token, err := s.manager.GenerateSessionToken(session.ID, session.EmailID, session.ExpiresAt)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := s.store.Create(ctx, session); err != nil {
		s.logger.Error("Session service: failed to persist session",
			"email_id", identity.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	s.logger.Info("Session service: session bound",
		"email_id", identity.ID,
		"session_id", session.ID)

	return token, nil
}

// Resolve returns the identity id bound to token.
func (s *Session) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	sessionID, emailID, err := s.manager.ParseSessionToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", model.ErrInvalidSession, err)
	}

	session, found, err := s.store.GetByID(ctx, sessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get session: %w", err)
	}
	if !found || session.EmailID != emailID {
		return uuid.Nil, model.ErrInvalidSession
	}
	if session.RevokedAt != nil {
		return uuid.Nil, model.ErrSessionRevoked
	}
	if !s.now().Before(session.ExpiresAt) {
		return uuid.Nil, model.ErrSessionExpired
	}

	return session.EmailID, nil
}

// Clear revokes the session behind token. Tokens that do not parse are
// ignored.
func (s *Session) Clear(ctx context.Context, token string) error {
	sessionID, _, err := s.manager.ParseSessionToken(token)
	if err != nil {
		s.logger.Debug("Session service: ignoring invalid token on clear",
			"error", err.Error())
		return nil
	}

	if err := s.store.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.logger.Info("Session service: session cleared",
		"session_id", sessionID)
	return nil
}

// SafeNext returns next when it is a path on this site, "/" otherwise.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}

	return next
}
