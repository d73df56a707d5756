package middleware

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/courseauth/internal/logger"
	"github.com/dtroode/courseauth/internal/model"
)

// SessionResolver resolves the identity bound to a session token.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer session tokens and injects the identity id
// into the context.
type Authenticate struct {
	sessions       SessionResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(sessions SessionResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// AuthFunc is an auth.AuthFunc for the go-grpc-middleware auth interceptor.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, err
	}

	emailID, err := m.sessions.Resolve(ctx, token)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrInvalidSession),
		errors.Is(err, model.ErrSessionRevoked),
		errors.Is(err, model.ErrSessionExpired):
		m.logger.Debug("Authenticate middleware: session rejected",
			"error", err.Error())
		return nil, status.Error(codes.Unauthenticated, "session is not valid")
	default:
		m.logger.Error("Authenticate middleware: failed to resolve session",
			"error", err.Error())
		return nil, status.Error(codes.Internal, "internal server error")
	}
	if emailID == uuid.Nil {
		return nil, status.Error(codes.Unauthenticated, "session is not valid")
	}

	return m.contextManager.SetEmailIDToContext(ctx, emailID), nil
}
