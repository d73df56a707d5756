package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/courseauth/internal/model"
)

// emailIDKey is the incoming metadata key holding the authenticated identity.
const emailIDKey = model.SessionKey

// Manager keeps the authenticated identity id in incoming gRPC metadata.
// The value is only trustworthy on methods guarded by the auth interceptor,
// which overwrites whatever the client sent.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetEmailIDToContext returns ctx with emailID replacing any client
// supplied value.
func (m *Manager) SetEmailIDToContext(ctx context.Context, emailID uuid.UUID) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(nil)
	} else {
		md = md.Copy()
	}
	md.Set(emailIDKey, emailID.String())

	return metadata.NewIncomingContext(ctx, md)
}

func (m *Manager) GetEmailIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	values := md.Get(emailIDKey)
	if len(values) != 1 {
		return uuid.Nil, false
	}

	emailID, err := uuid.Parse(values[0])
	if err != nil || emailID == uuid.Nil {
		return uuid.Nil, false
	}

	return emailID, true
}
