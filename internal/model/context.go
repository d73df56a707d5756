package model

import (
	"context"

	"github.com/google/uuid"
)

type ContextManager interface {
	SetEmailIDToContext(ctx context.Context, emailID uuid.UUID) context.Context
	GetEmailIDFromContext(ctx context.Context) (uuid.UUID, bool)
}
