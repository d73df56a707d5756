package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/courseauth/internal/model"
)

var _ model.IdentityStore = (*IdentityRepository)(nil)

type IdentityRepository struct {
	db *Connection
}

func NewIdentityRepository(db *Connection) *IdentityRepository {
	return &IdentityRepository{
		db: db,
	}
}

// GetOrCreate inserts the identity or, when the email is already known,
// returns the existing row. The no-op update makes RETURNING yield the
// conflicting row.
func (r *IdentityRepository) GetOrCreate(ctx context.Context, email string) (model.Identity, error) {
	const query = `
		INSERT INTO identities (id, email, active, created_at)
		VALUES ($1, $2, FALSE, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, active, created_at`

	var identity model.Identity
	err := r.db.querier(ctx).QueryRow(ctx, query, uuid.New(), email, time.Now().UTC()).Scan(
		&identity.ID, &identity.Email, &identity.Active, &identity.CreatedAt,
	)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to get or create identity: %w", err)
	}

	return identity, nil
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (model.Identity, bool, error) {
	const query = `
		SELECT id, email, active, created_at
		FROM identities WHERE email = $1`

	return r.getOne(ctx, query, email)
}

func (r *IdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Identity, bool, error) {
	const query = `
		SELECT id, email, active, created_at
		FROM identities WHERE id = $1`

	return r.getOne(ctx, query, id)
}

func (r *IdentityRepository) getOne(ctx context.Context, query string, arg any) (model.Identity, bool, error) {
	var identity model.Identity
	err := r.db.querier(ctx).QueryRow(ctx, query, arg).Scan(
		&identity.ID, &identity.Email, &identity.Active, &identity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Identity{}, false, nil
		}
		return model.Identity{}, false, fmt.Errorf("failed to get identity: %w", err)
	}

	return identity, true, nil
}
