package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/courseauth/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	const query = `
		INSERT INTO sessions (id, email_id, created_at, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5)`

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	_, err := r.db.querier(ctx).Exec(ctx, query,
		session.ID, session.EmailID, session.CreatedAt, session.ExpiresAt, session.RevokedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Session, bool, error) {
	const query = `
		SELECT id, email_id, created_at, expires_at, revoked_at
		FROM sessions WHERE id = $1`

	var s model.Session
	err := r.db.querier(ctx).QueryRow(ctx, query, id).Scan(
		&s.ID, &s.EmailID, &s.CreatedAt, &s.ExpiresAt, &s.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, false, nil
		}
		return model.Session{}, false, fmt.Errorf("failed to get session by id: %w", err)
	}
	return s, true, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE sessions SET revoked_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL`

	if _, err := r.db.querier(ctx).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
