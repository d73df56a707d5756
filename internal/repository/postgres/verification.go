package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/courseauth/internal/model"
)

var _ model.VerificationEventStore = (*VerificationEventRepository)(nil)

const eventColumns = `id, parent_id, email, token, attempts, expired, expired_at, last_attempt_at, created_at`

type VerificationEventRepository struct {
	db *Connection
}

func NewVerificationEventRepository(db *Connection) *VerificationEventRepository {
	return &VerificationEventRepository{db: db}
}

func (r *VerificationEventRepository) Create(ctx context.Context, event model.VerificationEvent) (model.VerificationEvent, error) {
	const query = `
		INSERT INTO verification_events (id, parent_id, email, token, attempts, expired, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + eventColumns

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	row := r.db.querier(ctx).QueryRow(ctx, query,
		event.ID, event.ParentID, event.Email, event.Token, event.Attempts, event.Expired, event.CreatedAt,
	)

	saved, err := scanEvent(row)
	if err != nil {
		return model.VerificationEvent{}, fmt.Errorf("failed to create verification event: %w", err)
	}

	return saved, nil
}

func (r *VerificationEventRepository) GetByToken(ctx context.Context, token string) (model.VerificationEvent, bool, error) {
	const query = `SELECT ` + eventColumns + ` FROM verification_events WHERE token = $1`

	return r.getOne(ctx, query, token)
}

func (r *VerificationEventRepository) GetByTokenForUpdate(ctx context.Context, token string) (model.VerificationEvent, bool, error) {
	const query = `SELECT ` + eventColumns + ` FROM verification_events WHERE token = $1 FOR UPDATE`

	return r.getOne(ctx, query, token)
}

func (r *VerificationEventRepository) Update(ctx context.Context, event model.VerificationEvent) error {
	const query = `
		UPDATE verification_events
		SET attempts = $2, expired = $3, expired_at = $4, last_attempt_at = $5
		WHERE id = $1`

	cmd, err := r.db.querier(ctx).Exec(ctx, query,
		event.ID, event.Attempts, event.Expired, event.ExpiredAt, event.LastAttemptAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update verification event: %w", err)
	}

	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *VerificationEventRepository) ListByParent(ctx context.Context, parentID uuid.UUID) ([]model.VerificationEvent, error) {
	const query = `
		SELECT ` + eventColumns + `
		FROM verification_events
		WHERE parent_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.querier(ctx).Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list verification events: %w", err)
	}
	defer rows.Close()

	var events []model.VerificationEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan verification event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate verification events: %w", err)
	}

	return events, nil
}

func (r *VerificationEventRepository) getOne(ctx context.Context, query, token string) (model.VerificationEvent, bool, error) {
	event, err := scanEvent(r.db.querier(ctx).QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.VerificationEvent{}, false, nil
		}
		return model.VerificationEvent{}, false, fmt.Errorf("failed to get verification event by token: %w", err)
	}

	return event, true, nil
}

func scanEvent(s pgx.Row) (model.VerificationEvent, error) {
	var e model.VerificationEvent
	err := s.Scan(
		&e.ID, &e.ParentID, &e.Email, &e.Token, &e.Attempts,
		&e.Expired, &e.ExpiredAt, &e.LastAttemptAt, &e.CreatedAt,
	)
	return e, err
}
