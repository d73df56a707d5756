package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/courseauth/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.store.sessions[session.ID] = session
	r.store.recordUndo(ctx, func() { delete(r.store.sessions, session.ID) })
	return nil
}

func (r *SessionRepository) GetByID(_ context.Context, id uuid.UUID) (model.Session, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.sessions[id]
	return s, ok, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.sessions[id]
	if !ok || s.RevokedAt != nil {
		return nil
	}
	previous := s
	r.store.recordUndo(ctx, func() { r.store.sessions[id] = previous })
	now := time.Now().UTC()
	s.RevokedAt = &now
	r.store.sessions[id] = s
	return nil
}
