package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/dtroode/courseauth/internal/model"
)

var _ model.VerificationEventStore = (*VerificationEventRepository)(nil)

type VerificationEventRepository struct {
	store *Store
}

func NewVerificationEventRepository(store *Store) *VerificationEventRepository {
	return &VerificationEventRepository{store: store}
}

func (r *VerificationEventRepository) Create(ctx context.Context, event model.VerificationEvent) (model.VerificationEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.identities[event.ParentID]; !ok {
		return model.VerificationEvent{}, fmt.Errorf("failed to create verification event: parent %s: %w", event.ParentID, model.ErrNotFound)
	}
	if _, ok := r.store.eventByToken[event.Token]; ok {
		return model.VerificationEvent{}, fmt.Errorf("failed to create verification event: duplicate token")
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	r.store.events[event.ID] = event
	r.store.eventByToken[event.Token] = event.ID
	r.store.recordUndo(ctx, func() {
		delete(r.store.events, event.ID)
		delete(r.store.eventByToken, event.Token)
	})

	return event, nil
}

func (r *VerificationEventRepository) GetByToken(_ context.Context, token string) (model.VerificationEvent, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.eventByToken[token]
	if !ok {
		return model.VerificationEvent{}, false, nil
	}
	return r.store.events[id], true, nil
}

// GetByTokenForUpdate relies on the transaction lock held by WithinTx.
func (r *VerificationEventRepository) GetByTokenForUpdate(ctx context.Context, token string) (model.VerificationEvent, bool, error) {
	return r.GetByToken(ctx, token)
}

func (r *VerificationEventRepository) Update(ctx context.Context, event model.VerificationEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.events[event.ID]
	if !ok {
		return model.ErrNotFound
	}
	previous := stored
	r.store.recordUndo(ctx, func() { r.store.events[previous.ID] = previous })

	stored.Attempts = event.Attempts
	stored.Expired = event.Expired
	stored.ExpiredAt = event.ExpiredAt
	stored.LastAttemptAt = event.LastAttemptAt
	r.store.events[event.ID] = stored

	return nil
}

func (r *VerificationEventRepository) ListByParent(_ context.Context, parentID uuid.UUID) ([]model.VerificationEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var events []model.VerificationEvent
	for _, e := range r.store.events {
		if e.ParentID == parentID {
			events = append(events, e)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	return events, nil
}
