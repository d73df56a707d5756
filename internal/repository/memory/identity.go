package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/courseauth/internal/model"
)

var _ model.IdentityStore = (*IdentityRepository)(nil)

type IdentityRepository struct {
	store *Store
}

func NewIdentityRepository(store *Store) *IdentityRepository {
	return &IdentityRepository{store: store}
}

func (r *IdentityRepository) GetOrCreate(ctx context.Context, email string) (model.Identity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if id, ok := r.store.identityByEmail[email]; ok {
		return r.store.identities[id], nil
	}

	identity := model.Identity{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	r.store.identities[identity.ID] = identity
	r.store.identityByEmail[email] = identity.ID
	r.store.recordUndo(ctx, func() {
		delete(r.store.identities, identity.ID)
		delete(r.store.identityByEmail, email)
	})

	return identity, nil
}

func (r *IdentityRepository) GetByEmail(_ context.Context, email string) (model.Identity, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.identityByEmail[email]
	if !ok {
		return model.Identity{}, false, nil
	}
	return r.store.identities[id], true, nil
}

func (r *IdentityRepository) GetByID(_ context.Context, id uuid.UUID) (model.Identity, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	identity, ok := r.store.identities[id]
	return identity, ok, nil
}
