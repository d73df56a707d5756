package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/courseauth/internal/model"
)

func TestIdentityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdentityRepository(NewStore())

	first, err := repo.GetOrCreate(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, first.Active)

	second, err := repo.GetOrCreate(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, found, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, first.ID, got.ID)

	_, found, err = repo.GetByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, found)

	got, found, err = repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a@x.com", got.Email)

	_, found, err = repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestVerificationEventRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	identities := NewIdentityRepository(store)
	events := NewVerificationEventRepository(store)

	identity, err := identities.GetOrCreate(ctx, "a@x.com")
	require.NoError(t, err)

	base := time.Now().UTC()
	older, err := events.Create(ctx, model.VerificationEvent{ParentID: identity.ID, Email: identity.Email, Token: "t1", CreatedAt: base})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, older.ID)

	_, err = events.Create(ctx, model.VerificationEvent{ParentID: identity.ID, Email: identity.Email, Token: "t2", CreatedAt: base.Add(time.Second)})
	require.NoError(t, err)

	t.Run("duplicate token", func(t *testing.T) {
		_, err := events.Create(ctx, model.VerificationEvent{ParentID: identity.ID, Token: "t1"})
		assert.Error(t, err)
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := events.Create(ctx, model.VerificationEvent{ParentID: uuid.New(), Token: "t3"})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		now := time.Now().UTC()
		older.Attempts = 5
		older.Expired = true
		older.ExpiredAt = &now
		require.NoError(t, events.Update(ctx, older))

		got, found, err := events.GetByTokenForUpdate(ctx, "t1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 5, got.Attempts)
		assert.True(t, got.Expired)

		assert.ErrorIs(t, events.Update(ctx, model.VerificationEvent{ID: uuid.New()}), model.ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		list, err := events.ListByParent(ctx, identity.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "t2", list[0].Token)
		assert.Equal(t, "t1", list[1].Token)
	})

	t.Run("missing token", func(t *testing.T) {
		_, found, err := events.GetByToken(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(NewStore())

	s := model.Session{ID: uuid.New(), EmailID: uuid.New(), CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, s))

	require.NoError(t, repo.Revoke(ctx, s.ID))
	got, found, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, got.RevokedAt)
	revokedAt := *got.RevokedAt

	require.NoError(t, repo.Revoke(ctx, s.ID))
	got, _, _ = repo.GetByID(ctx, s.ID)
	assert.Equal(t, revokedAt, *got.RevokedAt)

	assert.NoError(t, repo.Revoke(ctx, uuid.New()))
}

func TestTransactor_Serializes(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tx := NewTransactor(store)
	identities := NewIdentityRepository(store)
	events := NewVerificationEventRepository(store)

	identity, err := identities.GetOrCreate(ctx, "a@x.com")
	require.NoError(t, err)
	_, err = events.Create(ctx, model.VerificationEvent{ParentID: identity.ID, Token: "tok"})
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = tx.WithinTx(ctx, func(ctx context.Context) error {
				e, _, err := events.GetByTokenForUpdate(ctx, "tok")
				if err != nil {
					return err
				}
				e.Attempts++
				return events.Update(ctx, e)
			})
		}()
	}
	wg.Wait()

	got, _, err := events.GetByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, workers, got.Attempts)
}

func TestTransactor_NestedAndError(t *testing.T) {
	tx := NewTransactor(NewStore())
	boom := errors.New("boom")

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		return tx.WithinTx(ctx, func(ctx context.Context) error { return boom })
	})
	assert.ErrorIs(t, err, boom)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tx := NewTransactor(store)
	identities := NewIdentityRepository(store)
	events := NewVerificationEventRepository(store)
	sessions := NewSessionRepository(store)

	kept, err := identities.GetOrCreate(ctx, "kept@x.com")
	require.NoError(t, err)
	_, err = events.Create(ctx, model.VerificationEvent{ParentID: kept.ID, Token: "kept-token"})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		identity, err := identities.GetOrCreate(ctx, "new@x.com")
		require.NoError(t, err)
		_, err = events.Create(ctx, model.VerificationEvent{ParentID: identity.ID, Token: "new-token"})
		require.NoError(t, err)

		e, _, err := events.GetByTokenForUpdate(ctx, "kept-token")
		require.NoError(t, err)
		e.Attempts = 3
		require.NoError(t, events.Update(ctx, e))

		require.NoError(t, sessions.Create(ctx, model.Session{ID: uuid.New(), EmailID: identity.ID}))

		_, err = events.Create(ctx, model.VerificationEvent{ParentID: identity.ID, Token: "kept-token"})
		require.Error(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, found, err := identities.GetByEmail(ctx, "new@x.com")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = events.GetByToken(ctx, "new-token")
	require.NoError(t, err)
	assert.False(t, found)

	e, found, err := events.GetByToken(ctx, "kept-token")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 0, e.Attempts)

	assert.Empty(t, store.sessions)

	_, found, err = identities.GetByEmail(ctx, "kept@x.com")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestTransactor_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tx := NewTransactor(store)
	identities := NewIdentityRepository(store)

	assert.Panics(t, func() {
		_ = tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := identities.GetOrCreate(ctx, "a@x.com")
			require.NoError(t, err)
			panic("boom")
		})
	})

	_, found, err := identities.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, found)

	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := identities.GetOrCreate(ctx, "a@x.com")
		return err
	})
	require.NoError(t, err)

	_, found, err = identities.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, found)
}
