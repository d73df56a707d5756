package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/courseauth/internal/model"
)

// Store keeps identities, verification events and sessions in process
// memory. It backs local development and tests.
type Store struct {
	mu sync.RWMutex

	// txMu serializes WithinTx callbacks so a read-modify-write inside one
	// cannot interleave with another.
	txMu sync.Mutex

	identities      map[uuid.UUID]model.Identity
	identityByEmail map[string]uuid.UUID
	events          map[uuid.UUID]model.VerificationEvent
	eventByToken    map[string]uuid.UUID
	sessions        map[uuid.UUID]model.Session
}

func NewStore() *Store {
	return &Store{
		identities:      make(map[uuid.UUID]model.Identity),
		identityByEmail: make(map[string]uuid.UUID),
		events:          make(map[uuid.UUID]model.VerificationEvent),
		eventByToken:    make(map[string]uuid.UUID),
		sessions:        make(map[uuid.UUID]model.Session),
	}
}

type txKey struct{}

// txState collects the undo steps of writes made inside one WithinTx.
type txState struct {
	undo []func()
}

// recordUndo registers fn to revert a write when ctx belongs to a
// transaction. The caller holds mu.
func (s *Store) recordUndo(ctx context.Context, fn func()) {
	if tx, ok := ctx.Value(txKey{}).(*txState); ok {
		tx.undo = append(tx.undo, fn)
	}
}

func (s *Store) rollback(tx *txState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

var _ model.Transactor = (*Transactor)(nil)

type Transactor struct {
	store *Store
}

func NewTransactor(store *Store) *Transactor {
	return &Transactor{store: store}
}

// WithinTx runs fn while holding the store-wide transaction lock. Writes
// made through ctx are reverted when fn fails or panics.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	tx := &txState{}
	defer func() {
		if p := recover(); p != nil {
			t.store.rollback(tx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		t.store.rollback(tx)
		return err
	}
	return nil
}
