package repository

import (
	"context"
	"fmt"

	"github.com/dtroode/courseauth/internal/model"
	"github.com/dtroode/courseauth/internal/repository/memory"
	"github.com/dtroode/courseauth/internal/repository/postgres"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Stores groups the persistence dependencies of the services.
type Stores struct {
	Identities model.IdentityStore
	Events     model.VerificationEventStore
	Sessions   model.SessionStore
	Tx         model.Transactor

	close func() error
}

// Close releases the underlying connection, if any.
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// New builds the stores for driver. dsn is used by the postgres driver only.
func New(ctx context.Context, driver, dsn string) (*Stores, error) {
	switch driver {
	case DriverPostgres:
		conn, err := postgres.NewConnection(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Identities: postgres.NewIdentityRepository(conn),
			Events:     postgres.NewVerificationEventRepository(conn),
			Sessions:   postgres.NewSessionRepository(conn),
			Tx:         postgres.NewTransactor(conn),
			close:      conn.Close,
		}, nil
	case DriverMemory:
		store := memory.NewStore()
		return &Stores{
			Identities: memory.NewIdentityRepository(store),
			Events:     memory.NewVerificationEventRepository(store),
			Sessions:   memory.NewSessionRepository(store),
			Tx:         memory.NewTransactor(store),
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
