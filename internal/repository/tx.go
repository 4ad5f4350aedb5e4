package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the query surface shared by *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside and outside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Stores bundles transaction-bound repositories.
type Stores struct {
	Users    UserRepository
	Pets     PetRepository
	Requests AdoptionRequestRepository
}

// TxManager runs a function against repositories bound to one transaction.
// The function's error rolls everything back; otherwise the tx commits.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

type pgxTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager returns a pgx-backed transaction manager.
func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &pgxTxManager{pool: pool}
}

func (m *pgxTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stores := Stores{
		Users:    NewUserRepository(tx),
		Pets:     NewPetRepository(tx),
		Requests: NewAdoptionRequestRepository(tx),
	}
	if err := fn(ctx, stores); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
