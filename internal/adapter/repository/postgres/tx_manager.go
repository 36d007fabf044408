package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/tripledger/internal/usecase"
)

type txBeginner interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager implements usecase.TransactionManager. It is the single
// atomicity boundary in the write path; an expense and its splits
// commit or roll back together through it.
type TxManager struct {
	pool txBeginner
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool txBeginner) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx}, nil
}

// Tx adapts a pgx transaction to usecase.Transaction. Commit and
// Rollback are promoted from the embedded pgx.Tx.
type Tx struct {
	pgx.Tx
}

// PgxTx exposes the underlying pgx.Tx for repositories that run
// statements inside the transaction.
func (t *Tx) PgxTx() pgx.Tx {
	return t.Tx
}
