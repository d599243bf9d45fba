package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/veridianlabs/mailward/internal/mailward/store"
)

type txStore struct {
	// ctx is the context the transaction was started with. pgx requires a
	// context on Commit/Rollback while the store.Tx interface carries none,
	// so the Tx is bound to its opening context for its whole lifetime.
	ctx context.Context
	tx  pgx.Tx
}

func newTx(ctx context.Context, tx pgx.Tx) *txStore {
	return &txStore{ctx: ctx, tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit(t.ctx) }
func (t *txStore) Rollback() error { return t.tx.Rollback(t.ctx) }

func (t *txStore) Close() error { return nil } // nothing to close; caller will commit/rollback and outer pool stays open

// Ping is a no-op for transactions. The connection is already established
// when the transaction is created, so we just return nil.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, pgx.ErrTxClosed
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return pgx.ErrTxClosed
}

func (t *txStore) Subjects() store.Subjects           { return &subjectsRepo{db: t.tx} }
func (t *txStore) PendingTokens() store.PendingTokens { return &pendingTokensRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // no-op; migrations should be applied before starting a tx
