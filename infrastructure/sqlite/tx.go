package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

var errNotInitialized = errors.New("sqlite handle is not initialized")

// TxFunc is the body of a transaction.
type TxFunc func(ctx context.Context, tx bun.Tx) error

// WithWriteTx runs fn on the single writer connection. The tx commits when fn
// returns nil and rolls back otherwise.
func (db *DB) WithWriteTx(ctx context.Context, fn TxFunc) error {
	if db == nil || db.W == nil {
		return errNotInitialized
	}
	return db.W.RunInTx(ctx, &sql.TxOptions{}, fn)
}

// WithReadTx runs fn in a read-only transaction from the reader pool.
func (db *DB) WithReadTx(ctx context.Context, fn TxFunc) error {
	if db == nil || db.R == nil {
		return errNotInitialized
	}
	return db.R.RunInTx(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}
