package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// WithinTx starts a transaction, executes fn, and commits on success or
// rolls back on error or panic (the panic is re-raised after rollback).
//
// Every multi-statement write goes through this helper so the
// insert/update, the generated-key retrieval, and the re-fetch all run
// on the same transactional session. A partially applied write is never
// observable outside the transaction boundary.
func WithinTx(ctx context.Context, q Querier, fn func(tx pgx.Tx) error) (err error) {
	tx, err := q.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				err = fmt.Errorf("rollback failed (%v) after original error: %w", rbErr, err)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
