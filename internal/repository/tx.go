package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// maxTxAttempts bounds how often a transaction is retried after a
// transient serialization failure before the error is surfaced.
const maxTxAttempts = 3

// RunTx executes fn inside a transaction and commits when fn returns
// nil, rolling back otherwise. Deadlocks and lock-wait timeouts are
// retried transparently up to maxTxAttempts; domain errors returned by
// fn are deterministic and never retried.
func RunTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = runOnce(ctx, db, fn)
		if err == nil || !retryable(err) {
			return err
		}
	}
	return err
}

func runOnce(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// retryable reports whether err is a transient concurrency conflict.
// MySQL signals deadlock as error 1213 and lock wait timeout as 1205;
// both resolve themselves when the competing transaction finishes.
func retryable(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1213 || myErr.Number == 1205
	}
	return false
}
