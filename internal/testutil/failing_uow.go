package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/imihigo/internal/db"
)

// FaultyUoW runs fn in a real transaction but makes the FailAt-th write
// (1-based) return Err. Reads are untouched.
type FaultyUoW struct {
	DB     *sql.DB
	FailAt int
	Err    error
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(ctx, &faultyTx{Tx: tx, failAt: u.FailAt, err: u.Err}); err != nil {
		return err
	}
	return tx.Commit()
}

type faultyTx struct {
	*sql.Tx
	writes int
	failAt int
	err    error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failAt {
		return nil, f.err
	}
	return f.Tx.ExecContext(ctx, query, args...)
}
