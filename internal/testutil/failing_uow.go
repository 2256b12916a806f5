package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Keto24/saturday-planner/internal/db"
)

// ErrWriteFault is what a tripped write returns when no explicit error is
// configured on the FaultyUoW.
var ErrWriteFault = errors.New("injected write fault")

// FaultyUoW runs real transactions against DB but fails the Nth write
// statement, counting ExecContext calls from 1. Reads pass through, so code
// under test proceeds normally until the targeted write, and rollback
// behavior can be asserted against the backing database afterwards.
type FaultyUoW struct {
	DB     *sql.DB
	FailOn int   // 1-based index of the write that fails
	Err    error // returned by the failing write; nil uses ErrWriteFault
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	realTx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	fault := u.Err
	if fault == nil {
		fault = ErrWriteFault
	}
	tx := &faultyTx{DBTX: realTx, failOn: u.FailOn, fault: fault}
	if fnErr := fn(ctx, tx); fnErr != nil {
		_ = realTx.Rollback()
		return fnErr
	}
	return realTx.Commit()
}

// faultyTx counts writes with a plain int; a sql.Tx is single-goroutine.
type faultyTx struct {
	db.DBTX
	writes int
	failOn int
	fault  error
}

func (t *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	t.writes++
	if t.writes == t.failOn {
		return nil, t.fault
	}
	return t.DBTX.ExecContext(ctx, query, args...)
}
