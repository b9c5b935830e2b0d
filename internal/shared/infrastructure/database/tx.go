package database

import (
	"context"
	"errors"
)

type txKey struct{}

type txState struct {
	tx    Transaction
	owned bool
}

// WithTx stores tx on the context. owned marks the scope responsible for
// committing it.
func WithTx(ctx context.Context, tx Transaction, owned bool) context.Context {
	return context.WithValue(ctx, txKey{}, txState{tx: tx, owned: owned})
}

func txFromContext(ctx context.Context) (txState, bool) {
	state, ok := ctx.Value(txKey{}).(txState)
	if !ok || state.tx == nil {
		return txState{}, false
	}
	return state, true
}

// ExecutorFromContext returns the ambient transaction, falling back to conn.
func ExecutorFromContext(ctx context.Context, conn Connection) Executor {
	if state, ok := txFromContext(ctx); ok {
		return state.tx
	}
	return conn
}

// UnitOfWork opens one transaction per outermost Begin. Nested Begins join
// the existing transaction and leave commit and rollback to the owner.
type UnitOfWork struct {
	conn Connection
}

// NewUnitOfWork creates a unit of work over conn.
func NewUnitOfWork(conn Connection) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if state, ok := txFromContext(ctx); ok {
		return WithTx(ctx, state.tx, false), nil
	}
	tx, err := u.conn.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return WithTx(ctx, tx, true), nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	state, ok := txFromContext(ctx)
	if !ok {
		return errors.New("commit: no transaction in context")
	}
	if !state.owned {
		return nil
	}
	return state.tx.Commit(ctx)
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	state, ok := txFromContext(ctx)
	if !ok {
		return errors.New("rollback: no transaction in context")
	}
	if !state.owned {
		return nil
	}
	return state.tx.Rollback(ctx)
}
