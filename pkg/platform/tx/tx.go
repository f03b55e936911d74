// Package tx carries the active database handle through a context so stores
// can run on the caller's connection or transaction without knowing which.
package tx

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB, *sql.Conn and *sql.Tx used by stores.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type ctxKey struct{}

type binding struct {
	q    Querier
	inTx bool
}

// WithConn binds a dedicated connection to ctx.
func WithConn(ctx context.Context, conn Querier) context.Context {
	return context.WithValue(ctx, ctxKey{}, binding{q: conn})
}

// WithTx binds an open transaction to ctx.
func WithTx(ctx context.Context, tx Querier) context.Context {
	return context.WithValue(ctx, ctxKey{}, binding{q: tx, inTx: true})
}

// From returns the handle bound to ctx, if any.
func From(ctx context.Context) (Querier, bool) {
	b, ok := ctx.Value(ctxKey{}).(binding)
	if !ok || b.q == nil {
		return nil, false
	}
	return b.q, true
}

// InTx reports whether ctx carries an open transaction.
func InTx(ctx context.Context) bool {
	b, ok := ctx.Value(ctxKey{}).(binding)
	return ok && b.inTx
}

// Or returns the handle bound to ctx, falling back to def.
func Or(ctx context.Context, def Querier) Querier {
	if q, ok := From(ctx); ok {
		return q
	}
	return def
}
