package database

import (
	"context"
	"database/sql"
	"errors"

	pkgerrors "github.com/pkg/errors"

	txcontext "onboarding/pkg/platform/tx"
)

// Session is one connection checked out of the pool for the lifetime of a
// request.
type Session struct {
	conn *sql.Conn
}

// Bind routes store calls made with the returned context onto this connection.
func (s *Session) Bind(ctx context.Context) context.Context {
	return txcontext.WithConn(ctx, s.conn)
}

// RunInTx runs fn inside a transaction on the session's connection. The
// transaction commits when fn returns nil and rolls back otherwise; fn's error
// is returned unchanged so callers can still match it.
func (s *Session) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "begin transaction")
	}

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, pkgerrors.Wrap(rbErr, "rollback transaction"))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.Wrap(err, "commit transaction")
	}
	return nil
}

// Close returns the connection to the pool.
func (s *Session) Close() error {
	return s.conn.Close()
}
