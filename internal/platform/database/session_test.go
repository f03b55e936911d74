package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"onboarding/pkg/platform/sentinel"
	txcontext "onboarding/pkg/platform/tx"
)

type SessionSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	pool *Pool
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.mock = mock
	s.pool = FromDB(db)
}

func (s *SessionSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *SessionSuite) connect() *Session {
	s.mock.ExpectPing()
	session, err := s.pool.Connect(context.Background())
	s.Require().NoError(err)
	return session
}

func (s *SessionSuite) TestConnectPingFailure() {
	s.mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	_, err := s.pool.Connect(context.Background())
	s.EqualError(err, "connection refused")
}

func (s *SessionSuite) TestBindUsesConnection() {
	session := s.connect()
	defer session.Close()

	ctx := session.Bind(context.Background())
	_, ok := txcontext.From(ctx)
	s.True(ok)
	s.False(txcontext.InTx(ctx))
}

func (s *SessionSuite) TestRunInTxCommits() {
	session := s.connect()
	defer session.Close()

	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := session.RunInTx(context.Background(), func(ctx context.Context) error {
		s.True(txcontext.InTx(ctx))
		q, _ := txcontext.From(ctx)
		_, err := q.ExecContext(ctx, "INSERT INTO users (email) VALUES ($1)", "a@b.c")
		return err
	})
	s.NoError(err)
}

func (s *SessionSuite) TestRunInTxRollsBack() {
	session := s.connect()
	defer session.Close()

	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec("INSERT INTO subscription").WillReturnError(errors.New("foreign key violation"))
	s.mock.ExpectRollback()

	err := session.RunInTx(context.Background(), func(ctx context.Context) error {
		q, _ := txcontext.From(ctx)
		if _, err := q.ExecContext(ctx, "INSERT INTO users (email) VALUES ($1)", "a@b.c"); err != nil {
			return err
		}
		_, err := q.ExecContext(ctx, "INSERT INTO subscription (email) VALUES ($1)", "a@b.c")
		return err
	})
	s.EqualError(err, "foreign key violation")
}

func (s *SessionSuite) TestRunInTxKeepsSentinel() {
	session := s.connect()
	defer session.Close()

	s.mock.ExpectBegin()
	s.mock.ExpectRollback()

	err := session.RunInTx(context.Background(), func(context.Context) error {
		return sentinel.ErrAlreadyUsed
	})
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *SessionSuite) TestRunInTxCommitFailure() {
	session := s.connect()
	defer session.Close()

	s.mock.ExpectBegin()
	s.mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := session.RunInTx(context.Background(), func(context.Context) error { return nil })
	s.Require().Error(err)
	s.Contains(err.Error(), "commit transaction: serialization failure")
}
