package customer

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"

	"onboarding/internal/registration/models"
	"onboarding/pkg/platform/sentinel"
	txcontext "onboarding/pkg/platform/tx"
)

type PostgresStoreSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	store *PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.mock = mock
	s.store = NewPostgres(db)
}

func (s *PostgresStoreSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PostgresStoreSuite) customer() *models.Customer {
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	return &models.Customer{
		Email:      "li.wei@shop.cn",
		Name:       "Wei Li",
		CustomerID: 101,
		Status:     models.StatusActive,
		Language:   models.LanguageChinese,
		CreatedAt:  now,
		RenewalAt:  now.AddDate(0, 0, 30),
		UpdatedBy:  models.UpdatedByAPI,
		Country:    "CN",
	}
}

func (s *PostgresStoreSuite) TestExistsByEmail() {
	s.mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("li.wei@shop.cn").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := s.store.ExistsByEmail(context.Background(), "li.wei@shop.cn")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *PostgresStoreSuite) TestNextCustomerID() {
	s.Run("max plus one", func() {
		s.mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(customer_id) FROM users")).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(100))

		next, err := s.store.NextCustomerID(context.Background())
		s.Require().NoError(err)
		s.Equal(int64(101), next)
	})

	s.Run("empty table is an integrity fault", func() {
		s.mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(customer_id) FROM users")).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

		_, err := s.store.NextCustomerID(context.Background())
		s.ErrorIs(err, sentinel.ErrEmptyCatalog)
	})

	s.Run("locks the table inside a transaction", func() {
		bound, boundMock, err := sqlmock.New()
		s.Require().NoError(err)
		defer bound.Close()

		boundMock.ExpectExec(regexp.QuoteMeta("LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		boundMock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(customer_id) FROM users")).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(7))

		next, err := s.store.NextCustomerID(txcontext.WithTx(context.Background(), bound))
		s.Require().NoError(err)
		s.Equal(int64(8), next)
		s.NoError(boundMock.ExpectationsWereMet())
	})
}

func (s *PostgresStoreSuite) TestCreate() {
	s.Run("inserts every column", func() {
		c := s.customer()
		s.mock.ExpectExec("INSERT INTO users").
			WithArgs(c.Email, c.Name, c.Business, c.Phone, c.CustomerID, "Active", "CN",
				c.CreatedAt, c.RenewalAt, "API", c.Address, c.BusinessType, c.BusinessSect,
				"CN", c.Postcode, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		s.Require().NoError(s.store.Create(context.Background(), c))
	})

	s.Run("duplicate email maps to already used", func() {
		s.mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: EmailConstraint})

		err := s.store.Create(context.Background(), s.customer())
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("other unique violations stay storage errors", func() {
		s.mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_customer_id_key"})

		err := s.store.Create(context.Background(), s.customer())
		s.Require().Error(err)
		s.NotErrorIs(err, sentinel.ErrAlreadyUsed)
		s.Contains(err.Error(), "insert customer")
	})

	s.Run("driver failure is wrapped", func() {
		s.mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("disk full"))

		err := s.store.Create(context.Background(), s.customer())
		s.Require().Error(err)
		s.Contains(err.Error(), "insert customer: disk full")
	})
}
