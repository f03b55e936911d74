package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"

	"onboarding/internal/registration/models"
	"onboarding/pkg/platform/sentinel"
	txcontext "onboarding/pkg/platform/tx"
)

// EmailConstraint is the unique constraint guarding one customer per email.
const EmailConstraint = "users_email_key"

// PostgresStore persists customers in the users table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed customer store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := txcontext.Or(ctx, s.db).
		QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).
		Scan(&exists)
	if err != nil {
		return false, pkgerrors.Wrap(err, "check customer exists")
	}
	return exists, nil
}

// NextCustomerID returns one past the highest customer id. Inside a
// transaction the users table is locked against concurrent inserts first, so
// the id stays free until commit. An empty table has no maximum and yields
// sentinel.ErrEmptyCatalog.
func (s *PostgresStore) NextCustomerID(ctx context.Context) (int64, error) {
	q := txcontext.Or(ctx, s.db)
	if txcontext.InTx(ctx) {
		if _, err := q.ExecContext(ctx, `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return 0, pkgerrors.Wrap(err, "lock users")
		}
	}

	var maxID sql.NullInt64
	if err := q.QueryRowContext(ctx, `SELECT MAX(customer_id) FROM users`).Scan(&maxID); err != nil {
		return 0, pkgerrors.Wrap(err, "read max customer id")
	}
	if !maxID.Valid {
		return 0, pkgerrors.Wrap(sentinel.ErrEmptyCatalog, "no customer id to increment")
	}
	return maxID.Int64 + 1, nil
}

func (s *PostgresStore) Create(ctx context.Context, c *models.Customer) error {
	if c == nil {
		return pkgerrors.New("customer is required")
	}
	query := `
		INSERT INTO users (email, name, business, phone, customer_id, status, language,
			created_date, updated_date, updated_by, address, business_type, business_sect,
			country, postcode, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := txcontext.Or(ctx, s.db).ExecContext(ctx, query,
		c.Email,
		c.Name,
		c.Business,
		c.Phone,
		c.CustomerID,
		c.Status,
		c.Language,
		c.CreatedAt,
		c.RenewalAt,
		c.UpdatedBy,
		c.Address,
		c.BusinessType,
		c.BusinessSect,
		c.Country,
		c.Postcode,
		nullable(c.State),
	)
	if err != nil {
		if isEmailViolation(err) {
			return pkgerrors.Wrapf(sentinel.ErrAlreadyUsed, "customer %s", c.Email)
		}
		return pkgerrors.Wrap(err, "insert customer")
	}
	return nil
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func isEmailViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == EmailConstraint
	}
	return false
}
