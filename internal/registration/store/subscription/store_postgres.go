package subscription

import (
	"context"
	"database/sql"

	pkgerrors "github.com/pkg/errors"

	"onboarding/internal/registration/models"
	txcontext "onboarding/pkg/platform/tx"
)

// PostgresStore appends subscription rows in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed subscription store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, sub *models.Subscription) error {
	if sub == nil {
		return pkgerrors.New("subscription is required")
	}
	query := `
		INSERT INTO subscription (email, license, start_date, end_date, trials_remaining, status, current_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := txcontext.Or(ctx, s.db).ExecContext(ctx, query,
		sub.Email,
		sub.License,
		sub.StartAt,
		sub.EndAt,
		sub.TrialsRemaining,
		sub.Status,
		sub.CurrentVersion,
	)
	if err != nil {
		return pkgerrors.Wrap(err, "insert subscription")
	}
	return nil
}

// ListByEmail returns a customer's subscriptions, oldest first.
func (s *PostgresStore) ListByEmail(ctx context.Context, email string) ([]models.Subscription, error) {
	query := `
		SELECT email, license, start_date, end_date, trials_remaining, status, current_version
		FROM subscription
		WHERE email = $1
		ORDER BY start_date
	`
	rows, err := txcontext.Or(ctx, s.db).QueryContext(ctx, query, email)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list subscriptions")
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.Email, &sub.License, &sub.StartAt, &sub.EndAt,
			&sub.TrialsRemaining, &sub.Status, &sub.CurrentVersion); err != nil {
			return nil, pkgerrors.Wrap(err, "scan subscription")
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate subscriptions")
	}
	return subs, nil
}
