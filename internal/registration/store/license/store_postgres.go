package license

import (
	"context"
	"database/sql"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"onboarding/internal/registration/models"
	"onboarding/pkg/platform/sentinel"
	txcontext "onboarding/pkg/platform/tx"
)

// PostgresStore reads the license catalog from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed license store. Queries run on the
// connection bound to the context when there is one.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListNames(ctx context.Context) ([]string, error) {
	rows, err := txcontext.Or(ctx, s.db).QueryContext(ctx, `SELECT name FROM license ORDER BY name`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list licenses")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, pkgerrors.Wrap(err, "scan license name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate licenses")
	}
	return names, nil
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.License, error) {
	query := `
		SELECT name, duration, latest_version, trials
		FROM license
		WHERE name = $1
	`
	var l models.License
	err := txcontext.Or(ctx, s.db).QueryRowContext(ctx, query, name).
		Scan(&l.Name, &l.DurationDays, &l.CurrentVersion, &l.TrialCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkgerrors.Wrapf(sentinel.ErrNotFound, "license %q", name)
		}
		return nil, pkgerrors.Wrap(err, "find license")
	}
	return &l, nil
}
