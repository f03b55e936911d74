package servicerule

import (
	"context"
	"database/sql"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"onboarding/internal/registration/models"
	"onboarding/pkg/platform/sentinel"
	txcontext "onboarding/pkg/platform/tx"
)

// PostgresStore persists service-level rules in the v2tslr table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed service rule store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, r *models.ServiceRule) error {
	if r == nil {
		return pkgerrors.New("service rule is required")
	}
	query := `
		INSERT INTO v2tslr (tscuno, tsseqn, tsdesc, tstsla, tstslb, tstslc, tspref, tsupby, tsupdt, tsprst)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := txcontext.Or(ctx, s.db).ExecContext(ctx, query,
		r.CustomerID,
		r.Sequence,
		r.Description,
		r.ThresholdA,
		r.ThresholdB,
		r.ThresholdC,
		r.Preference,
		r.UpdatedBy,
		r.UpdatedAt,
		r.PriorityRank,
	)
	if err != nil {
		return pkgerrors.Wrap(err, "insert service rule")
	}
	return nil
}

func (s *PostgresStore) FindByCustomer(ctx context.Context, customerID int64) (*models.ServiceRule, error) {
	query := `
		SELECT tscuno, tsseqn, tsdesc, tstsla, tstslb, tstslc, tspref, tsupby, tsupdt, tsprst
		FROM v2tslr
		WHERE tscuno = $1 AND tsseqn = 0
	`
	var r models.ServiceRule
	err := txcontext.Or(ctx, s.db).QueryRowContext(ctx, query, customerID).Scan(
		&r.CustomerID, &r.Sequence, &r.Description, &r.ThresholdA, &r.ThresholdB,
		&r.ThresholdC, &r.Preference, &r.UpdatedBy, &r.UpdatedAt, &r.PriorityRank,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, pkgerrors.Wrapf(sentinel.ErrNotFound, "service rule for customer %d", customerID)
		}
		return nil, pkgerrors.Wrap(err, "find service rule")
	}
	return &r, nil
}
