//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"onboarding/internal/platform/database"
	"onboarding/internal/registration/models"
)

// PostgresContainer wraps a testcontainers Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a new Postgres container with migrations applied.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("onboarding_test"),
		postgres.WithUsername("onboarding"),
		postgres.WithPassword("onboarding_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	// The container is shared across suites through the Manager. Ryuk removes
	// it when the test process exits.
	return &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        db,
	}
}

// TruncateTables clears all data from the specified tables.
// Use between tests to ensure isolation without restarting the container.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		_, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		if err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// TruncateAll truncates every registration table.
func (p *PostgresContainer) TruncateAll(ctx context.Context) error {
	return p.TruncateTables(ctx, "v2tslr", "subscription", "users", "license")
}

// Exec runs a SQL statement and returns the result.
func (p *PostgresContainer) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return p.DB.ExecContext(ctx, query, args...)
}

// QueryRow runs a SQL query expected to return a single row.
func (p *PostgresContainer) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return p.DB.QueryRowContext(ctx, query, args...)
}

// SeedLicense inserts a license row. Fails the test if insertion fails.
func (p *PostgresContainer) SeedLicense(ctx context.Context, t testing.TB, l models.License) {
	t.Helper()
	_, err := p.Exec(ctx, `
		INSERT INTO license (name, duration, latest_version, trials)
		VALUES ($1, $2, $3, $4)
	`, l.Name, l.DurationDays, l.CurrentVersion, l.TrialCount)
	if err != nil {
		t.Fatalf("SeedLicense: %v", err)
	}
}

// SeedCustomer inserts a minimal users row so customer ids have a base to
// increment from. Fails the test if insertion fails.
func (p *PostgresContainer) SeedCustomer(ctx context.Context, t testing.TB, email string, customerID int64) {
	t.Helper()
	now := time.Now().UTC()
	_, err := p.Exec(ctx, `
		INSERT INTO users (email, name, business, phone, customer_id, status, language,
			created_date, updated_date, updated_by, address, business_type, business_sect,
			country, postcode)
		VALUES ($1, 'Seed', 'Seed', '0', $2, 'Active', 'EN', $3, $3, 'API', '-', '-', '-', 'AU', '0')
	`, email, customerID, now)
	if err != nil {
		t.Fatalf("SeedCustomer: %v", err)
	}
}

// CountRows returns the row count of table.
func (p *PostgresContainer) CountRows(ctx context.Context, t testing.TB, table string) int {
	t.Helper()
	var n int
	if err := p.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("CountRows %s: %v", table, err)
	}
	return n
}
