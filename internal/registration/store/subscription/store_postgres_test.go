package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboarding/internal/registration/models"
)

func TestPostgresStore(t *testing.T) {
	start := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Email:           "li.wei@shop.cn",
		License:         "Pro",
		StartAt:         start,
		EndAt:           start.AddDate(0, 0, 30),
		TrialsRemaining: 5,
		Status:          models.StatusActive,
		CurrentVersion:  3.2,
	}

	t.Run("create inserts the row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO subscription").
			WithArgs(sub.Email, sub.License, sub.StartAt, sub.EndAt, 5, "Active", 3.2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewPostgres(db).Create(context.Background(), sub))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create failure is wrapped", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO subscription").
			WillReturnError(errors.New(`insert or update violates foreign key constraint "subscription_license_fkey"`))

		err = NewPostgres(db).Create(context.Background(), sub)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insert subscription")
	})

	t.Run("list scans rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("FROM subscription").WithArgs(sub.Email).
			WillReturnRows(sqlmock.NewRows([]string{
				"email", "license", "start_date", "end_date", "trials_remaining", "status", "current_version",
			}).AddRow(sub.Email, sub.License, sub.StartAt, sub.EndAt, 5, "Active", 3.2))

		subs, err := NewPostgres(db).ListByEmail(context.Background(), sub.Email)
		require.NoError(t, err)
		require.Len(t, subs, 1)
		assert.Equal(t, *sub, subs[0])
	})
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	require.NoError(t, store.Create(ctx, &models.Subscription{Email: "a@shop.cn", License: "Basic"}))
	require.NoError(t, store.Create(ctx, &models.Subscription{Email: "a@shop.cn", License: "Pro"}))
	require.NoError(t, store.Create(ctx, &models.Subscription{Email: "b@shop.cn", License: "Pro"}))

	subs, err := store.ListByEmail(ctx, "a@shop.cn")
	require.NoError(t, err)
	assert.Len(t, subs, 2)
	assert.Equal(t, 3, store.Count())
	assert.Error(t, store.Create(ctx, nil))
}
