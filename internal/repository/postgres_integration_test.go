//go:build integration

package repository_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/migrations"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newPostgresRepo(t *testing.T) *repository.Repository {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("waypoint"),
		postgres.WithUsername("waypoint"),
		postgres.WithPassword("waypoint"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrationDB := stdlib.OpenDBFromPool(pool)
	require.NoError(t, migrations.Up(ctx, migrationDB, migrations.DialectPostgres, slog.Default()))
	require.NoError(t, migrationDB.Close())

	return repository.NewRepository(pool, slog.Default())
}

func TestPostgresCaptures(t *testing.T) {
	ctx := context.Background()
	repo := newPostgresRepo(t)

	require.NoError(t, repo.Ping(ctx))

	stamps := []time.Time{
		time.Date(2025, 7, 28, 4, 59, 0, 0, time.UTC),
		time.Date(2025, 7, 28, 5, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 29, 4, 59, 59, 0, time.UTC),
		time.Date(2025, 7, 29, 5, 0, 0, 0, time.UTC),
	}
	for _, stamp := range stamps {
		_, err := repo.InsertCapture(ctx, models.Capture{
			Latitude:    4.6097,
			Longitude:   -74.0817,
			CapturedAt:  stamp,
			DeviceBrand: strPtr("Samsung"),
		})
		require.NoError(t, err)
	}

	all, err := repo.ListCaptures(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.True(t, stamps[3].Equal(all[0].CapturedAt))
	assert.Nil(t, all[0].DeviceModel)
	require.NotNil(t, all[0].DeviceBrand)
	assert.Equal(t, "Samsung", *all[0].DeviceBrand)

	day, err := repo.ListCaptures(ctx, &models.DateRange{
		From: time.Date(2025, 7, 28, 5, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 7, 29, 5, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.True(t, stamps[2].Equal(day[0].CapturedAt))
	assert.True(t, stamps[1].Equal(day[1].CapturedAt))
}
