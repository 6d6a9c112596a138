package repository_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/migrations"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T, path string) *repository.SQLiteRepository {
	t.Helper()
	ctx := context.Background()

	db, err := repository.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite, slog.Default()))

	return repository.NewSQLiteRepository(db, slog.Default())
}

func TestOpenSQLite(t *testing.T) {
	t.Parallel()

	t.Run("blank path", func(t *testing.T) {
		t.Parallel()
		db, err := repository.OpenSQLite(context.Background(), "  ")
		require.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("file database survives reopen", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "captures.db")

		repo := newSQLiteRepo(t, path)
		_, err := repo.InsertCapture(ctx, models.Capture{
			Latitude:   1,
			Longitude:  2,
			CapturedAt: time.Date(2025, 7, 28, 12, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		reopened := newSQLiteRepo(t, path)
		captures, err := reopened.ListCaptures(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, captures, 1)
	})
}

func TestSQLiteInsertCapture(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newSQLiteRepo(t, ":memory:")

	input := models.Capture{
		Latitude:    4.6097,
		Longitude:   -74.0817,
		CapturedAt:  time.Date(2025, 7, 28, 15, 30, 0, 123456789, time.UTC),
		DeviceBrand: strPtr("Samsung"),
		DeviceModel: strPtr("SM-A515F"),
	}

	first, err := repo.InsertCapture(ctx, input)
	require.NoError(t, err)
	second, err := repo.InsertCapture(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	assert.Equal(t, time.Date(2025, 7, 28, 15, 30, 0, 123000000, time.UTC), first.CapturedAt,
		"captured_at is stored with millisecond precision")

	captures, err := repo.ListCaptures(ctx, nil)
	require.NoError(t, err)
	require.Len(t, captures, 2)
	assert.Equal(t, *second, captures[0])
}

func TestSQLiteNullDeviceFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newSQLiteRepo(t, ":memory:")

	_, err := repo.InsertCapture(ctx, models.Capture{
		Latitude:   -90,
		Longitude:  180,
		CapturedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	captures, err := repo.ListCaptures(ctx, nil)
	require.NoError(t, err)
	require.Len(t, captures, 1)
	assert.Nil(t, captures[0].DeviceBrand)
	assert.Nil(t, captures[0].DeviceModel)
	assert.InDelta(t, -90, captures[0].Latitude, 0)
	assert.InDelta(t, 180, captures[0].Longitude, 0)
}

func TestSQLiteListCaptures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newSQLiteRepo(t, ":memory:")

	stamps := []time.Time{
		time.Date(2025, 7, 28, 4, 59, 0, 0, time.UTC),
		time.Date(2025, 7, 28, 5, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 28, 20, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 28, 20, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 29, 5, 0, 0, 0, time.UTC),
	}
	for _, stamp := range stamps {
		_, err := repo.InsertCapture(ctx, models.Capture{Latitude: 1, Longitude: 1, CapturedAt: stamp})
		require.NoError(t, err)
	}

	t.Run("empty store", func(t *testing.T) {
		t.Parallel()
		empty := newSQLiteRepo(t, ":memory:")

		captures, err := empty.ListCaptures(ctx, nil)

		require.NoError(t, err)
		assert.NotNil(t, captures)
		assert.Empty(t, captures)
	})

	t.Run("all newest first", func(t *testing.T) {
		t.Parallel()

		captures, err := repo.ListCaptures(ctx, nil)

		require.NoError(t, err)
		ids := make([]int64, 0, len(captures))
		for _, c := range captures {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids)
	})

	t.Run("half open window", func(t *testing.T) {
		t.Parallel()
		// 2025-07-28 in America/Bogota.
		window := &models.DateRange{
			From: time.Date(2025, 7, 28, 5, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 7, 29, 5, 0, 0, 0, time.UTC),
		}

		captures, err := repo.ListCaptures(ctx, window)
		require.NoError(t, err)
		again, err := repo.ListCaptures(ctx, window)
		require.NoError(t, err)

		ids := make([]int64, 0, len(captures))
		for _, c := range captures {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []int64{4, 3, 2}, ids)
		assert.Equal(t, captures, again)
	})

	t.Run("inverted window", func(t *testing.T) {
		t.Parallel()
		window := &models.DateRange{
			From: time.Date(2025, 7, 29, 5, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 7, 28, 5, 0, 0, 0, time.UTC),
		}

		captures, err := repo.ListCaptures(ctx, window)

		require.NoError(t, err)
		assert.Empty(t, captures)
	})
}

func TestSQLitePing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := repository.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	repo := repository.NewSQLiteRepository(db, slog.Default())

	require.NoError(t, repo.Ping(ctx))
	require.NoError(t, db.Close())
	assert.Error(t, repo.Ping(ctx))
}
