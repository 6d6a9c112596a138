package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/models"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const (
	sqliteInsertCaptureQuery = `
		INSERT INTO captures (latitude, longitude, captured_at, device_brand, device_model, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`

	sqliteListCapturesQuery = `
		SELECT id, latitude, longitude, captured_at, device_brand, device_model, created_at, updated_at
		FROM captures
		ORDER BY captured_at DESC, id DESC;
	`

	sqliteListCapturesInRangeQuery = `
		SELECT id, latitude, longitude, captured_at, device_brand, device_model, created_at, updated_at
		FROM captures
		WHERE captured_at >= ? AND captured_at < ?
		ORDER BY captured_at DESC, id DESC;
	`
)

// SQLiteRepository stores captures in a SQLite database.
// Timestamps are kept as UTC unix milliseconds.
type SQLiteRepository struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

// OpenSQLite opens the SQLite database at path. Use ":memory:" for a throwaway store.
// The pool is limited to a single connection so an in-memory database is shared by all callers.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	return db, nil
}

// NewSQLiteRepository creates a repository over an opened SQLite handle.
func NewSQLiteRepository(db *sql.DB, log *slog.Logger) *SQLiteRepository {
	return &SQLiteRepository{db: db, log: log, now: time.Now}
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// InsertCapture stores a validated capture as a single row.
func (r *SQLiteRepository) InsertCapture(ctx context.Context, capture models.Capture) (*models.Capture, error) {
	stamp := fromMillis(toMillis(r.now()))
	capture.CapturedAt = fromMillis(toMillis(capture.CapturedAt))

	res, err := r.db.ExecContext(ctx, sqliteInsertCaptureQuery,
		capture.Latitude,
		capture.Longitude,
		toMillis(capture.CapturedAt),
		capture.DeviceBrand,
		capture.DeviceModel,
		toMillis(stamp),
		toMillis(stamp),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert capture: %w", err)
	}

	capture.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read capture id: %w", err)
	}
	capture.CreatedAt = stamp
	capture.UpdatedAt = stamp

	r.log.DebugContext(ctx, "A new capture has been stored.", "ID", capture.ID, "captured_at", capture.CapturedAt)

	return &capture, nil
}

// ListCaptures returns captures ordered by captured_at, most recent first.
// A nil window returns every capture.
func (r *SQLiteRepository) ListCaptures(ctx context.Context, window *models.DateRange) ([]models.Capture, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if window == nil {
		rows, err = r.db.QueryContext(ctx, sqliteListCapturesQuery)
	} else {
		rows, err = r.db.QueryContext(ctx, sqliteListCapturesInRangeQuery, toMillis(window.From), toMillis(window.To))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query captures: %w", err)
	}
	defer rows.Close()

	captures := []models.Capture{}
	for rows.Next() {
		var (
			capture                        models.Capture
			capturedAt, createdAt, updated int64
			brand, model                   sql.NullString
		)
		if errScan := rows.Scan(
			&capture.ID,
			&capture.Latitude,
			&capture.Longitude,
			&capturedAt,
			&brand,
			&model,
			&createdAt,
			&updated,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan capture: %w", errScan)
		}
		capture.CapturedAt = fromMillis(capturedAt)
		capture.CreatedAt = fromMillis(createdAt)
		capture.UpdatedAt = fromMillis(updated)
		if brand.Valid {
			capture.DeviceBrand = &brand.String
		}
		if model.Valid {
			capture.DeviceModel = &model.String
		}
		captures = append(captures, capture)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return captures, nil
}

// Ping checks that the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
