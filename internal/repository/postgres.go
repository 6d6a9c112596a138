package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/jackc/pgx/v5"
)

const (
	insertCaptureQuery = `
		INSERT INTO captures (latitude, longitude, captured_at, device_brand, device_model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING id, created_at, updated_at;
	`

	listCapturesQuery = `
		SELECT id, latitude, longitude, captured_at, device_brand, device_model, created_at, updated_at
		FROM captures
		ORDER BY captured_at DESC, id DESC;
	`

	listCapturesInRangeQuery = `
		SELECT id, latitude, longitude, captured_at, device_brand, device_model, created_at, updated_at
		FROM captures
		WHERE captured_at >= $1 AND captured_at < $2
		ORDER BY captured_at DESC, id DESC;
	`
)

// InsertCapture stores a validated capture as a single row.
// The storage assigns id, created_at and updated_at; the returned copy carries them.
func (r *Repository) InsertCapture(ctx context.Context, capture models.Capture) (*models.Capture, error) {
	capture.CapturedAt = capture.CapturedAt.UTC()

	err := r.db.QueryRow(ctx, insertCaptureQuery,
		capture.Latitude,
		capture.Longitude,
		capture.CapturedAt,
		capture.DeviceBrand,
		capture.DeviceModel,
	).Scan(&capture.ID, &capture.CreatedAt, &capture.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert capture: %w", err)
	}

	capture.CreatedAt = capture.CreatedAt.UTC()
	capture.UpdatedAt = capture.UpdatedAt.UTC()

	r.log.DebugContext(ctx, "A new capture has been stored.", "ID", capture.ID, "captured_at", capture.CapturedAt)

	return &capture, nil
}

// ListCaptures returns captures ordered by captured_at, most recent first.
// A nil window returns every capture; otherwise only rows with
// window.From <= captured_at < window.To are returned.
func (r *Repository) ListCaptures(ctx context.Context, window *models.DateRange) ([]models.Capture, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if window == nil {
		rows, err = r.db.Query(ctx, listCapturesQuery)
	} else {
		rows, err = r.db.Query(ctx, listCapturesInRangeQuery, window.From.UTC(), window.To.UTC())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query captures: %w", err)
	}
	defer rows.Close()

	captures := []models.Capture{}
	for rows.Next() {
		var capture models.Capture
		if errScan := rows.Scan(
			&capture.ID,
			&capture.Latitude,
			&capture.Longitude,
			&capture.CapturedAt,
			&capture.DeviceBrand,
			&capture.DeviceModel,
			&capture.CreatedAt,
			&capture.UpdatedAt,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan capture: %w", errScan)
		}
		capture.CapturedAt = capture.CapturedAt.UTC()
		capture.CreatedAt = capture.CreatedAt.UTC()
		capture.UpdatedAt = capture.UpdatedAt.UTC()
		captures = append(captures, capture)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Captures have been fetched.", "count", len(captures), "filtered", window != nil)

	return captures, nil
}
