package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/repository"
)

const dateLayout = "2006-01-02"

// CaptureService validates incoming captures before they are stored
// and answers date-filtered listing queries.
type CaptureService struct {
	log      *slog.Logger         // Logger for logging service activities
	repo     repository.Interface // Capture storage
	metrics  *metrics.Metrics     // Metrics for tracking service outcomes
	location *time.Location       // Reference zone for calendar-date bounds
}

// NewCaptureService creates a new instance of CaptureService.
// location is the reference time zone used to interpret the calendar dates given to List.
func NewCaptureService(
	log *slog.Logger,
	repo repository.Interface,
	metrics *metrics.Metrics,
	location *time.Location,
) *CaptureService {
	return &CaptureService{
		log:      log,
		repo:     repo,
		metrics:  metrics,
		location: location,
	}
}

// Submit validates input and stores it as a new capture.
// If any field is invalid a *ValidationError carrying every violation is returned
// and nothing is written.
func (cs *CaptureService) Submit(ctx context.Context, input models.CaptureInput) (*models.Capture, error) {
	capture, violations := validateCapture(input)
	if len(violations) > 0 {
		cs.log.InfoContext(ctx, "Capture rejected", "violations", violations)
		cs.metrics.CapturesSubmitted.WithLabelValues("rejected").Inc()
		return nil, &ValidationError{Messages: violations}
	}

	startTime := time.Now()
	stored, err := cs.repo.InsertCapture(ctx, capture)
	cs.metrics.StorageSeconds.WithLabelValues("insert").Observe(time.Since(startTime).Seconds())
	if err != nil {
		cs.log.ErrorContext(ctx, "Failed to store capture", "error", err)
		cs.metrics.CapturesSubmitted.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to submit capture: %w", err)
	}

	cs.metrics.CapturesSubmitted.WithLabelValues("created").Inc()
	cs.log.DebugContext(ctx, "Capture stored", "ID", stored.ID)

	return stored, nil
}

// List returns captures ordered by captured_at, most recent first.
// When both startDate and endDate are given (YYYY-MM-DD) only captures taken between
// the start of startDate and the end of endDate in the reference zone are returned.
// If either bound is blank no filter is applied.
func (cs *CaptureService) List(ctx context.Context, startDate, endDate string) ([]models.Capture, error) {
	window, err := cs.dateWindow(startDate, endDate)
	if err != nil {
		cs.log.InfoContext(ctx, "Rejected capture query", "start_date", startDate, "end_date", endDate, "error", err)
		cs.metrics.CaptureQueries.WithLabelValues("invalid").Inc()
		return nil, err
	}

	filter := "all"
	if window != nil {
		filter = "range"
	}
	cs.metrics.CaptureQueries.WithLabelValues(filter).Inc()

	startTime := time.Now()
	captures, err := cs.repo.ListCaptures(ctx, window)
	cs.metrics.StorageSeconds.WithLabelValues("list").Observe(time.Since(startTime).Seconds())
	if err != nil {
		cs.log.ErrorContext(ctx, "Failed to list captures", "error", err)
		return nil, fmt.Errorf("failed to list captures: %w", err)
	}

	return captures, nil
}

// Ping reports whether the capture storage is reachable.
func (cs *CaptureService) Ping(ctx context.Context) error {
	return cs.repo.Ping(ctx)
}

// dateWindow converts a pair of calendar dates into a UTC window covering
// both days entirely in the reference zone. It returns nil when the pair is incomplete.
func (cs *CaptureService) dateWindow(startDate, endDate string) (*models.DateRange, error) {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	if startDate == "" || endDate == "" {
		return nil, nil
	}

	start, err := time.ParseInLocation(dateLayout, startDate, cs.location)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q", ErrInvalidDate, startDate)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, cs.location)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date %q", ErrInvalidDate, endDate)
	}

	// Midnight after endDate; computed with time.Date so DST transitions keep whole days.
	next := time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, cs.location)

	return &models.DateRange{From: start.UTC(), To: next.UTC()}, nil
}
