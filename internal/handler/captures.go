package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/service"
)

const maxBodyBytes = 1 << 20

// CaptureService is the core the HTTP boundary delegates to.
type CaptureService interface {
	Submit(ctx context.Context, input models.CaptureInput) (*models.Capture, error)
	List(ctx context.Context, startDate, endDate string) ([]models.Capture, error)
	Ping(ctx context.Context) error
}

// CaptureHandler maps capture requests onto the service and back to JSON.
type CaptureHandler struct {
	log     *slog.Logger
	service CaptureService
}

// createCaptureRequest only exposes the capture document; its fields are allow-listed when building models.CaptureInput.
type createCaptureRequest struct {
	Capture json.RawMessage `json:"capture"`
}

type createCaptureResponse struct {
	Message string          `json:"message"`
	Capture *models.Capture `json:"capture"`
}

type errorsResponse struct {
	Errors []string `json:"errors"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewCaptureHandler(log *slog.Logger, service CaptureService) *CaptureHandler {
	return &CaptureHandler{log: log, service: service}
}

// Create handles POST /captures.
func (h *CaptureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCaptureRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.log.DebugContext(r.Context(), "Failed to decode capture request", "error", err)
		h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(req.Capture, &fields); err != nil || len(fields) == 0 {
		h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "param is missing or the value is empty: capture"})
		return
	}

	input := models.CaptureInput{
		Latitude:    fields["latitude"],
		Longitude:   fields["longitude"],
		CapturedAt:  fields["captured_at"],
		DeviceBrand: fields["device_brand"],
		DeviceModel: fields["device_model"],
	}

	capture, err := h.service.Submit(r.Context(), input)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.writeJSON(w, r, http.StatusUnprocessableEntity, errorsResponse{Errors: verr.Messages})
			return
		}

		h.log.ErrorContext(r.Context(), "Failed to create capture", "error", err)
		h.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	h.writeJSON(w, r, http.StatusCreated, createCaptureResponse{
		Message: "Capture saved successfully",
		Capture: capture,
	})
}

// Index handles GET /captures?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD.
func (h *CaptureHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	captures, err := h.service.List(r.Context(), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "Invalid date format"})
			return
		}

		h.log.ErrorContext(r.Context(), "Failed to list captures", "error", err)
		h.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	if captures == nil {
		captures = []models.Capture{}
	}

	h.writeJSON(w, r, http.StatusOK, captures)
}

// Health handles GET /healthz by pinging the capture storage.
func (h *CaptureHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.log.DebugContext(r.Context(), "Performing health checks...")
	status, body := http.StatusOK, "OK"
	if err := h.service.Ping(r.Context()); err != nil {
		h.log.WarnContext(r.Context(), "Health check failed", "error", err)
		status, body = http.StatusServiceUnavailable, "DB ping failed"
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

func (h *CaptureHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}
