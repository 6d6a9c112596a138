package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

const (
	maxLatitude          = 90
	maxLongitude         = 180
	maxDeviceFieldLength = 100
)

// capturedAtLayouts are tried in order. Layouts without an offset are read as UTC.
var capturedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// validateCapture checks every field of input and builds the record to persist.
// All violations are collected; the record is only meaningful when none were found.
func validateCapture(input models.CaptureInput) (models.Capture, []string) {
	var (
		capture    models.Capture
		violations []string
		msg        string
	)

	if capture.Latitude, msg = parseCoordinate("Latitude", input.Latitude, maxLatitude); msg != "" {
		violations = append(violations, msg)
	}
	if capture.Longitude, msg = parseCoordinate("Longitude", input.Longitude, maxLongitude); msg != "" {
		violations = append(violations, msg)
	}

	capturedAt, ok := parseTimestamp(scalarText(input.CapturedAt))
	if !ok {
		violations = append(violations, "Captured at can't be blank")
	}
	capture.CapturedAt = capturedAt

	if capture.DeviceBrand, msg = optionalText("Device brand", scalarText(input.DeviceBrand)); msg != "" {
		violations = append(violations, msg)
	}
	if capture.DeviceModel, msg = optionalText("Device model", scalarText(input.DeviceModel)); msg != "" {
		violations = append(violations, msg)
	}

	return capture, violations
}

// parseCoordinate accepts a JSON number or a numeric string and checks |v| <= limit.
func parseCoordinate(field string, raw json.RawMessage, limit float64) (float64, string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, field + " can't be blank"
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, field + " is not a number"
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return 0, field + " can't be blank"
		}
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, field + " is not a number"
	}

	switch {
	case value < -limit:
		return 0, fmt.Sprintf("%s must be greater than or equal to %g", field, -limit)
	case value > limit:
		return 0, fmt.Sprintf("%s must be less than or equal to %g", field, limit)
	}

	return value, ""
}

// scalarText returns the text of a JSON string or number.
// Any other value, including null, reads as blank.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	switch c := raw[0]; {
	case c == '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return ""
		}
		return text
	case c == '-' || (c >= '0' && c <= '9'):
		return string(raw)
	}

	return ""
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range capturedAtLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), true
		}
	}

	return time.Time{}, false
}

// optionalText maps a blank value to nil and enforces the length limit in characters.
func optionalText(field, value string) (*string, string) {
	if strings.TrimSpace(value) == "" {
		return nil, ""
	}
	if utf8.RuneCountInString(value) > maxDeviceFieldLength {
		return nil, fmt.Sprintf("%s is too long (maximum is %d characters)", field, maxDeviceFieldLength)
	}

	return &value, ""
}
