package models

import (
	"encoding/json"
	"time"
)

// Capture represents one persisted geolocation sample reported by a device.
type Capture struct {
	ID          int64     `json:"id"`           // ID is assigned by the storage on insert.
	Latitude    float64   `json:"latitude"`     // Latitude in degrees, -90..90.
	Longitude   float64   `json:"longitude"`    // Longitude in degrees, -180..180.
	CapturedAt  time.Time `json:"captured_at"`  // CapturedAt is the instant reported by the client, in UTC.
	DeviceBrand *string   `json:"device_brand"` // DeviceBrand is optional device manufacturer.
	DeviceModel *string   `json:"device_model"` // DeviceModel is optional device model name.
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CaptureInput holds the allow-listed fields a client may submit.
// Any other key of the incoming document is dropped while decoding.
// Values stay raw so a wrong JSON type is reported by validation instead of failing the decode.
type CaptureInput struct {
	Latitude    json.RawMessage `json:"latitude"`
	Longitude   json.RawMessage `json:"longitude"`
	CapturedAt  json.RawMessage `json:"captured_at"`
	DeviceBrand json.RawMessage `json:"device_brand"`
	DeviceModel json.RawMessage `json:"device_model"`
}

// DateRange is a resolved time window, From inclusive and To exclusive.
type DateRange struct {
	From time.Time
	To   time.Time
}
