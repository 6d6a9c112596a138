package service

import (
	"errors"
	"strings"
)

// ErrInvalidDate is returned by List when a date bound is not a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date format")

// ValidationError lists every constraint a submitted capture violated.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "capture validation failed: " + strings.Join(e.Messages, "; ")
}
