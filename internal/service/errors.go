// Package service holds the booking use cases: the movie slot directory,
// booking creation with its event, and the wizard flow that ties sessions,
// the slot directory, persistence and ticket generation together.
package service

import (
	"errors"
	"sort"
	"strings"
)

// ValidationError carries per-field messages for rejected input, keyed by
// JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrNotIssued is returned when tickets are requested before payment.
var ErrNotIssued = errors.New("tickets have not been issued")

// ErrSlotUnavailable is returned when a session refers to a slot that no
// longer exists.
var ErrSlotUnavailable = errors.New("selected movie is no longer available")

func validationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
