// Package repository holds the slot and booking stores.  Both have a
// MongoDB and a MySQL implementation; the sentinel errors below are shared
// so handlers can map failures to HTTP statuses without knowing which
// backend is in use.
package repository

import "errors"

// ErrSlotNotFound is returned when no movie slot has the requested id.
// Handlers translate it into an HTTP 404 response.
var ErrSlotNotFound = errors.New("movie slot not found")

// ErrConflict is returned when an insert collides with an existing id.
// Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
