package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

func sampleEvent() BookingCreatedEvent {
	return NewBookingCreatedEvent(model.Booking{
		ID:            "b-42",
		MovieTitle:    "Interstellar",
		ShowTime:      "19:30",
		Seats:         []string{"C3", "C4"},
		TotalPrice:    3000,
		CustomerName:  "Nimal",
		CustomerPhone: "0771234567",
		BookingDate:   time.Date(2026, 10, 15, 14, 0, 0, 0, time.UTC),
	})
}

func TestFormatLine(t *testing.T) {
	line := FormatLine(sampleEvent())
	assert.Equal(t,
		"[2026-10-15T14:00:00Z] Booking created | id=b-42 | movie=\"Interstellar\" | show=19:30 | customer=\"Nimal\" | total=3000.00 | seats=[C3,C4]\n",
		line)
}

func TestEventOmitsContactDetails(t *testing.T) {
	raw, err := json.Marshal(sampleEvent())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "0771234567")
	assert.Contains(t, string(raw), `"movieTitle":"Interstellar"`)
}

func TestHandleAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "booking.log")
	c := NewConsumer("", path)

	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)
	require.NoError(t, c.Handle(body))
	require.NoError(t, c.Handle(body))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(raw), "\n"))
}

func TestHandleRejectsGarbage(t *testing.T) {
	c := NewConsumer("", filepath.Join(t.TempDir(), "booking.log"))
	assert.Error(t, c.Handle([]byte("{not json")))
}
