// Package queue carries booking events over RabbitMQ: a publisher used by
// the booking service and a consumer that keeps an append-only booking log.
package queue

import (
	"time"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

// BookingCreatedQueue is the durable queue booking events are routed to.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published after a booking has been stored.  It
// carries everything the booking log needs so the consumer never reads the
// primary store.  Customer phone and email are left out on purpose.
type BookingCreatedEvent struct {
	ID           string    `json:"id"`
	MovieTitle   string    `json:"movieTitle"`
	ShowTime     string    `json:"showTime"`
	Seats        []string  `json:"seats"`
	TotalPrice   float64   `json:"totalPrice"`
	CustomerName string    `json:"customerName"`
	BookingDate  time.Time `json:"bookingDate"`
}

// NewBookingCreatedEvent snapshots b.
func NewBookingCreatedEvent(b model.Booking) BookingCreatedEvent {
	seats := make([]string, len(b.Seats))
	copy(seats, b.Seats)
	return BookingCreatedEvent{
		ID:           b.ID,
		MovieTitle:   b.MovieTitle,
		ShowTime:     b.ShowTime,
		Seats:        seats,
		TotalPrice:   b.TotalPrice,
		CustomerName: b.CustomerName,
		BookingDate:  b.BookingDate,
	}
}
