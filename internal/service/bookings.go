package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
	"github.com/iliyamo/galaxy-cinema-booking/internal/repository"
	"github.com/iliyamo/galaxy-cinema-booking/internal/seatmap"
	"github.com/iliyamo/galaxy-cinema-booking/internal/validator"
)

// EventPublisher announces stored bookings.  queue.Publisher implements it.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, b model.Booking) error
}

// BookingInput is the body of POST /api/bookings.
type BookingInput struct {
	MovieTitle    string   `json:"movieTitle" validate:"notblank"`
	ShowTime      string   `json:"showTime"`
	Seats         []string `json:"seats" validate:"required,min=1,unique_seats"`
	TotalPrice    float64  `json:"totalPrice" validate:"gte=0"`
	CustomerName  string   `json:"customerName" validate:"notblank"`
	CustomerPhone string   `json:"customerPhone" validate:"notblank"`
	CustomerEmail string   `json:"customerEmail" validate:"notblank"`
}

// BookingService creates, lists and clears booking records.
type BookingService struct {
	store          repository.BookingStore
	pub            EventPublisher
	now            func() time.Time
	publishTimeout time.Duration
}

// NewBookingService returns a service writing to store.  pub may be nil
// when events are disabled.
func NewBookingService(store repository.BookingStore, pub EventPublisher) *BookingService {
	return &BookingService{store: store, pub: pub, now: time.Now, publishTimeout: 5 * time.Second}
}

// Create validates in, stores the booking with a fresh id and timestamp,
// and publishes a booking.created event.  Publishing happens after the
// write and its failure is only logged.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (model.Booking, error) {
	if errs := validator.Validate(in, nil); errs != nil {
		return model.Booking{}, &ValidationError{Fields: errs}
	}
	// duplicates are checked on the canonical labels ("A01" is "A1").
	seats := make([]string, len(in.Seats))
	seen := make(map[string]bool, len(in.Seats))
	for i, raw := range in.Seats {
		seat, err := seatmap.Normalize(raw)
		if err != nil {
			return model.Booking{}, &ValidationError{Fields: map[string]string{"seats": err.Error()}}
		}
		if seen[seat] {
			return model.Booking{}, &ValidationError{Fields: map[string]string{"seats": "duplicate seat " + seat}}
		}
		seen[seat] = true
		seats[i] = seat
	}
	b := model.Booking{
		ID:            uuid.NewString(),
		MovieTitle:    strings.TrimSpace(in.MovieTitle),
		ShowTime:      strings.TrimSpace(in.ShowTime),
		Seats:         seats,
		TotalPrice:    in.TotalPrice,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		BookingDate:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, &b); err != nil {
		return model.Booking{}, err
	}
	s.publish(b)
	return b, nil
}

func (s *BookingService) publish(b model.Booking) {
	if s.pub == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
		defer cancel()
		if err := s.pub.PublishBookingCreated(ctx, b); err != nil {
			log.Warn().Err(err).Str("booking_id", b.ID).Msg("booking.created publish failed")
		}
	}()
}

// List returns every booking, newest first.
func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	return s.store.List(ctx)
}

// DeleteAll removes every booking and reports how many were removed.
func (s *BookingService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	log.Warn().Int64("deleted", n).Msg("all bookings cleared")
	return n, nil
}
