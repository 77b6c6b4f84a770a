package repository

import (
	"context"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

// SlotStore persists movie slots.  List returns slots in storage order;
// ordering by show time is the directory's job.
type SlotStore interface {
	List(ctx context.Context) ([]model.MovieSlot, error)
	Get(ctx context.Context, id string) (*model.MovieSlot, error)
	Create(ctx context.Context, s *model.MovieSlot) error
	CreateMany(ctx context.Context, slots []model.MovieSlot) error
	Update(ctx context.Context, s model.MovieSlot) error
}

// BookingStore persists bookings.  List returns newest first.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	List(ctx context.Context) ([]model.Booking, error)
	DeleteAll(ctx context.Context) (int64, error)
}
