package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

// MockSlotStore is a mock implementation of repository.SlotStore
type MockSlotStore struct {
	mock.Mock
}

func (m *MockSlotStore) List(ctx context.Context) ([]model.MovieSlot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MovieSlot), args.Error(1)
}

func (m *MockSlotStore) Get(ctx context.Context, id string) (*model.MovieSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MovieSlot), args.Error(1)
}

func (m *MockSlotStore) Create(ctx context.Context, s *model.MovieSlot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSlotStore) CreateMany(ctx context.Context, slots []model.MovieSlot) error {
	args := m.Called(ctx, slots)
	return args.Error(0)
}

func (m *MockSlotStore) Update(ctx context.Context, s model.MovieSlot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockBookingStore is a mock implementation of repository.BookingStore
type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(ctx context.Context, b *model.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingStore) List(ctx context.Context) ([]model.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingStore) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher is a mock implementation of service.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBookingCreated(ctx context.Context, b model.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
