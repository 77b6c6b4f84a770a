package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
	"github.com/iliyamo/galaxy-cinema-booking/internal/repository"
	"github.com/iliyamo/galaxy-cinema-booking/internal/validator"
)

// SlotPatch holds the fields a PUT may change.  Nil fields keep their
// stored value.
type SlotPatch struct {
	Title       *string  `json:"title"`
	Image       *string  `json:"image"`
	Price       *float64 `json:"price"`
	ShowTime    *string  `json:"showTime"`
	Description *string  `json:"description"`
}

func (p SlotPatch) apply(s model.MovieSlot) model.MovieSlot {
	if p.Title != nil {
		s.Title = strings.TrimSpace(*p.Title)
	}
	if p.Image != nil {
		s.Image = strings.TrimSpace(*p.Image)
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.ShowTime != nil {
		s.ShowTime = strings.TrimSpace(*p.ShowTime)
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	return s
}

// SlotDirectory manages the four daily movie slots.  onChange runs after
// every successful write; the HTTP layer uses it to purge cached listings.
type SlotDirectory struct {
	store    repository.SlotStore
	onChange func(context.Context)
}

func NewSlotDirectory(store repository.SlotStore, onChange func(context.Context)) *SlotDirectory {
	if onChange == nil {
		onChange = func(context.Context) {}
	}
	return &SlotDirectory{store: store, onChange: onChange}
}

// SortByShowTime orders slots by the fixed show-time sequence.  Slots with
// a label outside the sequence come first; ties keep their stored order.
func SortByShowTime(slots []model.MovieSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return model.ShowTimeRank(slots[i].ShowTime) < model.ShowTimeRank(slots[j].ShowTime)
	})
}

// List returns all slots in show-time order.
func (d *SlotDirectory) List(ctx context.Context) ([]model.MovieSlot, error) {
	slots, err := d.store.List(ctx)
	if err != nil {
		return nil, err
	}
	SortByShowTime(slots)
	return slots, nil
}

// EnsureSeeded creates one placeholder slot per show time when the
// directory is empty, then returns the listing.  A non-empty directory is
// left alone.
func (d *SlotDirectory) EnsureSeeded(ctx context.Context) ([]model.MovieSlot, error) {
	slots, err := d.List(ctx)
	if err != nil || len(slots) > 0 {
		return slots, err
	}
	seed := make([]model.MovieSlot, len(model.ShowTimes))
	for i, t := range model.ShowTimes {
		seed[i] = model.PlaceholderSlot(t)
	}
	if err := d.store.CreateMany(ctx, seed); err != nil {
		return nil, err
	}
	log.Info().Int("slots", len(seed)).Msg("seeded empty movie directory")
	d.onChange(ctx)
	return seed, nil
}

func (d *SlotDirectory) Get(ctx context.Context, id string) (*model.MovieSlot, error) {
	return d.store.Get(ctx, id)
}

// Create validates and stores a new slot.
func (d *SlotDirectory) Create(ctx context.Context, in model.MovieSlot) (model.MovieSlot, error) {
	in.ID = ""
	in.Title = strings.TrimSpace(in.Title)
	in.Image = strings.TrimSpace(in.Image)
	in.ShowTime = strings.TrimSpace(in.ShowTime)
	if err := validationError(validator.Validate(in, nil)); err != nil {
		return model.MovieSlot{}, err
	}
	if err := d.store.Create(ctx, &in); err != nil {
		return model.MovieSlot{}, err
	}
	d.onChange(ctx)
	return in, nil
}

// Update merges p into the stored slot, validates the result and replaces
// the record.  Unknown ids yield repository.ErrSlotNotFound.
func (d *SlotDirectory) Update(ctx context.Context, id string, p SlotPatch) (model.MovieSlot, error) {
	cur, err := d.store.Get(ctx, id)
	if err != nil {
		return model.MovieSlot{}, err
	}
	next := p.apply(*cur)
	if err := validationError(validator.Validate(next, nil)); err != nil {
		return model.MovieSlot{}, err
	}
	if err := d.store.Update(ctx, next); err != nil {
		return model.MovieSlot{}, err
	}
	d.onChange(ctx)
	return next, nil
}
