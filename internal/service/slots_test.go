package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
	"github.com/iliyamo/galaxy-cinema-booking/internal/repository"
	"github.com/iliyamo/galaxy-cinema-booking/internal/repository/mocks"
)

func slotAt(id, showTime string) model.MovieSlot {
	return model.MovieSlot{ID: id, Title: "Movie " + id, Image: "🎬", Price: 1500, ShowTime: showTime}
}

func showTimes(slots []model.MovieSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.ShowTime
	}
	return out
}

func TestSlotDirectory_ListOrdersByShowTime(t *testing.T) {
	tests := []struct {
		name   string
		stored []string
		want   []string
	}{
		{"shuffled", []string{"19:30", "10:30", "16:30", "13:30"}, []string{"10:30", "13:30", "16:30", "19:30"}},
		{"legacy labels", []string{"07:30 PM", "10:30 AM", "04:30 PM", "01:30 PM"}, []string{"10:30 AM", "01:30 PM", "04:30 PM", "07:30 PM"}},
		{"unknown first", []string{"13:30", "22:00", "10:30"}, []string{"22:00", "10:30", "13:30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockSlotStore)
			stored := make([]model.MovieSlot, len(tt.stored))
			for i, st := range tt.stored {
				stored[i] = slotAt(string(rune('a'+i)), st)
			}
			store.On("List", mock.Anything).Return(stored, nil)

			got, err := NewSlotDirectory(store, nil).List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, showTimes(got))
			store.AssertExpectations(t)
		})
	}
}

func TestSlotDirectory_ListIsStable(t *testing.T) {
	slots := []model.MovieSlot{slotAt("x", "13:30"), slotAt("y", "10:30"), slotAt("z", "13:30")}
	SortByShowTime(slots)
	assert.Equal(t, []string{"y", "x", "z"}, []string{slots[0].ID, slots[1].ID, slots[2].ID})
}

func TestSlotDirectory_EnsureSeeded(t *testing.T) {
	store := new(mocks.MockSlotStore)
	store.On("List", mock.Anything).Return([]model.MovieSlot{}, nil).Once()
	store.On("CreateMany", mock.Anything, mock.MatchedBy(func(s []model.MovieSlot) bool {
		return len(s) == 4
	})).Return(nil).Once()

	changed := 0
	d := NewSlotDirectory(store, func(context.Context) { changed++ })
	got, err := d.EnsureSeeded(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, model.ShowTimes, showTimes(got))
	for _, s := range got {
		assert.Equal(t, model.PlaceholderTitle, s.Title)
		assert.Equal(t, float64(model.PlaceholderPrice), s.Price)
		assert.Equal(t, model.PlaceholderImage, s.Image)
	}
	assert.Equal(t, 1, changed)
	store.AssertExpectations(t)
}

func TestSlotDirectory_EnsureSeededLeavesExistingSlots(t *testing.T) {
	store := new(mocks.MockSlotStore)
	store.On("List", mock.Anything).Return([]model.MovieSlot{slotAt("a", "10:30")}, nil)

	got, err := NewSlotDirectory(store, nil).EnsureSeeded(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	store.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestSlotDirectory_Update(t *testing.T) {
	title := "  Dune  "
	price := 1800.0
	badPrice := 0.0

	t.Run("merges supplied fields", func(t *testing.T) {
		store := new(mocks.MockSlotStore)
		cur := slotAt("s1", "10:30")
		store.On("Get", mock.Anything, "s1").Return(&cur, nil)
		store.On("Update", mock.Anything, mock.MatchedBy(func(s model.MovieSlot) bool {
			return s.ID == "s1" && s.Title == "Dune" && s.Price == 1800 && s.ShowTime == "10:30" && s.Image == "🎬"
		})).Return(nil)

		got, err := NewSlotDirectory(store, nil).Update(context.Background(), "s1", SlotPatch{Title: &title, Price: &price})
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Title)
		store.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		store := new(mocks.MockSlotStore)
		store.On("Get", mock.Anything, "nope").Return(nil, repository.ErrSlotNotFound)

		_, err := NewSlotDirectory(store, nil).Update(context.Background(), "nope", SlotPatch{Title: &title})
		assert.ErrorIs(t, err, repository.ErrSlotNotFound)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		store := new(mocks.MockSlotStore)
		cur := slotAt("s1", "10:30")
		store.On("Get", mock.Anything, "s1").Return(&cur, nil)

		_, err := NewSlotDirectory(store, nil).Update(context.Background(), "s1", SlotPatch{Price: &badPrice})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "price")
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestSlotDirectory_Create(t *testing.T) {
	store := new(mocks.MockSlotStore)
	store.On("Create", mock.Anything, mock.AnythingOfType("*model.MovieSlot")).
		Run(func(args mock.Arguments) { args.Get(1).(*model.MovieSlot).ID = "new-id" }).
		Return(nil)

	got, err := NewSlotDirectory(store, nil).Create(context.Background(), model.MovieSlot{
		ID: "client-chosen", Title: "Oppenheimer", Image: "💣", Price: 2000, ShowTime: "16:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", got.ID)

	_, err = NewSlotDirectory(store, nil).Create(context.Background(), model.MovieSlot{Title: " "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "showTime")
}
