package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/galaxy-cinema-booking/internal/wizard"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(time.Minute)

	s := New()
	s.State.Customer.Name = "Kamal"
	s.State.Card = wizard.Card{Number: "4111 1111 1111 1111"}
	require.NoError(t, st.Save(ctx, s))

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kamal", got.State.Customer.Name)
	assert.Empty(t, got.State.Card.Number, "card drafts are never stored")

	got.State.Customer.Name = "changed"
	again, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kamal", again.State.Customer.Name)

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, s.ID), ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(time.Minute)
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	s := New()
	require.NoError(t, st.Save(ctx, s))

	now = now.Add(59 * time.Second)
	_, err := st.Get(ctx, s.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreLock(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(0)

	unlock, err := st.Lock(ctx, "s1")
	require.NoError(t, err)

	_, err = st.Lock(ctx, "s1")
	assert.ErrorIs(t, err, ErrLocked)

	other, err := st.Lock(ctx, "s2")
	require.NoError(t, err)
	other()

	unlock()
	unlock()
	again, err := st.Lock(ctx, "s1")
	require.NoError(t, err)
	again()
}
