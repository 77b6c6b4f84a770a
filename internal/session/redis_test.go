package session

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/galaxy-cinema-booking/internal/wizard"
)

// testRedis connects to REDIS_TEST_ADDR (database 15) or skips.
func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		t.Skipf("redis at %s unreachable: %v", addr, err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisStoreRoundTrip(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()
	st := NewRedisStore(rdb, time.Minute)

	s := New()
	s.State.Customer.Name = "Kamal"
	s.State.Card = wizard.Card{Number: "4111 1111 1111 1111"}
	require.NoError(t, st.Save(ctx, s))

	ttl, err := rdb.TTL(ctx, st.key(s.ID)).Result()
	require.NoError(t, err)
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 5)

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kamal", got.State.Customer.Name)
	assert.Empty(t, got.State.Card.Number)

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, s.ID), ErrNotFound)
}

func TestRedisStoreLockIsExclusive(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()
	st := NewRedisStore(rdb, 0)
	id := New().ID

	var (
		wg      sync.WaitGroup
		won     int32
		locked  int32
		unlocks = make(chan func(), 8)
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := st.Lock(ctx, id)
			if errors.Is(err, ErrLocked) {
				atomic.AddInt32(&locked, 1)
				return
			}
			if assert.NoError(t, err) {
				atomic.AddInt32(&won, 1)
				unlocks <- unlock
			}
		}()
	}
	wg.Wait()
	close(unlocks)
	assert.Equal(t, int32(1), won)
	assert.Equal(t, int32(7), locked)

	for unlock := range unlocks {
		unlock()
	}
	unlock, err := st.Lock(ctx, id)
	require.NoError(t, err)
	unlock()
}

func TestRedisStoreStaleUnlockKeepsNewOwner(t *testing.T) {
	rdb := testRedis(t)
	ctx := context.Background()
	st := NewRedisStore(rdb, 0)
	id := New().ID

	stale, err := st.Lock(ctx, id)
	require.NoError(t, err)
	// the first lock expires and someone else takes it
	require.NoError(t, rdb.Del(ctx, st.lockKey(id)).Err())
	current, err := st.Lock(ctx, id)
	require.NoError(t, err)

	stale()
	_, err = st.Lock(ctx, id)
	assert.ErrorIs(t, err, ErrLocked)

	current()
	unlock, err := st.Lock(ctx, id)
	require.NoError(t, err)
	unlock()
}
