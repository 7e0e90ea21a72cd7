package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, 0)

	s := New("conv-9")
	s.DriverID = "driver_123"
	s.CurrentIntent = "GetSwapHistory"
	s.Slots["date_range"] = "yesterday"
	s.Status = StatusEscalated
	s.History = []string{"hello", "swap history kal ka"}
	s.RetryCount = 2

	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, "conv-9")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.CurrentIntent, got.CurrentIntent)
	assert.Equal(t, s.Slots, got.Slots)
	assert.Equal(t, s.Status, got.Status)
	assert.Equal(t, s.History, got.History)
	assert.Equal(t, s.RetryCount, got.RetryCount)
}

func TestRedisStore_GetUnknown(t *testing.T) {
	store, _ := newRedisStore(t, 0)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, 0)

	require.NoError(t, store.Put(ctx, New("conv-1")))
	require.NoError(t, store.Delete(ctx, "conv-1"))

	_, err := store.Get(ctx, "conv-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Hour)

	require.NoError(t, store.Put(ctx, New("conv-ttl")))

	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "conv-ttl")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_EmptySlotsDecodeNonNil(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, 0)

	s := New("conv-2")
	s.Slots = nil
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, "conv-2")
	require.NoError(t, err)
	require.NotNil(t, got.Slots)
	got.Slots["location"] = "Noida" // must not panic
}
