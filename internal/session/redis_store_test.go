package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_RoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.Put(ctx, "sid", "tok", time.Minute))
	got, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], redisKeyPrefix))
	assert.NotContains(t, keys[0], "sid")
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))

	mr.FastForward(time.Minute)
	_, err = s.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)

	require.NoError(t, s.Put(ctx, "sid", "tok", time.Minute))
	require.NoError(t, s.Delete(ctx, "sid"))
	_, err := s.Get(ctx, "sid")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Delete(ctx, "unknown"))
}

func TestNewRedisStore_Errors(t *testing.T) {
	_, err := NewRedisStore(context.Background(), RedisConfig{})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisStore(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
}
