package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFastCache(t *testing.T) *FastCache {
	t.Helper()
	fc := NewFastCache(FastCacheConfig{SweepInterval: 10 * time.Millisecond})
	t.Cleanup(fc.Close)
	return fc
}

func TestFastCacheSetGet(t *testing.T) {
	fc := newTestFastCache(t)
	ctx := context.Background()

	require.NoError(t, fc.Set(ctx, "k", "v", 0).Err())

	val, err := fc.Get(ctx, "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestFastCacheMissIsRedisNil(t *testing.T) {
	fc := newTestFastCache(t)

	_, err := fc.Get(context.Background(), "absent").Result()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestFastCacheExpiry(t *testing.T) {
	fc := newTestFastCache(t)
	ctx := context.Background()

	require.NoError(t, fc.Set(ctx, "short", "v", 20*time.Millisecond).Err())

	val, err := fc.Get(ctx, "short").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	time.Sleep(40 * time.Millisecond)
	_, err = fc.Get(ctx, "short").Result()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestFastCacheDel(t *testing.T) {
	fc := newTestFastCache(t)
	ctx := context.Background()

	require.NoError(t, fc.Set(ctx, "a", "1", 0).Err())
	require.NoError(t, fc.Set(ctx, "b", "2", 0).Err())

	n, err := fc.Del(ctx, "a", "b", "missing").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = fc.Get(ctx, "a").Result()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestFastCacheExpire(t *testing.T) {
	fc := newTestFastCache(t)
	ctx := context.Background()

	require.NoError(t, fc.Set(ctx, "k", "v", 0).Err())

	ok, err := fc.Expire(ctx, "k", 20*time.Millisecond).Result()
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fc.Expire(ctx, "missing", time.Second).Result()
	require.NoError(t, err)
	assert.False(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, err = fc.Get(ctx, "k").Result()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestFastCacheMarshalsStructValues(t *testing.T) {
	fc := newTestFastCache(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}
	require.NoError(t, fc.Set(ctx, "j", payload{Name: "x"}, 0).Err())

	val, err := fc.Get(ctx, "j").Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x"}`, val)
}
