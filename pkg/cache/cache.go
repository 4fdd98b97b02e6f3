package cache

import (
	"context"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// ProviderSet is the Wire provider set for the cache package.
var ProviderSet = wire.NewSet(NewRedisCache)

// ICache is the cache abstraction. The Redis client command shapes are kept
// so that both the remote (Redis) and local (fastcache) implementations are
// interchangeable at call sites.
type ICache interface {
	// Get returns the cached value for key.
	Get(ctx context.Context, key string) *redis.StringCmd
	// Set stores value under key with an expiration.
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	// Del removes the given keys.
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	// Expire resets the expiration of key.
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}
