package cache

import (
	"context"
	"sync"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/crowdkit/crowdkit/pkg/safe"
)

// FastCacheConfig holds local cache configuration.
type FastCacheConfig struct {
	MaxBytes      int           `mapstructure:"maxBytes"`      // maximum bytes for fastcache, default 16MB
	SweepInterval time.Duration `mapstructure:"sweepInterval"` // expired-key sweep interval, default 30s
}

// FastCache is a local ICache implementation backed by VictoriaMetrics
// fastcache. Expirations are tracked alongside the cache and enforced on
// read; a single background sweep evicts expired keys on a fixed interval
// to bound memory, independent of request flow.
type FastCache struct {
	cache *fastcache.Cache
	ttls  sync.Map // map[string]time.Time
	mu    sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

// NewFastCache creates a FastCache and starts its expiry sweep.
func NewFastCache(conf FastCacheConfig) *FastCache {
	maxBytes := conf.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 16 * 1024 * 1024
	}
	sweep := conf.SweepInterval
	if sweep <= 0 {
		sweep = 30 * time.Second
	}

	fc := &FastCache{
		cache: fastcache.New(maxBytes),
		stop:  make(chan struct{}),
	}
	safe.Go(func() { fc.sweepLoop(sweep) })
	return fc
}

func (fc *FastCache) Get(ctx context.Context, key string) *redis.StringCmd {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	cmd := redis.NewStringCmd(ctx, "get", key)
	if exp, ok := fc.ttls.Load(key); ok {
		if time.Now().After(exp.(time.Time)) {
			cmd.SetErr(redis.Nil)
			return cmd
		}
	}

	value := fc.cache.Get(nil, []byte(key))
	if value == nil {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(value))
	return cmd
}

func (fc *FastCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	cmd := redis.NewStatusCmd(ctx, "set", key)

	var valueBytes []byte
	switch v := value.(type) {
	case string:
		valueBytes = []byte(v)
	case []byte:
		valueBytes = v
	default:
		data, err := sonic.Marshal(v)
		if err != nil {
			cmd.SetErr(err)
			return cmd
		}
		valueBytes = data
	}

	fc.cache.Set([]byte(key), valueBytes)
	if expiration > 0 {
		fc.ttls.Store(key, time.Now().Add(expiration))
	} else {
		fc.ttls.Delete(key)
	}

	cmd.SetVal("OK")
	return cmd
}

func (fc *FastCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	cmd := redis.NewIntCmd(ctx, "del")
	var count int64
	for _, key := range keys {
		if fc.cache.Has([]byte(key)) {
			count++
		}
		fc.cache.Del([]byte(key))
		fc.ttls.Delete(key)
	}
	cmd.SetVal(count)
	return cmd
}

func (fc *FastCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	cmd := redis.NewBoolCmd(ctx, "expire", key)
	if !fc.cache.Has([]byte(key)) {
		cmd.SetVal(false)
		return cmd
	}
	fc.ttls.Store(key, time.Now().Add(expiration))
	cmd.SetVal(true)
	return cmd
}

// Close stops the expiry sweep.
func (fc *FastCache) Close() {
	fc.once.Do(func() { close(fc.stop) })
}

func (fc *FastCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fc.sweep()
		case <-fc.stop:
			return
		}
	}
}

func (fc *FastCache) sweep() {
	now := time.Now()
	fc.ttls.Range(func(k, v any) bool {
		if now.After(v.(time.Time)) {
			fc.mu.Lock()
			fc.cache.Del([]byte(k.(string)))
			fc.ttls.Delete(k)
			fc.mu.Unlock()
		}
		return true
	})
}
