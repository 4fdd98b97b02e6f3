package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func TestCachedQueryMissThenHit(t *testing.T) {
	fc := NewFastCache(FastCacheConfig{})
	defer fc.Close()

	queries := 0
	cq := NewCachedQuery(
		fc,
		func(params ...any) string { return "profile:" + params[0].(string) },
		func(ctx context.Context) (profile, error) {
			queries++
			return profile{Name: "ada", Score: 7}, nil
		},
		WithTTL[profile](time.Minute),
	)

	got, err := cq.Get(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, profile{Name: "ada", Score: 7}, got)
	assert.Equal(t, 1, queries)

	// Second read is served from cache.
	got, err = cq.Get(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Name)
	assert.Equal(t, 1, queries)
}

func TestCachedQueryBackendError(t *testing.T) {
	fc := NewFastCache(FastCacheConfig{})
	defer fc.Close()

	cq := NewCachedQuery(
		fc,
		func(...any) string { return "boom" },
		func(ctx context.Context) (profile, error) {
			return profile{}, errors.New("backend down")
		},
	)

	_, err := cq.Get(context.Background())
	assert.Error(t, err)
}

func TestCachedQueryInvalidate(t *testing.T) {
	fc := NewFastCache(FastCacheConfig{})
	defer fc.Close()

	queries := 0
	cq := NewCachedQuery(
		fc,
		func(...any) string { return "counter" },
		func(ctx context.Context) (int, error) {
			queries++
			return queries, nil
		},
	)

	first, err := cq.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	require.NoError(t, cq.Invalidate(context.Background()))

	second, err := cq.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second, "invalidation must force a backend requery")
}

func TestCachedQueryNilCacheAlwaysQueries(t *testing.T) {
	queries := 0
	cq := NewCachedQuery[int](
		nil,
		func(...any) string { return "k" },
		func(ctx context.Context) (int, error) {
			queries++
			return queries, nil
		},
	)

	_, _ = cq.Get(context.Background())
	_, _ = cq.Get(context.Background())
	assert.Equal(t, 2, queries)
}
