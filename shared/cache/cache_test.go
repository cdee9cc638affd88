package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/infras/metrics"
	"voyage/infras/otel/mocks"
	"voyage/shared/cache"
)

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel(), metrics.New()), server
}

type placeSummary struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

func TestSaveGet(t *testing.T) {
	ctx := context.Background()
	c, server := newCache(t)

	require.NoError(t, c.Save(ctx, "place:get:p-1", placeSummary{ID: "p-1", Title: "Bali", Price: 1200}, 60))

	var got placeSummary
	require.NoError(t, c.Get(ctx, "place:get:p-1", &got))
	assert.Equal(t, placeSummary{ID: "p-1", Title: "Bali", Price: 1200}, got)
	assert.Equal(t, time.Minute, server.TTL("place:get:p-1"))

	require.NoError(t, c.Save(ctx, "contact:get", "raw", 60))

	var raw string
	require.NoError(t, c.Get(ctx, "contact:get", &raw))
	assert.Equal(t, "raw", raw)
}

func TestGet_Miss(t *testing.T) {
	c, _ := newCache(t)

	var got placeSummary
	err := c.Get(context.Background(), "place:get:missing", &got)

	assert.True(t, errors.Is(err, cache.Nil))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c, server := newCache(t)

	for i := range 450 {
		require.NoError(t, server.Set(fmt.Sprintf("place:gets:%d", i), "x"))
	}
	require.NoError(t, server.Set("booking:gets:1", "x"))

	require.NoError(t, c.Clear(ctx, "place:*"))

	assert.Equal(t, []string{"booking:gets:1"}, server.Keys())
}

func TestIncrement_FixedWindow(t *testing.T) {
	ctx := context.Background()
	c, server := newCache(t)

	count, err := c.Increment(ctx, "limiter:203.0.113.9:curl", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	server.FastForward(30 * time.Second)

	count, err = c.Increment(ctx, "limiter:203.0.113.9:curl", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	// later hits do not extend the window
	assert.Equal(t, 30*time.Second, server.TTL("limiter:203.0.113.9:curl"))

	server.FastForward(31 * time.Second)

	count, err = c.Increment(ctx, "limiter:203.0.113.9:curl", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c, server := newCache(t)

	require.NoError(t, server.Set("front:get", "x"))
	require.NoError(t, c.Delete(ctx, "front:get"))

	assert.False(t, server.Exists("front:get"))
}
