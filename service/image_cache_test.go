package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskCache(t *testing.T) {
	ctx := context.Background()
	cache, err := NewDiskCache(t.TempDir() + "/images")
	require.NoError(t, err)

	_, ok, err := cache.Get(ctx, "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "https://cdn.example.com/a.png", []byte("jpeg")))
	data, ok, err := cache.Get(ctx, "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("jpeg"), data)

	path := cache.GetCachePath("https://cdn.example.com/a.png")
	assert.Regexp(t, `[0-9a-f]{64}\.jpg$`, path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.NotEqual(t, path, cache.GetCachePath("https://cdn.example.com/b.png"))
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewRedisCache(client, time.Hour)

	_, ok, err := cache.Get(ctx, "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "https://cdn.example.com/a.png", []byte("jpeg")))
	data, ok, err := cache.Get(ctx, "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("jpeg"), data)

	key := "catalog:image:" + cacheKey("https://cdn.example.com/a.png")
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(2 * time.Hour)
	_, ok, err = cache.Get(ctx, "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: time.Second})
	t.Cleanup(func() { _ = client.Close() })

	_, ok, err := NewRedisCache(client, time.Hour).Get(context.Background(), "https://cdn.example.com/a.png")
	assert.Error(t, err)
	assert.False(t, ok)
}
