package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
)

// ImageCache stores optimised proxy images by source URL
type ImageCache interface {
	Get(ctx context.Context, sourceURL string) ([]byte, bool, error)
	Set(ctx context.Context, sourceURL string, data []byte) error
}

// cacheKey returns a stable file-safe key for a source URL
func cacheKey(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return hex.EncodeToString(sum[:])
}

// DiskCache keeps optimised images as JPEG files in a directory
type DiskCache struct {
	dir string
}

// NewDiskCache creates the cache directory if needed
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := EnsureCacheDir(dir); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

var _ ImageCache = (*DiskCache)(nil)

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func EnsureCacheDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// GetCachePath returns the cache file path for a source URL
func (c *DiskCache) GetCachePath(sourceURL string) string {
	return filepath.Join(c.dir, cacheKey(sourceURL)+".jpg")
}

func (c *DiskCache) Get(_ context.Context, sourceURL string) ([]byte, bool, error) {
	data, err := os.ReadFile(c.GetCachePath(sourceURL))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, true, nil
}

func (c *DiskCache) Set(_ context.Context, sourceURL string, data []byte) error {
	cachePath := c.GetCachePath(sourceURL)
	// Write to a temp file first so readers never see a partial image
	tmp, err := os.CreateTemp(c.dir, ".img-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), cachePath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// RedisCache keeps optimised images in Redis with a TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache creates a Redis backed image cache
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "catalog:image:"}
}

var _ ImageCache = (*RedisCache)(nil)

func (c *RedisCache) Get(ctx context.Context, sourceURL string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+cacheKey(sourceURL)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, sourceURL string, data []byte) error {
	if err := c.client.Set(ctx, c.prefix+cacheKey(sourceURL), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// NoopCache never stores anything
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NoopCache) Set(context.Context, string, []byte) error { return nil }
