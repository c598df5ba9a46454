package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
	"github.com/redis/go-redis/v9"
)

// Cache stores issued signed download URLs for their remaining validity
// window, keyed by object key.
type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.URLCache
var _ port.URLCache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetDownloadURL(ctx context.Context, fileKey string) (string, error) {
	val, err := c.client.Get(ctx, cacheKey(fileKey)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetDownloadURL(ctx context.Context, fileKey, url string, validUntil time.Time) {
	ttl := time.Until(validUntil)
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, cacheKey(fileKey), url, ttl).Err(); err != nil {
		log.Printf("failed to cache download URL for %q: %v", fileKey, err)
	}
}

func (c *Cache) DeleteDownloadURL(ctx context.Context, fileKey string) error {
	if err := c.client.Del(ctx, cacheKey(fileKey)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func cacheKey(fileKey string) string {
	return "media:url:" + fileKey
}
