package cache

import (
	"context"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.URLCache
var _ port.URLCache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetDownloadURL(ctx context.Context, fileKey string) (string, error) {
	return "", nil // always cache miss
}

func (n *NoopCache) SetDownloadURL(ctx context.Context, fileKey, url string, validUntil time.Time) {
}

func (n *NoopCache) DeleteDownloadURL(ctx context.Context, fileKey string) error { return nil }
