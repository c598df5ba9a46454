package port

import (
	"context"
	"time"
)

// URLCache caches issued signed download URLs for their validity window so
// repeated snapshots of a finished item do not re-presign.
type URLCache interface {
	GetDownloadURL(ctx context.Context, fileKey string) (string, error)
	SetDownloadURL(ctx context.Context, fileKey, url string, validUntil time.Time)
	DeleteDownloadURL(ctx context.Context, fileKey string) error
}
