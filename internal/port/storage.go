package port

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a stored object.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage defines the object-store operations the pipeline calls: upload by
// key and bytes with upsert semantics, then request a URL by key.
type Storage interface {
	InitBucket(bucket string) error
	SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) error
	StatFile(ctx context.Context, fileKey string) (FileInfo, error)
	RemoveFile(ctx context.Context, fileKey string) error
	GeneratePresignedDownloadURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error)
	PublicURL(fileKey string) string
}
