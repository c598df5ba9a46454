package mock

import (
	"context"
	"io"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
)

// Storage implements the storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	DownloadURL string

	// captured inputs
	SavedKey         string
	SavedSize        int64
	SavedContentType string
	SavedBytes       []byte
	RemovedKey       string
	PresignedKey     string
	TTL              time.Duration

	// errors
	InitBucketErr           error
	SaveErr                 error
	StatErr                 error
	RemoveErr               error
	GenerateDownloadLinkErr error

	// call flags
	InitBucketCalled           bool
	SaveCalled                 bool
	StatCalled                 bool
	RemoveCalled               bool
	GenerateDownloadLinkCalled bool
}

// compile-time check: *Storage must satisfy port.Storage
var _ port.Storage = (*Storage)(nil)

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) error {
	m.SaveCalled = true
	m.SavedKey = fileKey
	m.SavedSize = fileSize
	m.SavedContentType = contentType
	if reader != nil {
		m.SavedBytes, _ = io.ReadAll(reader)
	}
	return m.SaveErr
}

func (m *Storage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) RemoveFile(ctx context.Context, fileKey string) error {
	m.RemoveCalled = true
	m.RemovedKey = fileKey
	return m.RemoveErr
}

func (m *Storage) GeneratePresignedDownloadURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error) {
	m.GenerateDownloadLinkCalled = true
	m.PresignedKey = fileKey
	m.TTL = expiry
	if m.GenerateDownloadLinkErr != nil {
		return "", m.GenerateDownloadLinkErr
	}
	if m.DownloadURL != "" {
		return m.DownloadURL, nil
	}
	return "https://example.com/download", nil
}

func (m *Storage) PublicURL(fileKey string) string {
	return "https://example.com/public/" + fileKey
}
