package mock

import (
	"context"
	"sync"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
)

// Cache implements port.URLCache for tests.
type Cache struct {
	mu      sync.Mutex
	Entries map[string]string

	GetErr error

	GetCalled    bool
	SetCalled    bool
	DeleteCalled bool
}

var _ port.URLCache = (*Cache)(nil)

func (m *Cache) GetDownloadURL(ctx context.Context, fileKey string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalled = true
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.Entries[fileKey], nil
}

func (m *Cache) SetDownloadURL(ctx context.Context, fileKey, url string, validUntil time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalled = true
	if m.Entries == nil {
		m.Entries = make(map[string]string)
	}
	m.Entries[fileKey] = url
}

func (m *Cache) DeleteDownloadURL(ctx context.Context, fileKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalled = true
	delete(m.Entries, fileKey)
	return nil
}
