package mock

import (
	"context"
	"sync"

	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
)

// Validator implements port.Validator for tests.
type Validator struct {
	Out port.ValidationResult
	Err error

	Called    bool
	SeenPath  string
	SeenKind  model.MediaKind
	CallCount int
}

var _ port.Validator = (*Validator)(nil)

func (m *Validator) Validate(ctx context.Context, localPath string, kind model.MediaKind) (port.ValidationResult, error) {
	m.Called = true
	m.CallCount++
	m.SeenPath = localPath
	m.SeenKind = kind
	if m.Err != nil {
		return port.ValidationResult{}, m.Err
	}
	return m.Out, nil
}

// Compressor implements port.Compressor for tests. Stages lets a test drive
// progress callbacks before the result is returned.
type Compressor struct {
	Out    port.CompressionResult
	Err    error
	Stages []struct {
		Stage string
		Pct   int
	}
	// Hook runs mid-compress, after progress but before returning, so tests
	// can remove the item mid-flight.
	Hook func()

	Called   bool
	SeenPath string
	SeenKind model.MediaKind
}

var _ port.Compressor = (*Compressor)(nil)

func (m *Compressor) Compress(ctx context.Context, localPath string, kind model.MediaKind, onProgress port.ProgressFunc) (port.CompressionResult, error) {
	m.Called = true
	m.SeenPath = localPath
	m.SeenKind = kind
	for _, s := range m.Stages {
		if onProgress != nil {
			onProgress(s.Stage, s.Pct)
		}
	}
	if m.Hook != nil {
		m.Hook()
	}
	if m.Err != nil {
		return port.CompressionResult{}, m.Err
	}
	return m.Out, nil
}

// Uploader implements port.Uploader for tests.
type Uploader struct {
	Out port.UploadResult
	Err error
	// ErrOnce fails only the first call; later calls succeed with Out.
	ErrOnce error
	Hook    func()

	mu        sync.Mutex
	CallCount int
	SeenOwner string
	SeenPath  string
	SeenSalt  int64
	Progress  []int
}

var _ port.Uploader = (*Uploader)(nil)

func (m *Uploader) Upload(ctx context.Context, ownerID, localPath string, salt int64, onProgress func(pct int)) (port.UploadResult, error) {
	m.mu.Lock()
	m.CallCount++
	call := m.CallCount
	m.SeenOwner = ownerID
	m.SeenPath = localPath
	m.SeenSalt = salt
	m.mu.Unlock()

	for _, pct := range []int{10, 60, 80} {
		if onProgress != nil {
			onProgress(pct)
			m.mu.Lock()
			m.Progress = append(m.Progress, pct)
			m.mu.Unlock()
		}
	}
	if m.Hook != nil {
		m.Hook()
	}
	if m.Err != nil {
		return port.UploadResult{}, m.Err
	}
	if m.ErrOnce != nil && call == 1 {
		return port.UploadResult{}, m.ErrOnce
	}
	if onProgress != nil {
		onProgress(100)
	}
	return m.Out, nil
}

// Cleaner implements port.Cleaner for tests, recording every call.
type Cleaner struct {
	mu      sync.Mutex
	Tracked []string
	Cleaned []string
	Swept   bool
}

var _ port.Cleaner = (*Cleaner)(nil)

func (m *Cleaner) Track(localPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tracked = append(m.Tracked, localPath)
}

func (m *Cleaner) Cleanup(localPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cleaned = append(m.Cleaned, localPath)
}

func (m *Cleaner) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Swept = true
}

// CleanedPaths returns a copy of the cleanup calls seen so far.
func (m *Cleaner) CleanedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Cleaned))
	copy(out, m.Cleaned)
	return out
}

// Transcoder implements port.VideoTranscoder for tests.
type Transcoder struct {
	OutPath string
	Err     error

	Called   bool
	SeenPath string
	SeenMax  int64
}

var _ port.VideoTranscoder = (*Transcoder)(nil)

func (m *Transcoder) Transcode(ctx context.Context, localPath string, maxBytes int64, onProgress func(pct int)) (string, error) {
	m.Called = true
	m.SeenPath = localPath
	m.SeenMax = maxBytes
	if onProgress != nil {
		onProgress(50)
		onProgress(100)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.OutPath, nil
}
