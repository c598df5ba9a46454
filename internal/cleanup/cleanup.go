package cleanup

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
)

// Manager deletes transient local files, best-effort: failures are logged and
// never surfaced. It only ever touches paths under its designated temp
// directory, and keeps a registry of pending paths so teardown can sweep
// anything an individual cleanup missed.
type Manager struct {
	mu      sync.Mutex
	tmpDir  string
	pending map[string]struct{}
}

// compile-time check: *Manager must satisfy port.Cleaner
var _ port.Cleaner = (*Manager)(nil)

func NewManager(tmpDir string) *Manager {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	abs, err := filepath.Abs(tmpDir)
	if err == nil {
		tmpDir = abs
	}
	return &Manager{
		tmpDir:  tmpDir,
		pending: make(map[string]struct{}),
	}
}

// Track registers a path for the teardown sweep.
func (m *Manager) Track(localPath string) {
	if localPath == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[localPath] = struct{}{}
}

// Cleanup deletes one path and unregisters it. Paths outside the temp
// directory are unregistered but never deleted.
func (m *Manager) Cleanup(localPath string) {
	if localPath == "" {
		return
	}
	m.mu.Lock()
	delete(m.pending, localPath)
	m.mu.Unlock()

	m.remove(localPath)
}

// Sweep deletes every still-pending path. Used on session reset/teardown.
func (m *Manager) Sweep() {
	m.mu.Lock()
	paths := make([]string, 0, len(m.pending))
	for p := range m.pending {
		paths = append(paths, p)
	}
	m.pending = make(map[string]struct{})
	m.mu.Unlock()

	for _, p := range paths {
		m.remove(p)
	}
}

func (m *Manager) remove(localPath string) {
	if !m.inTempDir(localPath) {
		log.Printf("refusing to delete %q: outside temp dir %q", localPath, m.tmpDir)
		return
	}
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove temp file %q: %v", localPath, err)
	}
}

func (m *Manager) inTempDir(localPath string) bool {
	abs, err := filepath.Abs(localPath)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(m.tmpDir, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
