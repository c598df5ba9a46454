package cleanup

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("could not write file: %v", err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestCleanup_RemovesTrackedFile(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	path := filepath.Join(dir, "a.tmp")
	writeFile(t, path)

	m.Track(path)
	m.Cleanup(path)

	if exists(path) {
		t.Error("expected the file removed")
	}
}

func TestCleanup_IsIdempotent(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	path := filepath.Join(dir, "a.tmp")
	writeFile(t, path)

	m.Track(path)
	m.Cleanup(path)
	// second call is a no-op, not an error
	m.Cleanup(path)

	if exists(path) {
		t.Error("expected the file removed")
	}
}

func TestCleanup_RefusesPathsOutsideTempDir(t *testing.T) {
	tmp := t.TempDir()
	other := t.TempDir()
	m := NewManager(tmp)
	path := filepath.Join(other, "precious.txt")
	writeFile(t, path)

	m.Track(path)
	m.Cleanup(path)

	if !exists(path) {
		t.Error("expected a file outside the temp dir to survive")
	}
}

func TestCleanup_RefusesParentTraversal(t *testing.T) {
	tmp := t.TempDir()
	m := NewManager(filepath.Join(tmp, "inner"))
	path := filepath.Join(tmp, "sibling.txt")
	writeFile(t, path)

	m.Cleanup(filepath.Join(tmp, "inner", "..", "sibling.txt"))

	if !exists(path) {
		t.Error("expected traversal outside the temp dir to be refused")
	}
}

func TestSweep_RemovesEveryPendingFile(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	a := filepath.Join(dir, "a.tmp")
	b := filepath.Join(dir, "b.tmp")
	c := filepath.Join(dir, "c.tmp")
	writeFile(t, a)
	writeFile(t, b)
	writeFile(t, c)

	m.Track(a)
	m.Track(b)
	m.Track(c)
	// b was already cleaned individually; the sweep must not see it again
	m.Cleanup(b)
	writeFile(t, b)

	m.Sweep()

	if exists(a) || exists(c) {
		t.Error("expected tracked files swept")
	}
	if !exists(b) {
		t.Error("expected an already-cleaned path to be left alone by the sweep")
	}
}

func TestSweep_EmptyRegistryIsFine(t *testing.T) {
	m := NewManager(t.TempDir())
	m.Sweep()
}

func TestTrack_IgnoresEmptyPath(t *testing.T) {
	m := NewManager(t.TempDir())
	m.Track("")
	m.Cleanup("")
	m.Sweep()
}
