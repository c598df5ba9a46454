package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("could not write file: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("could not set mtime: %v", err)
	}
	return path
}

func TestSweepStaleFiles_RemovesOldStagingFiles(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-3 * time.Hour)

	stale1 := touch(t, dir, "ingest_abc.jpg", old)
	stale2 := touch(t, dir, "img_out_def.png", old)
	stale3 := touch(t, dir, "upload_norm_ghi", old)
	fresh := touch(t, dir, "ingest_new.jpg", time.Now())
	unrelated := touch(t, dir, "keep.txt", old)

	if err := SweepStaleFilesHandler(context.Background(), dir, 2*time.Hour); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, p := range []string{stale1, stale2, stale3} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("expected %q removed", p)
		}
	}
	for _, p := range []string{fresh, unrelated} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %q kept: %v", p, err)
		}
	}
}

func TestSweepStaleFiles_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "ingest_subdir")
	if err := os.Mkdir(sub, 0o700); err != nil {
		t.Fatalf("could not create subdir: %v", err)
	}
	old := time.Now().Add(-3 * time.Hour)
	if err := os.Chtimes(sub, old, old); err != nil {
		t.Fatalf("could not set mtime: %v", err)
	}

	if err := SweepStaleFilesHandler(context.Background(), dir, 2*time.Hour); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(sub); err != nil {
		t.Errorf("expected the directory kept: %v", err)
	}
}

func TestSweepStaleFiles_MissingDir(t *testing.T) {
	err := SweepStaleFilesHandler(context.Background(), "/nowhere/does/not/exist", time.Hour)
	if err == nil {
		t.Fatal("expected an error for a missing temp dir")
	}
}
