package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/logger"
)

// staging file prefixes written by the pipeline
var stalePrefixes = []string{"ingest_", "img_out_", "upload_norm_"}

// SweepStaleFilesHandler is the periodic janitor: it removes pipeline staging
// files in the shared temp dir whose sessions are long gone. This is the
// backstop for temp files that escaped their session's own sweep (e.g. after
// a crash).
func SweepStaleFilesHandler(ctx context.Context, tmpDir string, maxAge time.Duration) error {
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-maxAge)

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !hasStalePrefix(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(tmpDir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warnf(ctx, "failed to remove stale file %q: %v", path, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Infof(ctx, "removed %d stale staging files from %q", removed, tmpDir)
	}
	return nil
}

func hasStalePrefix(name string) bool {
	for _, p := range stalePrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
