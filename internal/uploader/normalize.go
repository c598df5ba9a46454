package uploader

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
)

// ContentOpener resolves an opaque content handle (a non-file URI scheme)
// into a readable stream. Platform pickers hand those out instead of paths.
type ContentOpener func(uri string) (io.ReadCloser, error)

// normalize turns a platform file reference into a directly-readable path.
// Plain paths and file:// URIs are used in place; opaque content handles are
// materialised into a temp copy. The second return value reports whether a
// temp copy was made, so the caller can clean it up regardless of outcome.
func (u *mediaUploader) normalize(localPath string) (string, bool, error) {
	if strings.HasPrefix(localPath, "file://") {
		p := strings.TrimPrefix(localPath, "file://")
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
		return p, false, nil
	}

	i := strings.Index(localPath, "://")
	if i < 0 {
		return localPath, false, nil
	}

	// opaque content handle: materialise a readable copy
	if u.opener == nil {
		return "", false, fmt.Errorf("%w: cannot resolve content handle %q", pipeline.ErrNotFound, localPath)
	}
	src, err := u.opener(localPath)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", pipeline.ErrNotFound, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.CreateTemp(u.tmpDir, "upload_norm_*")
	if err != nil {
		return "", false, fmt.Errorf("uploader: could not create temp copy: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", false, fmt.Errorf("uploader: failed to copy content handle: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", false, fmt.Errorf("uploader: failed to close temp copy: %w", err)
	}
	return dst.Name(), true, nil
}

// readAll materialises the file content for transfer. Small files are read in
// one call; larger ones in fixed-size chunks, checking for cancellation
// between chunks so a removed item stops consuming the file.
func readAll(path string, size int64, isCancelled func() bool) ([]byte, error) {
	if size < chunkThreshold {
		return os.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	content := make([]byte, 0, size)
	buf := make([]byte, chunkSize)
	for {
		if isCancelled() {
			return nil, fmt.Errorf("uploader: read cancelled")
		}
		n, err := f.Read(buf)
		if n > 0 {
			content = append(content, buf[:n]...)
		}
		if err == io.EOF {
			return content, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
