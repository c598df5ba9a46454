package uploader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	"github.com/bharathvaddineniK/vicin-sub000/internal/logger"
	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
	"github.com/bharathvaddineniK/vicin-sub000/internal/validator"
)

const (
	// files under this are read in one call
	chunkThreshold = 1 * 1024 * 1024
	chunkSize      = 64 * 1024
)

type mediaUploader struct {
	strg       port.Storage
	cache      port.URLCache
	cleaner    port.Cleaner
	policy     config.Policy
	tmpDir     string
	publicURLs bool
	signedTTL  time.Duration
	opener     ContentOpener
}

// compile-time check: *mediaUploader must satisfy port.Uploader
var _ port.Uploader = (*mediaUploader)(nil)

type Option func(*mediaUploader)

// WithContentOpener installs a resolver for opaque content handles.
func WithContentOpener(o ContentOpener) Option {
	return func(u *mediaUploader) { u.opener = o }
}

func NewUploader(strg port.Storage, cache port.URLCache, cleaner port.Cleaner, cfg *config.Settings, opts ...Option) port.Uploader {
	u := &mediaUploader{
		strg:       strg,
		cache:      cache,
		cleaner:    cleaner,
		policy:     cfg.Policy,
		tmpDir:     cfg.TempDir,
		publicURLs: cfg.MediaPublicURLs,
		signedTTL:  cfg.SignedURLTTL,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Upload transfers the file at localPath to object storage and returns a
// fetchable URL plus the kind inferred from the content type. Progress is
// reported at coarse milestones: 10 after validation, 60 after read, 80 after
// the storage ack, 100 after URL issuance. Any temp copy made while
// normalising the path is deleted exactly once, whatever the outcome.
func (u *mediaUploader) Upload(ctx context.Context, ownerID, localPath string, salt int64, onProgress func(pct int)) (port.UploadResult, error) {
	report := func(pct int) {
		if onProgress != nil {
			onProgress(pct)
		}
	}

	if ownerID == "" {
		return port.UploadResult{}, pipeline.ErrNotAuthenticated
	}

	path, isTemp, err := u.normalize(localPath)
	if err != nil {
		return port.UploadResult{}, err
	}
	if isTemp {
		u.cleaner.Track(path)
		defer u.cleaner.Cleanup(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return port.UploadResult{}, fmt.Errorf("%w: %q", pipeline.ErrNotFound, path)
	}
	size := info.Size()

	mimeType := validator.ResolveMimeType(path)
	kind := kindFromMimeType(mimeType)

	// defense in depth: the validator already checked this before compression
	maxBytes := u.policy.ImageOriginalMaxBytes
	if kind == model.MediaKindVideo {
		maxBytes = u.policy.VideoOriginalMaxBytes
	}
	if size > maxBytes {
		return port.UploadResult{}, fmt.Errorf("%w: %d bytes (max %dMB)",
			pipeline.ErrTooLarge, size, maxBytes/(1024*1024))
	}
	report(10)

	content, err := readAll(path, size, func() bool { return ctx.Err() != nil })
	if err != nil {
		return port.UploadResult{}, fmt.Errorf("uploader: failed to read %q: %w", path, err)
	}
	report(60)

	fileKey := buildObjectKey(ownerID, salt, filepath.Ext(path))
	if err := u.strg.SaveFile(ctx, fileKey, bytes.NewReader(content), int64(len(content)), mimeType); err != nil {
		return port.UploadResult{}, err
	}
	report(80)

	url, err := u.resolveURL(ctx, fileKey)
	if err != nil {
		// keep storage addressable state consistent: a URL we cannot issue
		// means the object should not linger
		if rmErr := u.strg.RemoveFile(ctx, fileKey); rmErr != nil {
			logger.Warnf(ctx, "failed to remove orphaned object %q: %v", fileKey, rmErr)
		}
		return port.UploadResult{}, err
	}
	report(100)

	return port.UploadResult{URL: url, Kind: kind}, nil
}

func (u *mediaUploader) resolveURL(ctx context.Context, fileKey string) (string, error) {
	if u.publicURLs {
		return u.strg.PublicURL(fileKey), nil
	}

	if cached, err := u.cache.GetDownloadURL(ctx, fileKey); err == nil && cached != "" {
		return cached, nil
	}

	url, err := u.strg.GeneratePresignedDownloadURL(ctx, fileKey, u.signedTTL)
	if err != nil {
		return "", err
	}
	u.cache.SetDownloadURL(ctx, fileKey, url, time.Now().Add(u.signedTTL))
	return url, nil
}

// buildObjectKey produces a collision-resistant remote path from the owner,
// a timestamp salt and a random suffix.
func buildObjectKey(ownerID string, salt int64, ext string) string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s/%d-%s%s", ownerID, salt, suffix, strings.ToLower(ext))
}

func kindFromMimeType(mimeType string) model.MediaKind {
	if strings.HasPrefix(mimeType, "video/") {
		return model.MediaKindVideo
	}
	return model.MediaKindImage
}
