package validator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
)

func writeTempFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, bytes.Repeat([]byte("a"), size), 0o600); err != nil {
		t.Fatalf("could not write temp file: %v", err)
	}
	return path
}

func TestValidate_FileNotFound(t *testing.T) {
	v := NewValidator(config.DefaultPolicy())

	_, err := v.Validate(context.Background(), "/nowhere/missing.jpg", model.MediaKindImage)
	if !errors.Is(err, pipeline.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidate_RejectsPDF(t *testing.T) {
	v := NewValidator(config.DefaultPolicy())
	path := writeTempFile(t, "document.pdf", 128)

	_, err := v.Validate(context.Background(), path, model.MediaKindImage)
	if !errors.Is(err, pipeline.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "image/jpeg") {
		t.Fatalf("expected the error to list supported formats, got %v", err)
	}
}

func TestValidate_RejectsImageAsVideo(t *testing.T) {
	v := NewValidator(config.DefaultPolicy())
	path := writeTempFile(t, "photo.jpg", 128)

	_, err := v.Validate(context.Background(), path, model.MediaKindVideo)
	if !errors.Is(err, pipeline.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestValidate_SizeExactlyAtCeilingOK(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.ImageOriginalMaxBytes = 256
	v := NewValidator(policy)
	path := writeTempFile(t, "photo.png", 256)

	res, err := v.Validate(context.Background(), path, model.MediaKindImage)
	if err != nil {
		t.Fatalf("expected no error at the exact ceiling, got %v", err)
	}
	if res.SizeBytes != 256 {
		t.Errorf("expected size 256, got %d", res.SizeBytes)
	}
	if res.MimeType != "image/png" {
		t.Errorf("expected mime image/png, got %q", res.MimeType)
	}
}

func TestValidate_SizeOverCeiling(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.ImageOriginalMaxBytes = 256
	v := NewValidator(policy)
	path := writeTempFile(t, "photo.jpg", 257)

	_, err := v.Validate(context.Background(), path, model.MediaKindImage)
	if !errors.Is(err, pipeline.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestValidate_VideoUsesVideoCeiling(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.ImageOriginalMaxBytes = 10
	policy.VideoOriginalMaxBytes = 1024
	v := NewValidator(policy)
	path := writeTempFile(t, "clip.mp4", 512)

	res, err := v.Validate(context.Background(), path, model.MediaKindVideo)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.MimeType != "video/mp4" {
		t.Errorf("expected mime video/mp4, got %q", res.MimeType)
	}
}

func TestResolveMimeType(t *testing.T) {
	cases := map[string]string{
		"a.jpg":  "image/jpeg",
		"a.JPEG": "image/jpeg",
		"a.png":  "image/png",
		"a.webp": "image/webp",
		"a.mp4":  "video/mp4",
		"a.mov":  "video/quicktime",
		"a.webm": "video/webm",
		"a.xyz":  "",
	}
	for path, want := range cases {
		if got := ResolveMimeType(path); got != want {
			t.Errorf("ResolveMimeType(%q) = %q, want %q", path, got, want)
		}
	}
}
