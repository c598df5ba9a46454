package validator

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
)

// AllowedMimeTypes maps each media kind to its policy allow-list.
var AllowedMimeTypes = map[model.MediaKind]map[string]bool{
	model.MediaKindImage: {
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	model.MediaKindVideo: {
		"video/mp4":       true,
		"video/quicktime": true,
		"video/webm":      true,
	},
}

// extension fallbacks for platforms whose mime databases are incomplete
var extensionMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

type mediaValidator struct {
	policy config.Policy
}

// compile-time check: *mediaValidator must satisfy port.Validator
var _ port.Validator = (*mediaValidator)(nil)

func NewValidator(policy config.Policy) port.Validator {
	return &mediaValidator{policy: policy}
}

// Validate checks, in order: file existence, mime type derived from the
// extension against the kind's allow-list, then the kind's original-size
// ceiling. On success it returns the measured size and resolved mime type.
func (v *mediaValidator) Validate(ctx context.Context, localPath string, kind model.MediaKind) (port.ValidationResult, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return port.ValidationResult{}, fmt.Errorf("%w: %q", pipeline.ErrNotFound, localPath)
	}

	mimeType := ResolveMimeType(localPath)
	if !AllowedMimeTypes[kind][mimeType] {
		return port.ValidationResult{}, fmt.Errorf("%w: %q is not one of %s",
			pipeline.ErrUnsupportedFormat, mimeType, supportedList(kind))
	}

	maxBytes := v.maxOriginalBytes(kind)
	if info.Size() > maxBytes {
		return port.ValidationResult{}, fmt.Errorf("%w: %d bytes (max %dMB)",
			pipeline.ErrTooLarge, info.Size(), maxBytes/(1024*1024))
	}

	return port.ValidationResult{SizeBytes: info.Size(), MimeType: mimeType}, nil
}

func (v *mediaValidator) maxOriginalBytes(kind model.MediaKind) int64 {
	if kind == model.MediaKindVideo {
		return v.policy.VideoOriginalMaxBytes
	}
	return v.policy.ImageOriginalMaxBytes
}

// ResolveMimeType derives the mime type from the file extension, falling back
// to a built-in table when the platform mime database has no entry.
func ResolveMimeType(localPath string) string {
	ext := strings.ToLower(filepath.Ext(localPath))
	if mt := mime.TypeByExtension(ext); mt != "" {
		// strip any parameters like "; charset=utf-8"
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			mt = strings.TrimSpace(mt[:i])
		}
		return mt
	}
	return extensionMimeTypes[ext]
}

func supportedList(kind model.MediaKind) string {
	types := make([]string, 0, len(AllowedMimeTypes[kind]))
	for mt := range AllowedMimeTypes[kind] {
		types = append(types, mt)
	}
	sort.Strings(types)
	return strings.Join(types, ", ")
}
