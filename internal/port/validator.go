package port

import (
	"context"

	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
)

// ValidationResult carries the measured size and resolved mime type of a
// local file that passed policy checks.
type ValidationResult struct {
	SizeBytes int64
	MimeType  string
}

// Validator inspects a local file for existence, format and size before any
// expensive work. Pure inspection, no side effects.
type Validator interface {
	Validate(ctx context.Context, localPath string, kind model.MediaKind) (ValidationResult, error)
}
