package port

import (
	"context"

	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
)

// Compression stages reported through ProgressFunc.
const (
	StageValidating  = "validating"
	StageCompressing = "compressing"
	StageFinalizing  = "finalizing"
)

// ProgressFunc receives monotonically increasing progress per named stage.
// Consumers must tolerate repeated calls with the same stage.
type ProgressFunc func(stage string, progress int)

// CompressionResult describes the derived output of a compression pass.
type CompressionResult struct {
	URI          string
	SizeBytes    int64
	OriginalSize int64
	Ratio        float64
	MimeType     string
	Width        int
	Height       int
}

// Compressor shrinks a local media file to policy, writing a new temporary
// file and never mutating the input.
type Compressor interface {
	Compress(ctx context.Context, localPath string, kind model.MediaKind, onProgress ProgressFunc) (CompressionResult, error)
}

// VideoTranscoder is the opaque transform invoked when a video exceeds the
// compressed-size ceiling. Implementations must produce an output file at or
// under maxBytes or fail.
type VideoTranscoder interface {
	Transcode(ctx context.Context, localPath string, maxBytes int64, onProgress func(progress int)) (string, error)
}
