package compressor

import (
	"context"
	"fmt"
	"os"

	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
)

// compressVideo passes a video through unchanged when it is already at or
// under the compressed-size ceiling, and otherwise hands it to the transcoder.
// Progress is staged: validating 0-30, compressing 30-90, finalizing 90-100.
func (c *mediaCompressor) compressVideo(ctx context.Context, localPath string, v port.ValidationResult, report port.ProgressFunc) (port.CompressionResult, error) {
	ceiling := c.policy.VideoCompressedMaxBytes

	if v.SizeBytes <= ceiling {
		report(port.StageCompressing, 90)
		report(port.StageFinalizing, 100)
		return port.CompressionResult{
			URI:          localPath,
			SizeBytes:    v.SizeBytes,
			OriginalSize: v.SizeBytes,
			Ratio:        1,
			MimeType:     v.MimeType,
		}, nil
	}

	report(port.StageCompressing, 30)
	outPath, err := c.transcoder.Transcode(ctx, localPath, ceiling, func(pct int) {
		// map transcoder progress into the 30-90 window
		report(port.StageCompressing, 30+pct*60/100)
	})
	if err != nil {
		return port.CompressionResult{}, err
	}

	report(port.StageFinalizing, 90)
	info, err := os.Stat(outPath)
	if err != nil {
		return port.CompressionResult{}, fmt.Errorf("compressor: failed to stat transcoded video: %w", err)
	}
	if info.Size() > ceiling {
		removeQuiet(outPath)
		return port.CompressionResult{}, fmt.Errorf("%w: %d bytes after transcoding (max %d)",
			pipeline.ErrCompressionInsufficient, info.Size(), ceiling)
	}

	report(port.StageFinalizing, 100)
	return port.CompressionResult{
		URI:          outPath,
		SizeBytes:    info.Size(),
		OriginalSize: v.SizeBytes,
		Ratio:        ratio(v.SizeBytes, info.Size()),
		MimeType:     v.MimeType,
	}, nil
}

// NoopTranscoder is the default VideoTranscoder. There is no native video
// encoder wired in, so any video over the ceiling is rejected; an
// ffmpeg-backed implementation plugs in through the same port.
type NoopTranscoder struct{}

// compile-time check: *NoopTranscoder must satisfy port.VideoTranscoder
var _ port.VideoTranscoder = (*NoopTranscoder)(nil)

func NewNoopTranscoder() *NoopTranscoder { return &NoopTranscoder{} }

func (t *NoopTranscoder) Transcode(ctx context.Context, localPath string, maxBytes int64, onProgress func(pct int)) (string, error) {
	return "", fmt.Errorf("%w: no video transcoder configured", pipeline.ErrCompressionInsufficient)
}
