package compressor

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"

	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
)

const (
	// maxImageDimension bounds the long edge of a compressed image.
	maxImageDimension = 1920
	// pngKeepThreshold: originals below this stay PNG, everything else becomes JPEG.
	pngKeepThreshold = 2 * 1024 * 1024

	qualityLarge    = 85 // originals >= 20MB
	qualityMedium   = 90 // originals >= 10MB
	qualityDefault  = 95
	qualityFallback = 75 // forced-JPEG retry when still over ceiling

	tierLarge  = 20 * 1024 * 1024
	tierMedium = 10 * 1024 * 1024
)

type mediaCompressor struct {
	validator  port.Validator
	transcoder port.VideoTranscoder
	policy     config.Policy
	tmpDir     string
}

// compile-time check: *mediaCompressor must satisfy port.Compressor
var _ port.Compressor = (*mediaCompressor)(nil)

func NewCompressor(v port.Validator, tr port.VideoTranscoder, policy config.Policy, tmpDir string) port.Compressor {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &mediaCompressor{validator: v, transcoder: tr, policy: policy, tmpDir: tmpDir}
}

// Compress re-validates the input, then shrinks it to policy. It writes its
// output to a new temporary file and never mutates or deletes the input; the
// caller owns both files.
func (c *mediaCompressor) Compress(ctx context.Context, localPath string, kind model.MediaKind, onProgress port.ProgressFunc) (port.CompressionResult, error) {
	report := func(stage string, pct int) {
		if onProgress != nil {
			onProgress(stage, pct)
		}
	}

	report(port.StageValidating, 0)
	v, err := c.validator.Validate(ctx, localPath, kind)
	if err != nil {
		return port.CompressionResult{}, err
	}
	report(port.StageValidating, 30)

	if kind == model.MediaKindVideo {
		return c.compressVideo(ctx, localPath, v, report)
	}
	return c.compressImage(localPath, v, report)
}

func (c *mediaCompressor) compressImage(localPath string, v port.ValidationResult, report port.ProgressFunc) (port.CompressionResult, error) {
	img, err := decodeImage(localPath, v.MimeType)
	if err != nil {
		return port.CompressionResult{}, fmt.Errorf("compressor: failed to decode image: %w", err)
	}
	report(port.StageCompressing, 50)

	img = resizeToFit(img, maxImageDimension)
	report(port.StageCompressing, 70)

	quality := qualityDefault
	switch {
	case v.SizeBytes >= tierLarge:
		quality = qualityLarge
	case v.SizeBytes >= tierMedium:
		quality = qualityMedium
	}

	outMime := "image/jpeg"
	if v.MimeType == "image/png" && v.SizeBytes < pngKeepThreshold {
		outMime = "image/png"
	}

	outPath, outSize, err := c.encodeImage(img, outMime, quality)
	if err != nil {
		return port.CompressionResult{}, err
	}
	report(port.StageCompressing, 90)

	if outSize > c.policy.ImageCompressedMaxBytes {
		// one retry at reduced quality, forced JPEG
		removeQuiet(outPath)
		outMime = "image/jpeg"
		outPath, outSize, err = c.encodeImage(img, outMime, qualityFallback)
		if err != nil {
			return port.CompressionResult{}, err
		}
		if outSize > c.policy.ImageCompressedMaxBytes {
			removeQuiet(outPath)
			return port.CompressionResult{}, fmt.Errorf("%w: %d bytes after recompression (max %d)",
				pipeline.ErrCompressionInsufficient, outSize, c.policy.ImageCompressedMaxBytes)
		}
	}

	report(port.StageFinalizing, 100)
	bounds := img.Bounds()
	return port.CompressionResult{
		URI:          outPath,
		SizeBytes:    outSize,
		OriginalSize: v.SizeBytes,
		Ratio:        ratio(v.SizeBytes, outSize),
		MimeType:     outMime,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
	}, nil
}

func (c *mediaCompressor) encodeImage(img image.Image, mimeType string, quality int) (string, int64, error) {
	pattern := "img_out_*.jpg"
	if mimeType == "image/png" {
		pattern = "img_out_*.png"
	}
	out, err := os.CreateTemp(c.tmpDir, pattern)
	if err != nil {
		return "", 0, fmt.Errorf("compressor: could not create temp output: %w", err)
	}

	if mimeType == "image/png" {
		err = png.Encode(out, img)
	} else {
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		_ = out.Close()
		removeQuiet(out.Name())
		return "", 0, fmt.Errorf("compressor: failed to encode image: %w", err)
	}

	size, err := out.Seek(0, io.SeekEnd)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		removeQuiet(out.Name())
		return "", 0, fmt.Errorf("compressor: failed to finalise output: %w", err)
	}
	return out.Name(), size, nil
}

func decodeImage(localPath, mimeType string) (image.Image, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if mimeType == "image/webp" {
		return webp.Decode(f)
	}
	img, _, err := image.Decode(f)
	return img, err
}

// resizeToFit scales the image down so neither dimension exceeds maxDim,
// preserving aspect ratio. Images already within bounds are returned as-is.
func resizeToFit(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	var outW, outH int
	if w >= h {
		outW = maxDim
		outH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		outH = maxDim
		outW = int(float64(w) * float64(maxDim) / float64(h))
	}
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func ratio(original, compressed int64) float64 {
	if compressed <= 0 {
		return 1
	}
	return float64(original) / float64(compressed)
}

func removeQuiet(path string) {
	_ = os.Remove(path)
}
