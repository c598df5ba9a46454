package model

import (
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

type MediaStatus string

const (
	MediaStatusCompressing MediaStatus = "compressing"
	MediaStatusUploading   MediaStatus = "uploading"
	MediaStatusDone        MediaStatus = "done"
	MediaStatusError       MediaStatus = "error"
)

// InFlight reports whether a status still has pipeline work pending.
func (s MediaStatus) InFlight() bool {
	return s == MediaStatusCompressing || s == MediaStatusUploading
}

// CompressionInfo is set once compression completes, before the upload starts.
type CompressionInfo struct {
	OriginalSize     int64   `json:"original_size"`
	CompressedSize   int64   `json:"compressed_size"`
	CompressionRatio float64 `json:"compression_ratio"`
}

// MediaItem is one user-selected media asset moving through the pipeline.
// The ID is generated at selection time and never changes; the item is mutated
// in place by the pipeline stages rather than replaced.
type MediaItem struct {
	ID     uuid.UUID   `json:"id"`
	Kind   MediaKind   `json:"kind"`
	Status MediaStatus `json:"status"`
	// SourceURI is the originally selected file; retry re-enters compression
	// from here. The caller owns its deletion.
	SourceURI string `json:"-"`
	// LocalURI is the file currently backing the item: the source at first,
	// then the derived compression output.
	LocalURI        string           `json:"-"`
	URL             string           `json:"url,omitempty"`
	Progress        int              `json:"progress"`
	Error           string           `json:"error,omitempty"`
	CompressionInfo *CompressionInfo `json:"compression_info,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// SessionSnapshot is the UI-facing aggregate over all items of one authoring
// session. HasInFlight and TotalSize are derived from the items at snapshot
// time, never tracked incrementally.
type SessionSnapshot struct {
	ID                 uuid.UUID   `json:"id"`
	Items              []MediaItem `json:"items"`
	HasInFlight        bool        `json:"has_in_flight"`
	TotalSize          int64       `json:"total_size"`
	VideoPickerLoading bool        `json:"video_picker_loading"`
}
