package pipeline

import "errors"

// Error taxonomy for the media pipeline. Validator, compressor and uploader
// failures all wrap one of these sentinels so the per-item orchestration
// boundary can classify them.
var (
	// ErrNotFound means the selected file vanished before processing.
	ErrNotFound = errors.New("media: file not found")
	// ErrUnsupportedFormat means the mime type is outside the policy allow-list.
	ErrUnsupportedFormat = errors.New("media: unsupported format")
	// ErrTooLarge means the raw file exceeds its kind's original-size ceiling.
	ErrTooLarge = errors.New("media: file too large")
	// ErrCompressionInsufficient means best-effort compression could not bring
	// the file under the compressed-size ceiling.
	ErrCompressionInsufficient = errors.New("media: compression insufficient")
	// ErrTotalSizeExceeded means completing this item would exceed the
	// session-wide size ceiling.
	ErrTotalSizeExceeded = errors.New("media: total session size exceeded")
	// ErrNotAuthenticated means there is no owner session at upload time.
	ErrNotAuthenticated = errors.New("media: not authenticated")
	// ErrUploadFailed wraps network/storage layer failures; retryable from the
	// compression step.
	ErrUploadFailed = errors.New("media: upload failed")

	// Policy guard errors raised at the call site, before an item is created.
	ErrTooManyImages      = errors.New("media: image limit reached")
	ErrVideoAlreadyExists = errors.New("media: a video is already attached")

	ErrSessionNotFound = errors.New("media: session not found")
	ErrItemNotFound    = errors.New("media: item not found")
	ErrNotRetryable    = errors.New("media: item is not in error state")
)
