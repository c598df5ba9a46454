package port

import (
	"context"

	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
)

// UploadResult is the durable outcome of a successful transfer.
type UploadResult struct {
	URL  string
	Kind model.MediaKind
}

// Uploader transfers a local file's bytes to remote object storage and
// returns a fetchable URL. The salt disambiguates object keys for the same
// owner across retries.
type Uploader interface {
	Upload(ctx context.Context, ownerID, localPath string, salt int64, onProgress func(pct int)) (UploadResult, error)
}
