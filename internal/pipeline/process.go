package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	"github.com/bharathvaddineniK/vicin-sub000/internal/logger"
	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

// Processor runs one item's pipeline: validate+compress, ceiling check, then
// upload. Each call to Run is one asynchronous task; failures are contained
// to the item and become a state transition, never an escaping error.
type Processor struct {
	comp   port.Compressor
	up     port.Uploader
	policy config.Policy
}

func NewProcessor(comp port.Compressor, up port.Uploader, policy config.Policy) *Processor {
	return &Processor{comp: comp, up: up, policy: policy}
}

// Run drives the item with the given id through compression and upload.
// Intended to be launched in its own goroutine; pipelines for different items
// interleave freely and one item's failure never touches its siblings.
func (p *Processor) Run(ctx context.Context, sess *Session, itemID uuid.UUID) {
	item, ok := sess.Item(itemID)
	if !ok {
		return
	}
	source := item.SourceURI

	res, err := p.comp.Compress(ctx, source, item.Kind, func(stage string, pct int) {
		sess.UpdateItem(itemID, func(it *model.MediaItem) {
			if it.Status == model.MediaStatusCompressing && pct > it.Progress {
				it.Progress = pct
			}
		})
	})
	if err != nil {
		p.fail(ctx, sess, itemID, source, err)
		return
	}

	derived := res.URI != source
	if derived {
		sess.Cleaner().Track(res.URI)
	}
	releaseDerived := func() {
		if derived {
			sess.Cleaner().Cleanup(res.URI)
		}
	}

	// projected-total check before the upload starts, not after
	if sess.TotalSizeDone()+res.SizeBytes > p.policy.SessionTotalMaxBytes {
		releaseDerived()
		p.fail(ctx, sess, itemID, source, fmt.Errorf("%w: adding %d bytes would exceed %d",
			ErrTotalSizeExceeded, res.SizeBytes, p.policy.SessionTotalMaxBytes))
		return
	}

	info := &model.CompressionInfo{
		OriginalSize:     res.OriginalSize,
		CompressedSize:   res.SizeBytes,
		CompressionRatio: res.Ratio,
	}
	ok = sess.UpdateItem(itemID, func(it *model.MediaItem) {
		it.CompressionInfo = info
		it.LocalURI = res.URI
		it.Status = model.MediaStatusUploading
		it.Progress = 0
	})
	if !ok {
		// removed mid-compression; drop the orphaned output and stop
		releaseDerived()
		return
	}

	// recheck right before the commit to narrow the concurrent soft-cap race
	if sess.TotalSizeDone()+res.SizeBytes > p.policy.SessionTotalMaxBytes {
		releaseDerived()
		p.fail(ctx, sess, itemID, source, fmt.Errorf("%w: adding %d bytes would exceed %d",
			ErrTotalSizeExceeded, res.SizeBytes, p.policy.SessionTotalMaxBytes))
		return
	}

	upRes, err := p.up.Upload(ctx, sess.OwnerID(), res.URI, time.Now().UnixMilli(), func(pct int) {
		sess.UpdateItem(itemID, func(it *model.MediaItem) {
			if it.Status == model.MediaStatusUploading && pct > it.Progress {
				it.Progress = pct
			}
		})
	})
	if err != nil {
		releaseDerived()
		if !isPipelineErr(err) {
			err = fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		p.fail(ctx, sess, itemID, source, err)
		return
	}

	ok = sess.UpdateItem(itemID, func(it *model.MediaItem) {
		it.Status = model.MediaStatusDone
		it.URL = upRes.URL
		it.Progress = 100
		it.Error = ""
		it.LocalURI = ""
	})
	if !ok {
		// removed mid-upload; the remote object stays but local files go
		releaseDerived()
		sess.Cleaner().Cleanup(source)
		return
	}

	// the remote copy is durable now; both local files are disposable
	releaseDerived()
	sess.Cleaner().Cleanup(source)
	logger.Infof(ctx, "item %s uploaded to %s", itemID, upRes.URL)
}

// Retry transitions a failed item back to compressing with the same id; the
// caller then re-invokes Run. Only error state is retryable.
func (p *Processor) Retry(sess *Session, itemID uuid.UUID) error {
	item, ok := sess.Item(itemID)
	if !ok {
		return ErrItemNotFound
	}
	if item.Status != model.MediaStatusError {
		return ErrNotRetryable
	}

	sess.UpdateItem(itemID, func(it *model.MediaItem) {
		it.Status = model.MediaStatusCompressing
		it.Progress = 0
		it.Error = ""
		it.URL = ""
		it.CompressionInfo = nil
		it.LocalURI = it.SourceURI
	})
	return nil
}

// fail routes any pipeline error to a terminal error state on the item. The
// source file is kept so a retry can re-enter from the top.
func (p *Processor) fail(ctx context.Context, sess *Session, itemID uuid.UUID, source string, err error) {
	logger.Warnf(ctx, "item %s failed: %v", itemID, err)
	sess.UpdateItem(itemID, func(it *model.MediaItem) {
		it.Status = model.MediaStatusError
		it.Error = err.Error()
		it.LocalURI = source
	})
}

func isPipelineErr(err error) bool {
	for _, sentinel := range []error{
		ErrNotFound, ErrUnsupportedFormat, ErrTooLarge, ErrCompressionInsufficient,
		ErrTotalSizeExceeded, ErrNotAuthenticated, ErrUploadFailed,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
