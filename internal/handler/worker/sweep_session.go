package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/logger"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
	"github.com/bharathvaddineniK/vicin-sub000/internal/task"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

// SweepSessionHandler tears down one authoring session once it has gone idle.
// A session still in use makes the task fail, so asynq retries it later with
// backoff until the session is idle or already gone.
func SweepSessionHandler(ctx context.Context, p task.SweepSessionPayload, store *pipeline.Store, maxIdle time.Duration) error {
	id, err := uuid.Parse(p.SessionID)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", p.SessionID, err)
	}

	deleted, exists := store.DeleteIfIdle(id, maxIdle)
	if !exists {
		logger.Debugf(ctx, "session #%s already gone, nothing to sweep", id)
		return nil
	}
	if !deleted {
		return fmt.Errorf("session #%s still active, retrying later", id)
	}

	logger.Infof(ctx, "swept idle session #%s", id)
	return nil
}
