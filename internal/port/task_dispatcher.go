package port

import (
	"context"

	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

// TaskDispatcher enqueues background maintenance work.
type TaskDispatcher interface {
	EnqueueSweepSession(ctx context.Context, sessionID uuid.UUID) error
}
