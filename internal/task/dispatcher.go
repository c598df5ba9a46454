package task

import (
	"context"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
	"github.com/hibiken/asynq"
)

type Dispatcher struct {
	client *asynq.Client
	// sweepDelay defers the session sweep until the idle TTL has elapsed
	sweepDelay time.Duration
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string, sweepDelay time.Duration) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c, sweepDelay: sweepDelay}
}

func (d *Dispatcher) EnqueueSweepSession(ctx context.Context, sessionID uuid.UUID) error {
	t, err := NewSweepSessionTask(sessionID.String())
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.ProcessIn(d.sweepDelay)); err != nil {
		return err
	}
	return nil
}
