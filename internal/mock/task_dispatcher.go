package mock

import (
	"context"

	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

// Dispatcher implements port.TaskDispatcher for tests.
type Dispatcher struct {
	Err error

	Called bool
	SeenID uuid.UUID
}

var _ port.TaskDispatcher = (*Dispatcher)(nil)

func (m *Dispatcher) EnqueueSweepSession(ctx context.Context, sessionID uuid.UUID) error {
	m.Called = true
	m.SeenID = sessionID
	return m.Err
}
