package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TypeSweepSession tears down one abandoned authoring session.
	TypeSweepSession = "session:sweep"
	// TypeSweepIdle tears down every session idle beyond the configured TTL.
	TypeSweepIdle = "session:sweep_idle"
)

type SweepSessionPayload struct {
	SessionID string `json:"session_id"`
}

// NewSweepSessionTask creates an Asynq task for sweeping a session by ID.
func NewSweepSessionTask(sessionID string) (*asynq.Task, error) {
	p := SweepSessionPayload{SessionID: sessionID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal sweep-session payload: %w", err)
	}
	return asynq.NewTask(TypeSweepSession, data), nil
}

// ParseSweepSessionPayload parses the task payload to SweepSessionPayload.
func ParseSweepSessionPayload(t *asynq.Task) (SweepSessionPayload, error) {
	var p SweepSessionPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return SweepSessionPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

// NewSweepIdleTask creates the periodic idle-session sweep task.
func NewSweepIdleTask() *asynq.Task {
	return asynq.NewTask(TypeSweepIdle, nil)
}
