package worker

import (
	"context"
	"testing"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	"github.com/bharathvaddineniK/vicin-sub000/internal/mock"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
	"github.com/bharathvaddineniK/vicin-sub000/internal/task"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

func newTestStore() (*pipeline.Store, *mock.Cleaner) {
	cleaner := &mock.Cleaner{}
	store := pipeline.NewStore(config.DefaultPolicy(), func() port.Cleaner { return cleaner })
	return store, cleaner
}

func TestSweepSessionHandler_InvalidID(t *testing.T) {
	store, _ := newTestStore()

	err := SweepSessionHandler(context.Background(), task.SweepSessionPayload{SessionID: "nope"}, store, time.Hour)
	if err == nil {
		t.Fatal("expected an error for a malformed id")
	}
}

func TestSweepSessionHandler_AlreadyGone(t *testing.T) {
	store, _ := newTestStore()

	p := task.SweepSessionPayload{SessionID: uuid.NewUUID().String()}
	if err := SweepSessionHandler(context.Background(), p, store, time.Hour); err != nil {
		t.Fatalf("expected a missing session to be a no-op, got %v", err)
	}
}

func TestSweepSessionHandler_StillActiveRetries(t *testing.T) {
	store, _ := newTestStore()
	sess := store.Create("owner-1")

	p := task.SweepSessionPayload{SessionID: sess.ID().String()}
	if err := SweepSessionHandler(context.Background(), p, store, time.Hour); err == nil {
		t.Fatal("expected an error so the task is retried while the session is active")
	}
	if _, ok := store.Get(sess.ID()); !ok {
		t.Error("expected the active session kept")
	}
}

func TestSweepSessionHandler_IdleIsSwept(t *testing.T) {
	store, cleaner := newTestStore()
	sess := store.Create("owner-1")
	_, _ = sess.AddImage("/tmp/a.jpg")

	time.Sleep(30 * time.Millisecond)
	p := task.SweepSessionPayload{SessionID: sess.ID().String()}
	if err := SweepSessionHandler(context.Background(), p, store, 10*time.Millisecond); err != nil {
		t.Fatalf("expected the idle session swept, got %v", err)
	}
	if _, ok := store.Get(sess.ID()); ok {
		t.Error("expected the session gone")
	}
	if !cleaner.Swept {
		t.Error("expected the session's temp files swept")
	}
}
