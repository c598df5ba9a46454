package pipeline

import (
	"errors"
	"testing"

	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	"github.com/bharathvaddineniK/vicin-sub000/internal/mock"
	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
)

func newTestSession() (*Session, *mock.Cleaner) {
	cleaner := &mock.Cleaner{}
	return NewSession("owner-1", config.DefaultPolicy(), cleaner), cleaner
}

func TestAddImage_EnforcesMaximum(t *testing.T) {
	s, _ := newTestSession()

	for i := 0; i < 5; i++ {
		if _, err := s.AddImage("/tmp/a.jpg"); err != nil {
			t.Fatalf("image %d: expected no error, got %v", i, err)
		}
	}

	_, err := s.AddImage("/tmp/a.jpg")
	if !errors.Is(err, ErrTooManyImages) {
		t.Fatalf("expected ErrTooManyImages, got %v", err)
	}
}

func TestAddImage_RemovalFreesASlot(t *testing.T) {
	s, _ := newTestSession()

	var last model.MediaItem
	for i := 0; i < 5; i++ {
		item, err := s.AddImage("/tmp/a.jpg")
		if err != nil {
			t.Fatalf("image %d: expected no error, got %v", i, err)
		}
		last = item
	}

	if !s.RemoveItem(last.ID) {
		t.Fatal("expected the removal to succeed")
	}
	if _, err := s.AddImage("/tmp/b.jpg"); err != nil {
		t.Fatalf("expected a freed slot to accept a new image, got %v", err)
	}
}

func TestAddVideo_SingletonSlot(t *testing.T) {
	s, _ := newTestSession()

	first, err := s.AddVideo("/tmp/v.mp4")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = s.AddVideo("/tmp/w.mp4")
	if !errors.Is(err, ErrVideoAlreadyExists) {
		t.Fatalf("expected ErrVideoAlreadyExists, got %v", err)
	}

	// the slot frees only after removal, whatever state the video is in
	s.RemoveItem(first.ID)
	if _, err := s.AddVideo("/tmp/w.mp4"); err != nil {
		t.Fatalf("expected the slot free after removal, got %v", err)
	}
}

func TestAddVideo_ClosesPickerWindow(t *testing.T) {
	s, _ := newTestSession()

	s.SetVideoPickerLoading(true)
	if !s.Snapshot().HasInFlight {
		t.Fatal("expected the open picker window to count as in-flight")
	}

	if _, err := s.AddVideo("/tmp/v.mp4"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.Snapshot().VideoPickerLoading {
		t.Error("expected adding a video to close the picker window")
	}
}

func TestAddItem_TracksSourceForCleanup(t *testing.T) {
	s, cleaner := newTestSession()

	if _, err := s.AddImage("/tmp/a.jpg"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cleaner.Tracked) != 1 || cleaner.Tracked[0] != "/tmp/a.jpg" {
		t.Errorf("expected the source tracked, got %v", cleaner.Tracked)
	}
}

func TestUpdateItem_GhostGuard(t *testing.T) {
	s, _ := newTestSession()
	item, err := s.AddImage("/tmp/a.jpg")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !s.UpdateItem(item.ID, func(it *model.MediaItem) { it.Progress = 42 }) {
		t.Fatal("expected the update applied while the item exists")
	}

	s.RemoveItem(item.ID)

	// a late callback for the removed id must be rejected, not re-inserted
	if s.UpdateItem(item.ID, func(it *model.MediaItem) { it.Progress = 99 }) {
		t.Fatal("expected the update refused after removal")
	}
	if len(s.Snapshot().Items) != 0 {
		t.Error("expected no items after removal")
	}
}

func TestRemoveItem_ReleasesLocalFiles(t *testing.T) {
	s, cleaner := newTestSession()
	item, err := s.AddImage("/tmp/src.jpg")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	s.UpdateItem(item.ID, func(it *model.MediaItem) { it.LocalURI = "/tmp/out.jpg" })

	if !s.RemoveItem(item.ID) {
		t.Fatal("expected the removal to succeed")
	}

	cleaned := cleaner.CleanedPaths()
	if len(cleaned) != 2 {
		t.Fatalf("expected both local files cleaned, got %v", cleaned)
	}
	if cleaned[0] != "/tmp/src.jpg" || cleaned[1] != "/tmp/out.jpg" {
		t.Errorf("expected source and derived file cleaned, got %v", cleaned)
	}
}

func TestRemoveItem_UnknownID(t *testing.T) {
	s, cleaner := newTestSession()
	other, _ := newTestSession()
	item, _ := other.AddImage("/tmp/a.jpg")

	if s.RemoveItem(item.ID) {
		t.Fatal("expected removal of an unknown id to report false")
	}
	if len(cleaner.CleanedPaths()) != 0 {
		t.Error("expected no cleanup for an unknown id")
	}
}

func TestSnapshot_DerivesAggregates(t *testing.T) {
	s, _ := newTestSession()

	a, _ := s.AddImage("/tmp/a.jpg")
	b, _ := s.AddImage("/tmp/b.jpg")

	s.UpdateItem(a.ID, func(it *model.MediaItem) {
		it.Status = model.MediaStatusDone
		it.CompressionInfo = &model.CompressionInfo{OriginalSize: 300, CompressedSize: 100, CompressionRatio: 3}
	})

	snap := s.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(snap.Items))
	}
	if snap.Items[0].ID != a.ID || snap.Items[1].ID != b.ID {
		t.Error("expected items in insertion order")
	}
	if !snap.HasInFlight {
		t.Error("expected in-flight while an item is still compressing")
	}
	if snap.TotalSize != 100 {
		t.Errorf("expected total size 100 over done items only, got %d", snap.TotalSize)
	}

	s.UpdateItem(b.ID, func(it *model.MediaItem) {
		it.Status = model.MediaStatusDone
		it.CompressionInfo = &model.CompressionInfo{OriginalSize: 200, CompressedSize: 50, CompressionRatio: 4}
	})

	snap = s.Snapshot()
	if snap.HasInFlight {
		t.Error("expected no in-flight once every item is done")
	}
	if snap.TotalSize != 150 {
		t.Errorf("expected total size 150, got %d", snap.TotalSize)
	}
}

func TestSnapshot_ErrorItemsAreNotInFlight(t *testing.T) {
	s, _ := newTestSession()
	a, _ := s.AddImage("/tmp/a.jpg")
	s.UpdateItem(a.ID, func(it *model.MediaItem) {
		it.Status = model.MediaStatusError
		it.Error = "too large"
	})

	snap := s.Snapshot()
	if snap.HasInFlight {
		t.Error("expected an error item to unblock submission")
	}
	if snap.TotalSize != 0 {
		t.Errorf("expected error items excluded from the total, got %d", snap.TotalSize)
	}
}

func TestReset_ClearsStateAndSweeps(t *testing.T) {
	s, cleaner := newTestSession()
	_, _ = s.AddImage("/tmp/a.jpg")
	_, _ = s.AddVideo("/tmp/v.mp4")
	s.SetVideoPickerLoading(true)

	s.Reset()

	snap := s.Snapshot()
	if len(snap.Items) != 0 || snap.HasInFlight || snap.TotalSize != 0 || snap.VideoPickerLoading {
		t.Errorf("expected a pristine session after reset, got %+v", snap)
	}
	if !cleaner.Swept {
		t.Error("expected the temp file registry swept")
	}
	if _, err := s.AddImage("/tmp/c.jpg"); err != nil {
		t.Fatalf("expected the session usable after reset, got %v", err)
	}
}
