package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

// Session is the aggregate over all media items of one authoring session.
// Logical state transitions are serialised by the mutex; the I/O of each
// item's pipeline runs outside it, so items compress and upload in parallel.
//
// The session-wide size ceiling is a best-effort soft cap: two items can both
// pass the projected-total check concurrently and overshoot when summed. The
// processor narrows the window with a recheck right before the upload commit
// but does not eliminate it.
type Session struct {
	id      uuid.UUID
	ownerID string
	policy  config.Policy
	cleaner port.Cleaner

	mu         sync.Mutex
	st         state
	lastActive time.Time
}

func NewSession(ownerID string, policy config.Policy, cleaner port.Cleaner) *Session {
	return &Session{
		id:         uuid.NewUUID(),
		ownerID:    ownerID,
		policy:     policy,
		cleaner:    cleaner,
		st:         newState(),
		lastActive: time.Now(),
	}
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) OwnerID() string      { return s.ownerID }
func (s *Session) Cleaner() port.Cleaner { return s.cleaner }

func (s *Session) dispatch(a action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reduce(&s.st, a)
	s.lastActive = time.Now()
}

// AddImage inserts a new image item in compressing state. The policy maximum
// is enforced here, at the call site, never silently queued past.
func (s *Session) AddImage(sourceURI string) (model.MediaItem, error) {
	return s.addItem(model.MediaKindImage, sourceURI)
}

// AddVideo inserts the singleton video item, rejecting a second one while any
// non-removed video exists. Adding a video closes the picker window.
func (s *Session) AddVideo(sourceURI string) (model.MediaItem, error) {
	return s.addItem(model.MediaKindVideo, sourceURI)
}

func (s *Session) addItem(kind model.MediaKind, sourceURI string) (model.MediaItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind == model.MediaKindImage && s.st.countByKind(kind) >= s.policy.MaxImagesPerPost {
		return model.MediaItem{}, fmt.Errorf("%w: max %d", ErrTooManyImages, s.policy.MaxImagesPerPost)
	}
	if kind == model.MediaKindVideo && s.st.countByKind(kind) >= s.policy.MaxVideosPerPost {
		return model.MediaItem{}, ErrVideoAlreadyExists
	}

	now := time.Now()
	item := &model.MediaItem{
		ID:        uuid.NewUUID(),
		Kind:      kind,
		Status:    model.MediaStatusCompressing,
		SourceURI: sourceURI,
		LocalURI:  sourceURI,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cleaner.Track(sourceURI)

	reduce(&s.st, addItem{item: item})
	if kind == model.MediaKindVideo {
		reduce(&s.st, setVideoPickerLoading{loading: false})
	}
	s.lastActive = now

	return *item, nil
}

// UpdateItem merges fields into the matching item via mutate. It returns
// false when the id is no longer tracked, which late pipeline callbacks must
// treat as "stop": the item was removed and must not be re-inserted.
func (s *Session) UpdateItem(id uuid.UUID, mutate func(*model.MediaItem)) bool {
	var applied bool
	s.dispatch(updateItem{
		id: id,
		mutate: func(item *model.MediaItem) {
			mutate(item)
			item.UpdatedAt = time.Now()
		},
		applied: &applied,
	})
	return applied
}

// Item returns a copy of the tracked item.
func (s *Session) Item(id uuid.UUID) (model.MediaItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.st.items[id]
	if !ok {
		return model.MediaItem{}, false
	}
	return *item, true
}

// RemoveItem deletes the item and releases its local files immediately.
func (s *Session) RemoveItem(id uuid.UUID) bool {
	var removed *model.MediaItem
	s.dispatch(removeItem{id: id, removed: &removed})
	if removed == nil {
		return false
	}

	s.cleaner.Cleanup(removed.SourceURI)
	if removed.LocalURI != "" && removed.LocalURI != removed.SourceURI {
		s.cleaner.Cleanup(removed.LocalURI)
	}
	return true
}

// Reset clears every item and sweeps all still-tracked temp files. Used when
// the authoring session is abandoned or successfully submitted.
func (s *Session) Reset() {
	s.dispatch(resetSession{})
	s.cleaner.Sweep()
}

// SetVideoPickerLoading flags the window between "user tapped add video" and
// the picker resolving; it counts as in-flight so submission stays disabled.
func (s *Session) SetVideoPickerLoading(loading bool) {
	s.dispatch(setVideoPickerLoading{loading: loading})
}

// TotalSizeDone is the exact sum of compressed sizes over done items.
func (s *Session) TotalSizeDone() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.totalSizeDone()
}

// Snapshot derives the UI-facing aggregate from the authoritative per-item
// records at call time.
func (s *Session) Snapshot() model.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.MediaItem, 0, len(s.st.order))
	for _, id := range s.st.order {
		if item, ok := s.st.items[id]; ok {
			items = append(items, *item)
		}
	}

	return model.SessionSnapshot{
		ID:                 s.id,
		Items:              items,
		HasInFlight:        s.st.hasInFlight(),
		TotalSize:          s.st.totalSizeDone(),
		VideoPickerLoading: s.st.videoPickerLoading,
	}
}

// LastActive reports the time of the last dispatched action.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
