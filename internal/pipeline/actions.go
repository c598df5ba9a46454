package pipeline

import (
	"github.com/bharathvaddineniK/vicin-sub000/internal/model"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

// All mutation of a session's aggregate goes through reduce, a single
// state-transition function over (state, action). Call sites never touch the
// state directly; the session serialises dispatches under its mutex.

type state struct {
	// one keyed map for both the image list and the singleton video slot;
	// the kind tag on each item replaces parallel collections
	items              map[uuid.UUID]*model.MediaItem
	order              []uuid.UUID
	videoPickerLoading bool
}

func newState() state {
	return state{items: make(map[uuid.UUID]*model.MediaItem)}
}

type action interface{ isAction() }

type addItem struct {
	item *model.MediaItem
}

type updateItem struct {
	id uuid.UUID
	// mutate runs only if the item still exists; applied reports whether it
	// did, which is the ghost-update guard for late pipeline callbacks
	mutate  func(*model.MediaItem)
	applied *bool
}

type removeItem struct {
	id uuid.UUID
	// removed receives the deleted item so the caller can release its files
	removed **model.MediaItem
}

type resetSession struct{}

type setVideoPickerLoading struct {
	loading bool
}

func (addItem) isAction()               {}
func (updateItem) isAction()            {}
func (removeItem) isAction()            {}
func (resetSession) isAction()          {}
func (setVideoPickerLoading) isAction() {}

func reduce(st *state, a action) {
	switch act := a.(type) {
	case addItem:
		st.items[act.item.ID] = act.item
		st.order = append(st.order, act.item.ID)

	case updateItem:
		item, ok := st.items[act.id]
		if ok {
			act.mutate(item)
		}
		if act.applied != nil {
			*act.applied = ok
		}

	case removeItem:
		item, ok := st.items[act.id]
		if ok {
			delete(st.items, act.id)
			for i, id := range st.order {
				if id == act.id {
					st.order = append(st.order[:i], st.order[i+1:]...)
					break
				}
			}
		}
		if act.removed != nil {
			if ok {
				*act.removed = item
			} else {
				*act.removed = nil
			}
		}

	case resetSession:
		st.items = make(map[uuid.UUID]*model.MediaItem)
		st.order = nil
		st.videoPickerLoading = false

	case setVideoPickerLoading:
		st.videoPickerLoading = act.loading
	}
}

// countByKind tallies non-removed items of the given kind, whatever their status.
func (st *state) countByKind(kind model.MediaKind) int {
	n := 0
	for _, item := range st.items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}

// totalSizeDone sums the compressed size of every item in done state. Always
// recomputed from the items, never tracked incrementally.
func (st *state) totalSizeDone() int64 {
	var total int64
	for _, item := range st.items {
		if item.Status == model.MediaStatusDone && item.CompressionInfo != nil {
			total += item.CompressionInfo.CompressedSize
		}
	}
	return total
}

// hasInFlight is true iff any item is mid-pipeline or the video picker window
// is open.
func (st *state) hasInFlight() bool {
	if st.videoPickerLoading {
		return true
	}
	for _, item := range st.items {
		if item.Status.InFlight() {
			return true
		}
	}
	return false
}
