package api

import (
	"log"
	"net/http"

	"github.com/bharathvaddineniK/vicin-sub000/internal/api_context"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

type CreateSessionOutput struct {
	ID uuid.UUID `json:"id"`
}

// CreateSessionHandler opens a new authoring session for the authenticated
// owner and schedules its idle sweep.
func CreateSessionHandler(store *pipeline.Store, dispatcher port.TaskDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := api_context.OwnerIDFromContext(r.Context())
		if !ok || ownerID == "" {
			WritePipelineError(w, pipeline.ErrNotAuthenticated)
			return
		}

		sess := store.Create(ownerID)
		if err := dispatcher.EnqueueSweepSession(r.Context(), sess.ID()); err != nil {
			log.Printf("failed to enqueue sweep for session #%s: %v", sess.ID(), err)
		}

		RespondJSON(w, http.StatusCreated, CreateSessionOutput{ID: sess.ID()})
		log.Printf("✅  Created session #%s", sess.ID())
	}
}

// GetSessionHandler returns the aggregate snapshot the client polls.
func GetSessionHandler(store *pipeline.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, store)
		if !ok {
			return
		}
		RespondJSON(w, http.StatusOK, sess.Snapshot())
	}
}

// ResetSessionHandler clears the session and sweeps its temp files.
func ResetSessionHandler(store *pipeline.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.SessionIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "Session ID is required", nil)
			return
		}
		if !store.Delete(id) {
			WritePipelineError(w, pipeline.ErrSessionNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Reset session #%s", id)
	}
}

// sessionFromRequest resolves the session in context, enforcing ownership.
func sessionFromRequest(w http.ResponseWriter, r *http.Request, store *pipeline.Store) (*pipeline.Session, bool) {
	id, ok := api_context.SessionIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusBadRequest, "Session ID is required", nil)
		return nil, false
	}
	sess, ok := store.Get(id)
	if !ok {
		WritePipelineError(w, pipeline.ErrSessionNotFound)
		return nil, false
	}
	if owner, ok := api_context.OwnerIDFromContext(r.Context()); !ok || owner != sess.OwnerID() {
		WriteError(w, http.StatusForbidden, "Session belongs to another owner", nil)
		return nil, false
	}
	return sess, true
}
