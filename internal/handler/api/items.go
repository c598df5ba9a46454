package api

import (
	"context"
	"log"
	"net/http"

	"github.com/bharathvaddineniK/vicin-sub000/internal/api_context"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
)

// RemoveItemHandler deletes the item from the session and releases its local
// files immediately; a pipeline still running for it becomes a no-op.
func RemoveItemHandler(store *pipeline.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, store)
		if !ok {
			return
		}
		itemID, ok := api_context.ItemIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "Item ID is required", nil)
			return
		}

		if !sess.RemoveItem(itemID) {
			WritePipelineError(w, pipeline.ErrItemNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Removed item %s from session #%s", itemID, sess.ID())
	}
}

// RetryItemHandler re-enters a failed item's pipeline from the top, with the
// same id.
func RetryItemHandler(store *pipeline.Store, proc *pipeline.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromRequest(w, r, store)
		if !ok {
			return
		}
		itemID, ok := api_context.ItemIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "Item ID is required", nil)
			return
		}

		if err := proc.Retry(sess, itemID); err != nil {
			WritePipelineError(w, err)
			return
		}
		go proc.Run(context.WithoutCancel(r.Context()), sess, itemID)

		w.WriteHeader(http.StatusAccepted)
		log.Printf("✅  Retrying item %s in session #%s", itemID, sess.ID())
	}
}
