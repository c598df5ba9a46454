package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bharathvaddineniK/vicin-sub000/internal/logger"
	"github.com/bharathvaddineniK/vicin-sub000/internal/pipeline"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

// WritePipelineError maps a pipeline sentinel to its HTTP status.
func WritePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrSessionNotFound), errors.Is(err, pipeline.ErrItemNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, pipeline.ErrTooManyImages),
		errors.Is(err, pipeline.ErrVideoAlreadyExists),
		errors.Is(err, pipeline.ErrNotRetryable):
		WriteError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, pipeline.ErrNotAuthenticated):
		WriteError(w, http.StatusUnauthorized, err.Error(), nil)
	default:
		WriteError(w, http.StatusInternalServerError, "Unexpected error", err)
	}
}
