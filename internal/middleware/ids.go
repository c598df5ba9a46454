package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bharathvaddineniK/vicin-sub000/internal/api_context"
	"github.com/bharathvaddineniK/vicin-sub000/internal/handler/api"
	msuuid "github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
	"github.com/go-chi/chi/v5"
)

// WithSessionID parses the sessionID URL param into the request context.
func WithSessionID() func(http.Handler) http.Handler {
	return withUUIDParam("sessionID", api_context.SessionIDKey)
}

// WithItemID parses the itemID URL param into the request context.
func WithItemID() func(http.Handler) http.Handler {
	return withUUIDParam("itemID", api_context.ItemIDKey)
}

func withUUIDParam(param string, key any) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, param)
			if raw == "" {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("%s is required", param), nil)
				return
			}
			parsed, err := msuuid.Parse(raw)
			if err != nil {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("%s %q is not a valid UUID", param, raw), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), key, parsed)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
