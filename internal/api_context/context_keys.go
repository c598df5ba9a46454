package api_context

import (
	"context"

	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

type ctxKey string

const (
	SessionIDKey ctxKey = "sessionID"
	ItemIDKey    ctxKey = "itemID"
	OwnerIDKey   ctxKey = "ownerID"
)

func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return id, ok
}

func ItemIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ItemIDKey).(uuid.UUID)
	return id, ok
}

func OwnerIDFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerIDKey).(string)
	return owner, ok
}
