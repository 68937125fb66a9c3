package userctx

import (
	"context"

	"github.com/fdg312/fitness-tracker/internal/owner"
)

type contextKey string

const (
	userIDContextKey contextKey = "user_id"
	ownerContextKey  contextKey = "owner_id"
)

// WithUserID stores the raw subject taken from a verified token.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok
}

// WithOwner stores the normalized owner for the rest of the request.
func WithOwner(ctx context.Context, id owner.ID) context.Context {
	return context.WithValue(ctx, ownerContextKey, id)
}

// Owner returns the request owner. ok is false when none was resolved.
func Owner(ctx context.Context) (owner.ID, bool) {
	id, ok := ctx.Value(ownerContextKey).(owner.ID)
	if !ok || id.IsZero() {
		return "", false
	}
	return id, true
}
