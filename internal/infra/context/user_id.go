package context

import (
	"context"
)

const contextKeyUserID = contextKey("userID")

// UserIDFromContext extracts the authenticated user id from the context.
// Returns the user id and true if present, or empty string and false if the
// request carries no valid session.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextKeyUserID).(string)

	return userID, ok
}

// WithUserID creates a new context with the given user id value.
// This context can be used to track the authenticated user throughout a request.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKeyUserID, userID)
}
