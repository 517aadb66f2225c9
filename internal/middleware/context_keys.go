package middleware

import (
	"context"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
)

type contextKey string

const (
	loggerCtxKey contextKey = "logger"
	userIDCtxKey contextKey = "userID"
)

// GinContextUserIDKey is the gin context key the auth middleware sets.
const GinContextUserIDKey = "userID"

// GetUserIDFromContext extracts the authenticated user ID from the context.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	if userID, ok := ctx.Value(userIDCtxKey).(string); ok && userID != "" {
		return userID, nil
	}
	return "", apperrors.ErrUnauthorized
}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}
