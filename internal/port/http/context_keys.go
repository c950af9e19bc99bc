package http

import "context"

// ContextKey is a private type for request-scoped values.
type ContextKey string

const (
	// SessionIDCtxKey holds the storefront session resolved from the request header.
	SessionIDCtxKey = ContextKey("session_id")

	SessionHeader = "X-Session-ID"
)

func withSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDCtxKey, sessionID)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok && sessionID != ""
}
