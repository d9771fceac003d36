package logtrace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type requestIdContextKey string

const requestIdKey = requestIdContextKey("requestId")

// NewRequestId returns a time ordered UUIDv7 string, falling back to a
// timestamp based id if UUID generation fails.
func NewRequestId() string {
	u, err := uuid.NewV7()
	if err == nil {
		return u.String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

// WithRequestId stores the request id in the context.
func WithRequestId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIdKey, id)
}

// RequestIdFromContext extracts the request ID from the context.
// Returns an empty string if the context is nil or if no request ID is found.
func RequestIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	r, ok := ctx.Value(requestIdKey).(string)
	if !ok {
		return ""
	}
	return r
}
