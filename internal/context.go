package internal

import "context"

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	ThreadIDKey contextKey = "thread_id"
)

// GetThreadID retrieves the chat thread ID from context
func GetThreadID(ctx context.Context) string {
	if id, ok := ctx.Value(ThreadIDKey).(string); ok {
		return id
	}
	return "unknown"
}

// WithThreadID adds a chat thread ID to the context
func WithThreadID(ctx context.Context, threadID string) context.Context {
	return context.WithValue(ctx, ThreadIDKey, threadID)
}
