package state

import (
	"context"
)

// gin context keys
const (
	CurrentRequestID = "CurrentRequestID"
	CurrentUserIP    = "CurrentIP"
)

type contextKey string

const (
	requestIDKey contextKey = CurrentRequestID
	clientIPKey  contextKey = CurrentUserIP
)

// RequestID returns the id assigned to the current request, or "".
func RequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ClientIP returns the caller address of the current request, or "".
func ClientIP(ctx context.Context) string {
	return stringValue(ctx, clientIPKey)
}

func SetClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

func stringValue(ctx context.Context, key contextKey) string {
	value := ctx.Value(key)
	if value == nil {
		return ""
	}

	s, ok := value.(string)
	if !ok {
		return ""
	}

	return s
}
