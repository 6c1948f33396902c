package instrument

import "context"

type correlationIDKey struct{}

// SetCorrelationID stores the request correlation ID on the context so every
// log line emitted under it carries the same identifier.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID returns the correlation ID stored on the context, or an
// empty string when none is set.
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}

	return ""
}
