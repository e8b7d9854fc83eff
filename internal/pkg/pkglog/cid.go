package pkglog

import "context"

type correlationIDKey struct{}

// MissingCorrelationID is reported by GetCorrelationID for a context that
// never went through the correlation middleware, e.g. background work.
const MissingCorrelationID = "[invalid_chain_id]"

// GetCorrelationID returns the correlation ID stored in the context, or
// MissingCorrelationID when there is none.
func GetCorrelationID(ctx context.Context) string {
	if cid, ok := CorrelationID(ctx); ok {
		return cid
	}
	return MissingCorrelationID
}

// CorrelationID returns the correlation ID stored in the context and whether
// a non-empty one was set.
func CorrelationID(ctx context.Context) (string, bool) {
	cid, ok := ctx.Value(correlationIDKey{}).(string)
	return cid, ok && cid != ""
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}
