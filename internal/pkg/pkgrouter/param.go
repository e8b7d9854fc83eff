package pkgrouter

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

// unmatchedRoute labels requests that hit no registered route.
const unmatchedRoute = "unmatched"

// GetParam reads a path parameter from the request context (as stored by httprouter).
func GetParam(ctx context.Context, key string) string {
	return httprouter.ParamsFromContext(ctx).ByName(key)
}

// MatchedRoute returns the registered pattern that served the request, such
// as "/static/*filepath", or "" when no route matched.
func MatchedRoute(ctx context.Context) string {
	return httprouter.ParamsFromContext(ctx).MatchedRoutePath()
}
