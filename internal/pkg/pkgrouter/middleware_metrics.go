package pkgrouter

import (
	"net/http"
	"time"
)

// RequestObserver records the outcome of a served request.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, elapsed time.Duration)
}

// MiddlewareMetrics reports every request to obs, labeled by matched route
// rather than raw path so label cardinality stays bounded.
func MiddlewareMetrics(obs RequestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}

			route := MatchedRoute(r.Context())
			if route == "" {
				route = unmatchedRoute
			}

			obs.ObserveRequest(route, r.Method, status, time.Since(start))
		})
	}
}
