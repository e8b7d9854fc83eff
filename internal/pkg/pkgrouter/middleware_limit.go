package pkgrouter

import "net/http"

// MiddlewareBodyLimit caps the request body at n bytes. Reads past the cap
// fail with *http.MaxBytesError. A non-positive n disables the cap.
func MiddlewareBodyLimit(n int64) Middleware {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
