package pkgrouter

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
)

const maxPanicFrames = 16

//nolint:contextcheck // the request context is the one to log with
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:err113,errorlint // this must compare directly
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			slog.ErrorContext(r.Context(), "panic on the server",
				"because", rvr,
				"route", matchedRoutePath(r),
				"stack", appFrames(debug.Stack()),
			)

			if r.Header.Get("Connection") == "Upgrade" {
				return
			}
			writeJSON(w, errorResponse{Error: "Internal server error"}, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

// appFrames reduces a goroutine dump to the "internal/<pkg>/<file>.go:<line>"
// locations of this module, innermost first.
func appFrames(stack []byte) []string {
	var frames []string
	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, "/internal/")
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}

		loc := line[idx+1:]
		if end := strings.IndexByte(loc, ' '); end != -1 {
			loc = loc[:end]
		}
		if strings.HasPrefix(loc, "internal/pkg/pkgrouter/middleware_recover.go") {
			continue
		}

		frames = append(frames, loc)
		if len(frames) == maxPanicFrames {
			break
		}
	}
	return frames
}
