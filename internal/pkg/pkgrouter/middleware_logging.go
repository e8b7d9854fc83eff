package pkgrouter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkglog"
)

const maxLoggedBodyBytes = 64 * 1024

// maxLoggedRequestBytes caps how much of a request body is read ahead for
// logging. The remainder is left on the wire for the handler and its limits.
const maxLoggedRequestBytes = 8 * 1024

//nolint:gochecknoglobals // global for fast reuse
var sensitiveKeys = map[string]struct{}{
	"password":         {},
	"new_password":     {},
	"current_password": {},
	"access_token":     {},
	"refresh_token":    {},
	"authorization":    {},
	"cookie":           {},
	"api_key":          {},
	"x-api-key":        {},
}

//nolint:gochecknoglobals // global for fast reuse
var emailKeys = map[string]struct{}{
	"email":   {},
	"address": {},
}

func maskHeaders(headers http.Header) http.Header {
	result := headers.Clone()
	for key := range result {
		if _, found := sensitiveKeys[strings.ToLower(key)]; found {
			result.Set(key, "***")
		}
	}
	return result
}

func maskData(v any) any {
	switch val := v.(type) {
	case map[string]any:
		masked := make(map[string]any, len(val))
		for k, v2 := range val {
			key := strings.ToLower(k)
			if _, found := sensitiveKeys[key]; found {
				masked[k] = "***"
				continue
			}
			if _, found := emailKeys[key]; found {
				if str, ok := v2.(string); ok {
					masked[k] = pkglog.RedactEmail(str)
					continue
				}
			}
			masked[k] = maskData(v2)
		}
		return masked
	case []any:
		res := make([]any, len(val))
		for i, v2 := range val {
			res[i] = maskData(v2)
		}
		return res
	default:
		return v
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	body   *bytes.Buffer
	capped bool
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	if w.body != nil && !w.capped && len(p) > 0 {
		remaining := maxLoggedBodyBytes - w.body.Len()
		if remaining > 0 {
			if len(p) > remaining {
				w.body.Write(p[:remaining])
				w.capped = true
			} else {
				w.body.Write(p)
			}
		} else {
			w.capped = true
		}
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *statusRecorder) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

//nolint:err113 // it use dynamic error
func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	if p, ok := w.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}
	return http.ErrNotSupported
}

func matchedRoutePath(r *http.Request) string {
	if pattern := MatchedRoute(r.Context()); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

func parseAndMaskBody(contentType string, body []byte) any {
	if len(body) == 0 {
		return nil
	}

	var jsonBody any
	if err := json.Unmarshal(body, &jsonBody); err == nil {
		return maskData(jsonBody)
	}

	if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
		values, err := url.ParseQuery(string(body))
		if err == nil {
			masked := make(map[string]any, len(values))
			for k, v := range values {
				if _, found := sensitiveKeys[strings.ToLower(k)]; found {
					masked[k] = "***"
					continue
				}
				if len(v) == 1 {
					masked[k] = v[0]
				} else {
					masked[k] = v
				}
			}
			return masked
		}
	}

	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	if len(body) > maxLoggedBodyBytes {
		return string(body[:maxLoggedBodyBytes]) + "...(truncated)"
	}
	return string(body)
}

// isStreamedBody reports whether a body is a file transfer.
// File transfers are neither buffered nor logged.
func isStreamedBody(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "multipart/") || strings.HasPrefix(ct, "text/csv")
}

// bodyReadCloser replays a consumed prefix before the rest of the original
// body and closes the original.
type bodyReadCloser struct {
	io.Reader
	io.Closer
}

// peekBody reads at most limit+1 bytes of body and returns them together with
// a body that yields the same bytes again followed by whatever is unread.
// A result longer than limit means the body did not fit.
func peekBody(body io.ReadCloser, limit int64) ([]byte, io.ReadCloser) {
	//nolint:errcheck // a read error resurfaces to the handler from body
	head, _ := io.ReadAll(io.LimitReader(body, limit+1))
	return head, bodyReadCloser{
		Reader: io.MultiReader(bytes.NewReader(head), body),
		Closer: body,
	}
}

func middlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := matchedRoutePath(r)
		start := time.Now()

		var reqBody any
		if isStreamedBody(r.Header.Get("Content-Type")) {
			reqBody = "<file upload omitted>"
		} else if r.Body != nil {
			var head []byte
			head, r.Body = peekBody(r.Body, maxLoggedRequestBytes)
			if len(head) > maxLoggedRequestBytes {
				// a cut JSON document cannot be masked, so none of it is logged
				reqBody = "<body larger than log limit omitted>"
			} else {
				reqBody = parseAndMaskBody(r.Header.Get("Content-Type"), head)
			}
		}

		slog.InfoContext(
			r.Context(),
			"request received",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"headers", maskHeaders(r.Header),
			"body", reqBody,
		)

		rec := &statusRecorder{ResponseWriter: w, body: &bytes.Buffer{}}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		var respBody any
		if isStreamedBody(rec.Header().Get("Content-Type")) {
			respBody = "<file download omitted>"
		} else if rec.body != nil {
			var respJSON any
			if err := json.Unmarshal(rec.body.Bytes(), &respJSON); err == nil {
				respBody = maskData(respJSON)
			} else if utf8.Valid(rec.body.Bytes()) {
				respBody = rec.body.String()
			} else if rec.body.Len() > 0 {
				respBody = "<binary body omitted>"
			}
			if rec.capped {
				respBody = map[string]any{
					"body":      respBody,
					"truncated": true,
				}
			}
		}

		slog.InfoContext(
			r.Context(),
			"response sent",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", rec.bytes,
			"latency_ms", time.Since(start).Milliseconds(),
			"body", respBody,
		)
	})
}
