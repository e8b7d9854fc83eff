package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgrouter"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkguid"
)

func newTestRouter(t *testing.T) *pkgrouter.Router {
	t.Helper()
	r := pkgrouter.NewRouter(pkguid.NewUUID())
	if err := Register(r); err != nil {
		t.Fatalf("register: %v", err)
	}
	return r
}

func TestServesIndex(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/", "/some/unknown/page"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<title>Email Checker</title>") {
			t.Fatalf("%s: expected index page", path)
		}
	}
}

func TestServesStaticAsset(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/script.js", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "javascript") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "/export") {
		t.Fatalf("expected script body")
	}
}

func TestMissingStaticAsset(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/nope.js", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUnknownPostIsNotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("expected json error body, got %s", rec.Body.String())
	}
}
