package outbound

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkghttp"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgmetric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveVerification(outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func newClient(t *testing.T, handler http.HandlerFunc) (*ZeroBounce, *recordingObserver) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	obs := &recordingObserver{}
	client := pkghttp.NewClient(pkghttp.Options{BaseURL: srv.URL, Timeout: time.Second})
	return NewZeroBounce(client, ZeroBounceConfig{APIKey: "key-123"}, obs), obs
}

func TestVerifyPassesThroughUpstream(t *testing.T) {
	var gotQuery map[string]string
	zb, obs := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/validate", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{"api_key": q.Get("api_key"), "email": q.Get("email")}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"address":"test@example.com","status":"valid","sub_status":null,"free_email":false}`))
	})

	result, err := zb.Verify(context.Background(), "test@example.com")
	require.NoError(t, err)

	assert.Equal(t, "test@example.com", result.Email)
	assert.Equal(t, "valid", result.Status)
	assert.Nil(t, result.SubStatus)
	assert.JSONEq(t, `{"address":"test@example.com","status":"valid","sub_status":null,"free_email":false}`, string(result.Upstream))
	assert.Equal(t, map[string]string{"api_key": "key-123", "email": "test@example.com"}, gotQuery)
	assert.Equal(t, []string{pkgmetric.OutcomeOK}, obs.outcomes)
}

func TestVerifyEncodesEmail(t *testing.T) {
	var rawQuery, decoded string
	zb, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		decoded = r.URL.Query().Get("email")
		_, _ = w.Write([]byte(`{"status":"invalid","sub_status":"mailbox_not_found"}`))
	})

	email := "first+tag&x=1@example.com"
	result, err := zb.Verify(context.Background(), email)
	require.NoError(t, err)

	assert.Equal(t, email, decoded)
	assert.Equal(t, email, result.Email)
	assert.Contains(t, rawQuery, "first%2Btag%26x%3D1%40example.com")
	require.NotNil(t, result.SubStatus)
	assert.Equal(t, "mailbox_not_found", *result.SubStatus)
}

func TestVerifyNonJSONBody(t *testing.T) {
	zb, obs := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := zb.Verify(context.Background(), "a@x.com")
	require.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, []string{pkgmetric.OutcomeError}, obs.outcomes)
}

func TestVerifyNonObjectBody(t *testing.T) {
	zb, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	_, err := zb.Verify(context.Background(), "a@x.com")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestVerifyErrorStatus(t *testing.T) {
	zb, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"bad gateway"}`))
	})

	_, err := zb.Verify(context.Background(), "a@x.com")
	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "502")
}

func TestVerifyConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := pkghttp.NewClient(pkghttp.Options{BaseURL: url, Timeout: time.Second})
	zb := NewZeroBounce(client, ZeroBounceConfig{APIKey: "k"}, nil)

	_, err := zb.Verify(context.Background(), "a@x.com")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestVerifyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"status":"valid"}`))
	}))
	defer srv.Close()

	client := pkghttp.NewClient(pkghttp.Options{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	zb := NewZeroBounce(client, ZeroBounceConfig{}, nil)

	_, err := zb.Verify(context.Background(), "a@x.com")
	require.ErrorIs(t, err, ErrUpstream)
}
