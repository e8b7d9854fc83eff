package pkghttp

import (
	"time"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkglog"
	"github.com/go-resty/resty/v2"
)

// HeaderCorrelationID is forwarded on every outgoing request that carries a
// correlation ID in its context.
const HeaderCorrelationID = "X-Correlation-ID"

// DefaultTimeout bounds a single outgoing request when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := pkghttp.NewClient(pkghttp.Options{BaseURL: "https://api.example.com"})
//	resp, err := client.R().SetContext(ctx).Get("/users")
type Client struct {
	*resty.Client
}

// NewClient creates a Client with its own connection pool and state.
//
// Retries are left disabled; callers decide how to recover from a failure.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if opts.BaseURL != "" {
		rc.SetBaseURL(opts.BaseURL)
	}
	if opts.UserAgent != "" {
		rc.SetHeader("User-Agent", opts.UserAgent)
	}

	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if cid, ok := pkglog.CorrelationID(req.Context()); ok {
			req.SetHeader(HeaderCorrelationID, cid)
		}
		return nil
	})

	return &Client{Client: rc}
}
