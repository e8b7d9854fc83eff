package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkghttp"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkglog"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgmetric"
	"github.com/SparrowtheDon/email-checker/internal/verifier/entity"
)

// ErrUpstream wraps every failure to obtain a usable answer from the API.
var ErrUpstream = errors.New("verification api call failed")

// DefaultBaseURL is the public ZeroBounce v2 endpoint.
const DefaultBaseURL = "https://api.zerobounce.net/v2"

// Observer records upstream call outcomes.
type Observer interface {
	ObserveVerification(outcome string, elapsed time.Duration)
}

type ZeroBounceConfig struct {
	APIKey    string
	IPAddress string
}

// ZeroBounce calls GET /validate of a ZeroBounce-compatible API.
type ZeroBounce struct {
	client   *pkghttp.Client
	cfg      ZeroBounceConfig
	observer Observer
}

func NewZeroBounce(client *pkghttp.Client, cfg ZeroBounceConfig, observer Observer) *ZeroBounce {
	return &ZeroBounce{
		client:   client,
		cfg:      cfg,
		observer: observer,
	}
}

type validateResponse struct {
	Status    string  `json:"status"`
	SubStatus *string `json:"sub_status"`
}

// Verify asks the API about one email. The returned Result carries the input
// email unchanged and the raw response body.
func (z *ZeroBounce) Verify(ctx context.Context, email string) (entity.Result, error) {
	start := time.Now()
	result, err := z.verify(ctx, email)
	elapsed := time.Since(start)

	outcome := pkgmetric.OutcomeOK
	if err != nil {
		outcome = pkgmetric.OutcomeError
		slog.WarnContext(ctx, "verification call failed",
			"email", pkglog.RedactEmail(email),
			"latency_ms", elapsed.Milliseconds(),
			"error", err,
		)
	}
	if z.observer != nil {
		z.observer.ObserveVerification(outcome, elapsed)
	}

	return result, err
}

func (z *ZeroBounce) verify(ctx context.Context, email string) (entity.Result, error) {
	resp, err := z.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":    z.cfg.APIKey,
			"email":      email,
			"ip_address": z.cfg.IPAddress,
		}).
		Get("/validate")
	if err != nil {
		return entity.Result{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if resp.IsError() {
		return entity.Result{}, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode())
	}

	body := bytes.TrimSpace(resp.Body())

	if len(body) == 0 || body[0] != '{' {
		return entity.Result{}, fmt.Errorf("%w: body is not a json object", ErrUpstream)
	}

	var data validateResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return entity.Result{}, fmt.Errorf("%w: decode body: %w", ErrUpstream, err)
	}

	return entity.Result{
		Email:     email,
		Status:    data.Status,
		SubStatus: data.SubStatus,
		Upstream:  json.RawMessage(body),
	}, nil
}
