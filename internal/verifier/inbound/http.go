package inbound

import (
	"context"
	"io"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgrouter"
	"github.com/SparrowtheDon/email-checker/internal/verifier/entity"
	"github.com/SparrowtheDon/email-checker/internal/verifier/usecase"
)

// DefaultMaxUploadBytes caps an upload when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

type uc interface {
	Verify(ctx context.Context, email string) (entity.Result, error)
	Bulk(ctx context.Context, r io.Reader) (usecase.BulkResult, error)
	Export(ctx context.Context, results []entity.Result) (usecase.ExportResult, error)
}

type Config struct {
	// MaxUploadBytes caps the /upload request body. Zero means DefaultMaxUploadBytes.
	MaxUploadBytes int64
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, cfg Config) {
	end := &HTTPEndpoint{uc: uc}

	limit := cfg.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}

	r.POST("/verify", end.Verify, pkgrouter.MiddlewareBodyLimit(maxJSONBytes))
	r.POST("/upload", end.Upload, pkgrouter.MiddlewareBodyLimit(limit))
	r.POST("/export", end.Export, pkgrouter.MiddlewareBodyLimit(limit))
}
