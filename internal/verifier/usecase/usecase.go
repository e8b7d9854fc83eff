package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgerror"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkguid"
	"github.com/SparrowtheDon/email-checker/internal/verifier/entity"
)

//go:generate mockgen -source=usecase.go -destination=mock_usecase_test.go -package=usecase

type Verifier interface {
	Verify(ctx context.Context, email string) (entity.Result, error)
}

// UploadStore keeps an uploaded file for the lifetime of one bulk job.
type UploadStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
}

type Observer interface {
	ObserveBulk(verified, skipped, failed int)
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Verifier Verifier
	Uploads  UploadStore
	Observer Observer
	Clock    Clock
	JobID    pkguid.NumberID

	// Concurrency is the number of rows a bulk job verifies at once.
	// Values below 1 mean one row at a time.
	Concurrency int
}

type Usecase struct {
	verifier    Verifier
	uploads     UploadStore
	observer    Observer
	clock       Clock
	jobID       pkguid.NumberID
	concurrency int
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	concurrency := dep.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Usecase{
		verifier:    dep.Verifier,
		uploads:     dep.Uploads,
		observer:    dep.Observer,
		clock:       clock,
		jobID:       dep.JobID,
		concurrency: concurrency,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Verify checks a single address. Blank input is a validation error and an
// API failure surfaces as an upstream error.
func (u *Usecase) Verify(ctx context.Context, email string) (entity.Result, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return entity.Result{}, pkgerror.NewInvalidInput(errors.New("email is required"))
	}

	if u.verifier == nil {
		return entity.Result{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	result, err := u.verifier.Verify(ctx, email)
	if err != nil {
		return entity.Result{}, pkgerror.NewUpstream(err)
	}

	return result, nil
}

// Export renders a result set handed in by the caller as CSV.
func (u *Usecase) Export(_ context.Context, results []entity.Result) (ExportResult, error) {
	if len(results) == 0 {
		return ExportResult{}, pkgerror.NewInvalidInput(errors.New("No results to download."))
	}

	return ExportResult{
		FileName: ExportFileName,
		Data:     ToCSV(results),
	}, nil
}
