package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgerror"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkglog"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgroutine"
	"github.com/SparrowtheDon/email-checker/internal/verifier/entity"
)

// Bulk runs one bulk job over an uploaded CSV file.
//
// The upload is spooled into the store and removed again before Bulk
// returns, whatever the outcome. Rows without an email are skipped and not
// reported. A failed verification becomes an error marker in the row's slot,
// so the result set always follows input order.
func (u *Usecase) Bulk(ctx context.Context, r io.Reader) (BulkResult, error) {
	if u.uploads == nil || u.verifier == nil || u.jobID == nil {
		return BulkResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	job := entity.Job{
		ID:        u.jobID.Generate(),
		StartedAt: u.clock.Now().Unix(),
	}
	jobAttr := slog.Int64("job_id", job.ID)

	src := &uploadReader{r: r}
	path, err := u.uploads.Save(ctx, strconv.FormatInt(job.ID, 10), src)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return BulkResult{}, pkgerror.NewTooLarge(err)
		case src.err != nil:
			// the client sent a body that ended early or was malformed
			slog.WarnContext(ctx, "upload body unreadable", jobAttr, "error", src.err)
			return BulkResult{}, pkgerror.NewInvalidFormat()
		}
		return BulkResult{}, pkgerror.NewServer(err)
	}
	defer u.cleanup(ctx, job.ID, path)

	records, total, err := u.readRecords(ctx, path)
	if err != nil {
		slog.WarnContext(ctx, "bulk job rejected", jobAttr, "error", err)
		if errors.Is(err, ErrInvalidCSV) {
			return BulkResult{}, pkgerror.NewInvalidFile(err)
		}
		return BulkResult{}, pkgerror.NewServer(err)
	}

	job.TotalRows = total
	job.Skipped = total - len(records)
	slog.InfoContext(ctx, "bulk job started", jobAttr, "rows", job.TotalRows, "skipped", job.Skipped, "concurrency", u.concurrency)

	results := u.verifyAll(ctx, records)
	if err := ctx.Err(); err != nil {
		slog.WarnContext(ctx, "bulk job interrupted", jobAttr, "error", err)
		return BulkResult{}, pkgerror.NewTimeout(err)
	}

	for _, res := range results {
		if res.Failed() {
			job.Failed++
		}
	}
	job.Verified = len(results) - job.Failed
	job.EndedAt = u.clock.Now().Unix()

	if u.observer != nil {
		u.observer.ObserveBulk(job.Verified, job.Skipped, job.Failed)
	}
	slog.InfoContext(ctx, "bulk job finished", jobAttr,
		"verified", job.Verified,
		"failed", job.Failed,
		"skipped", job.Skipped,
		"duration_s", job.EndedAt-job.StartedAt,
	)

	return BulkResult{Job: job, Results: results}, nil
}

func (u *Usecase) readRecords(ctx context.Context, path string) ([]entity.EmailRecord, int, error) {
	file, err := u.uploads.Open(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close upload", "path", path, "error", err)
		}
	}()

	var records []entity.EmailRecord
	total := 0
	for row, err := range Rows(file) {
		if err != nil {
			return nil, total, err
		}

		total++
		email, ok := row.Email()
		if !ok {
			continue
		}
		records = append(records, entity.EmailRecord{Email: email, Line: row.Line})
	}

	return records, total, nil
}

func (u *Usecase) verifyAll(ctx context.Context, records []entity.EmailRecord) []entity.Result {
	results := make([]entity.Result, len(records))
	workers := pkgroutine.NewManager(u.concurrency)

	for i, rec := range records {
		results[i] = entity.ErrorResult(rec.Email)
	}

	for i, rec := range records {
		scheduled := workers.Go(ctx, func(ctx context.Context) error {
			res, err := u.verifier.Verify(ctx, rec.Email)
			if err != nil {
				slog.WarnContext(ctx, "bulk row verification failed",
					"line", rec.Line,
					"email", pkglog.RedactEmail(rec.Email),
					"error", err,
				)
				return nil
			}
			results[i] = res
			return nil
		})
		if !scheduled {
			break
		}
	}

	//nolint:errcheck // tasks never return errors; failures stay in their slot
	workers.Wait()

	return results
}

func (u *Usecase) cleanup(ctx context.Context, jobID int64, path string) {
	if err := u.uploads.Remove(context.WithoutCancel(ctx), path); err != nil {
		slog.ErrorContext(ctx, "failed to remove upload", "job_id", jobID, "path", path, "error", err)
	}
}

// uploadReader remembers the first read error of the client body so that a
// failed Save can be told apart from a failure on the server's side.
type uploadReader struct {
	r   io.Reader
	err error
}

func (u *uploadReader) Read(p []byte) (int, error) {
	n, err := u.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && u.err == nil {
		u.err = err
	}
	return n, err
}
