package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgerror"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgrouter"
	"github.com/SparrowtheDon/email-checker/internal/verifier/entity"
)

const maxJSONBytes int64 = 64 << 10

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

type HTTPEndpoint struct {
	uc uc
}

// Verify answers with the verification API's JSON body as it was received.
func (h *HTTPEndpoint) Verify(ctx context.Context, r *http.Request) (any, error) {
	var req VerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	result, err := h.uc.Verify(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if len(result.Upstream) == 0 {
		return toHTTPResult(result), nil
	}

	return pkgrouter.File{ContentType: contentTypeJSON, Data: result.Upstream}, nil
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	reader, cleanup, err := extractCSVReader(r)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := h.uc.Bulk(ctx, reader)
	if err != nil {
		return nil, err
	}

	resp := make([]VerificationResult, 0, len(result.Results))
	for _, res := range result.Results {
		resp = append(resp, toHTTPResult(res))
	}

	return resp, nil
}

func (h *HTTPEndpoint) Export(ctx context.Context, r *http.Request) (any, error) {
	var req []VerificationResult
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	results := make([]entity.Result, 0, len(req))
	for _, item := range req {
		results = append(results, item.toEntity())
	}

	out, err := h.uc.Export(ctx, results)
	if err != nil {
		return nil, err
	}

	return pkgrouter.File{Name: out.FileName, ContentType: contentTypeCSV, Data: out.Data}, nil
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return pkgerror.NewInvalidFormat()
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return pkgerror.NewTooLarge(err)
		}
		return pkgerror.NewInvalidFormat()
	}

	return nil
}

func extractCSVReader(r *http.Request) (io.Reader, func(), error) {
	mediaType := ""
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			mediaType = strings.ToLower(parsed)
		}
	}

	switch mediaType {
	case "multipart/form-data":
		return extractMultipartFile(r)
	case "text/csv":
		if r.Body == nil || r.Body == http.NoBody {
			return nil, func() {}, errFileRequired()
		}
		return r.Body, func() {}, nil
	default:
		return nil, func() {}, errFileRequired()
	}
}

func extractMultipartFile(r *http.Request) (io.Reader, func(), error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, func() {}, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, func() {}, errFileRequired()
			}
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, func() {}, pkgerror.NewTooLarge(err)
			}
			return nil, func() {}, pkgerror.NewInvalidFormat()
		}

		if part.FormName() == "file" {
			return part, func() { _ = part.Close() }, nil
		}
		_ = part.Close()
	}
}

func errFileRequired() error {
	return pkgerror.NewInvalidInput(errors.New("No file uploaded."))
}
