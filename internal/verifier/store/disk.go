package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgerror"
)

// DiskStore spools uploads into a directory. Every Save creates a file with a
// unique name, so concurrent jobs never share one.
type DiskStore struct {
	dir string
}

// NewDiskStore returns a store rooted at dir, creating it when needed.
// An empty dir means the OS temp directory.
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory uploads are written to.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save copies r into a new file and returns its path. On failure nothing is
// left behind.
func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	f, err := os.CreateTemp(s.dir, "upload-"+sanitize(name)+"-*.csv")
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	_, copyErr := io.Copy(f, readerWithContext(ctx, r))
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		//nolint:errcheck,gosec // the copy error is the one worth reporting
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}

// Open opens a file written by Save.
func (s *DiskStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	if err := s.owns(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pkgerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Remove deletes a file written by Save.
func (s *DiskStore) Remove(_ context.Context, path string) error {
	if err := s.owns(path); err != nil {
		return err
	}

	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return pkgerror.ErrNotFound
	}

	return err
}

func (s *DiskStore) owns(path string) error {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		return fmt.Errorf("path %q is outside the upload dir", path)
	}
	return nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
