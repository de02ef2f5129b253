package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"adRecoDashboard/domain"
)

// LocalStore reads files below a root directory.
type LocalStore struct {
	root string
}

var _ Store = (*LocalStore)(nil)

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid file name %q", name)
	}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.MissingDataFileError{Resource: name}
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}
