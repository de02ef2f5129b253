package blob

import (
	"context"
	"io"
)

// Store opens named data files (CSV tables, model documents).
type Store interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
