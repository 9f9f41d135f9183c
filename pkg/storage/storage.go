package storage

import (
	"context"
	"io"
)

// BlobStore persists uploaded media bytes under opaque keys. Open returns a
// seekable reader so callers can serve byte ranges.
type BlobStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadSeekCloser, int64, error)
	Remove(ctx context.Context, key string) error
}
