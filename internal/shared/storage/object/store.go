package object

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrNotFound is returned when a key has no stored object.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for keys that would escape the store root.
	ErrInvalidKey = errors.New("invalid object key")
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key        string
	Location   string
	Size       int64
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// ObjectStore defines the contract for saving, retrieving and listing binary objects
// in a single flat namespace.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (ObjectInfo, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context) ([]ObjectInfo, error)
}
