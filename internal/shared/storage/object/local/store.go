package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"fiche-backend/internal/shared/storage/object"
)

// Store implements ObjectStore using a flat directory on the local filesystem.
type Store struct {
	baseDir string
}

// New creates a new local object store rooted at baseDir. The directory is
// created lazily on the first Put.
func New(baseDir string) *Store {
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}
	return &Store{baseDir: baseDir}
}

// Dir returns the absolute root directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// Put writes the reader to baseDir/key, creating or truncating the file.
func (s *Store) Put(ctx context.Context, key string, _ string, r io.Reader) (object.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return object.ObjectInfo{}, err
	}
	if err := object.ValidateKey(key); err != nil {
		return object.ObjectInfo{}, err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return object.ObjectInfo{}, fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(s.baseDir, key)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return object.ObjectInfo{}, fmt.Errorf("open file: %w", err)
	}

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		return object.ObjectInfo{}, fmt.Errorf("write body: %w", err)
	}
	if err := f.Close(); err != nil {
		return object.ObjectInfo{}, fmt.Errorf("close file: %w", err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return object.ObjectInfo{}, fmt.Errorf("stat: %w", err)
	}
	return object.ObjectInfo{
		Key:        key,
		Location:   fullPath,
		Size:       written,
		CreatedAt:  info.ModTime(),
		ModifiedAt: info.ModTime(),
	}, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := object.ValidateKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, object.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// List returns the regular files directly under baseDir in name order.
// A missing directory yields an empty list.
func (s *Store) List(ctx context.Context) ([]object.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []object.ObjectInfo{}, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}

	out := make([]object.ObjectInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		out = append(out, object.ObjectInfo{
			Key:        entry.Name(),
			Location:   filepath.Join(s.baseDir, entry.Name()),
			Size:       info.Size(),
			CreatedAt:  info.ModTime(),
			ModifiedAt: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

var _ object.ObjectStore = (*Store)(nil)
