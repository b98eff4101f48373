package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"fiche-backend/internal/shared/storage/object"
)

type entry struct {
	data       []byte
	createdAt  time.Time
	modifiedAt time.Time
}

// Store keeps objects in process memory.
type Store struct {
	mu      sync.RWMutex
	objects map[string]entry
	now     func() time.Time
}

// New creates an empty in-memory store. A nil clock defaults to time.Now.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{objects: make(map[string]entry), now: now}
}

func (s *Store) Put(ctx context.Context, key string, contentType string, r io.Reader) (object.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return object.ObjectInfo{}, err
	}
	if err := object.ValidateKey(key); err != nil {
		return object.ObjectInfo{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return object.ObjectInfo{}, fmt.Errorf("read body: %w", err)
	}

	now := s.now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.objects[key]
	if !ok {
		e.createdAt = now
	}
	e.data = data
	e.modifiedAt = now
	s.objects[key] = e
	return s.info(key, e), nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := object.ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	e, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, object.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(e.data)), nil
}

func (s *Store) List(ctx context.Context) ([]object.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]object.ObjectInfo, 0, len(s.objects))
	for key, e := range s.objects {
		out = append(out, s.info(key, e))
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Store) info(key string, e entry) object.ObjectInfo {
	return object.ObjectInfo{
		Key:        key,
		Location:   "memory://" + key,
		Size:       int64(len(e.data)),
		CreatedAt:  e.createdAt,
		ModifiedAt: e.modifiedAt,
	}
}

var _ object.ObjectStore = (*Store)(nil)
