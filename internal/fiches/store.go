package fiches

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"fiche-backend/internal/extract"
	"fiche-backend/internal/shared/storage/object"
)

const (
	contentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	contentTypePDF  = "application/pdf"
	contentTypeText = "text/plain"
)

// Store persists fiches under generated filenames in a flat object namespace.
type Store struct {
	objects object.ObjectStore
	now     func() time.Time
}

// NewStore wraps an object store. A nil clock defaults to time.Now.
func NewStore(objects object.ObjectStore, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{objects: objects, now: now}
}

// Save writes data under a filename derived from title and the current time.
func (s *Store) Save(ctx context.Context, data []byte, title string, ext string) (SavedFile, error) {
	filename := Filename(title, ext, s.now())
	info, err := s.objects.Put(ctx, filename, ContentTypeFor(filename), bytes.NewReader(data))
	if err != nil {
		return SavedFile{}, fmt.Errorf("save fiche %s: %w", filename, err)
	}
	return SavedFile{
		Filename: filename,
		Path:     info.Location,
		Size:     info.Size,
	}, nil
}

// Retrieve reads a stored fiche in full. Unsafe names fail with
// ErrInvalidFilename and absent ones with ErrNotFound, before any read.
func (s *Store) Retrieve(ctx context.Context, filename string) (RetrievedFile, error) {
	if err := ValidateFilename(filename); err != nil {
		return RetrievedFile{}, err
	}

	rc, err := s.objects.Open(ctx, filename)
	if err != nil {
		switch {
		case errors.Is(err, object.ErrNotFound):
			return RetrievedFile{}, ErrNotFound
		case errors.Is(err, object.ErrInvalidKey):
			return RetrievedFile{}, ErrInvalidFilename
		}
		return RetrievedFile{}, fmt.Errorf("open fiche %s: %w", filename, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return RetrievedFile{}, fmt.Errorf("read fiche %s: %w", filename, err)
	}
	return RetrievedFile{
		Filename:    filename,
		ContentType: ContentTypeFor(filename),
		Data:        data,
	}, nil
}

// List returns one record per stored fiche in name order; an empty or
// missing store yields an empty slice.
func (s *Store) List(ctx context.Context) ([]StoredFileRecord, error) {
	items, err := s.objects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fiches: %w", err)
	}
	out := make([]StoredFileRecord, 0, len(items))
	for _, item := range items {
		out = append(out, StoredFileRecord{
			Filename: item.Key,
			Path:     item.Location,
			Size:     item.Size,
			Created:  item.CreatedAt,
			Modified: item.ModifiedAt,
			Type:     fileType(item.Key),
		})
	}
	return out, nil
}

// Text reads a stored fiche back as plain text. Unsupported payloads fail with
// extract.ErrUnsupported.
func (s *Store) Text(ctx context.Context, filename string) (string, error) {
	if err := ValidateFilename(filename); err != nil {
		return "", err
	}
	text, err := extract.ExtractText(ctx, s.objects, filename, ContentTypeFor(filename))
	if err != nil {
		switch {
		case errors.Is(err, object.ErrNotFound):
			return "", ErrNotFound
		case errors.Is(err, object.ErrInvalidKey):
			return "", ErrInvalidFilename
		}
		return "", err
	}
	return text, nil
}

// ValidateFilename confines a client-supplied name to the store root.
func ValidateFilename(filename string) error {
	if strings.TrimSpace(filename) == "" || filepath.IsAbs(filename) {
		return ErrInvalidFilename
	}
	if err := object.ValidateKey(filename); err != nil {
		return ErrInvalidFilename
	}
	return nil
}

// ContentTypeFor infers the download content type from the extension.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return contentTypeDOCX
	case ".pdf":
		return contentTypePDF
	default:
		return contentTypeText
	}
}

// fileType is the text after the last dot, or the whole name without one.
func fileType(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i+1:]
	}
	return filename
}
