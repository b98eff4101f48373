package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fiche-backend/internal/shared/storage/object"
)

func TestPutOpenRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "fiches")
	store := New(dir)
	ctx := context.Background()

	payload := []byte("PK\x03\x04 docx bytes")
	info, err := store.Put(ctx, "a.docx", "application/octet-stream", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(payload)) {
		t.Fatalf("expected size %d, got %d", len(payload), info.Size)
	}
	if !filepath.IsAbs(info.Location) || filepath.Base(info.Location) != "a.docx" {
		t.Fatalf("unexpected location %q", info.Location)
	}

	rc, err := store.Open(ctx, "a.docx")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch")
	}
}

func TestPutTruncatesExisting(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	if _, err := store.Put(ctx, "x.txt", "text/plain", strings.NewReader("long original body")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "x.txt", "text/plain", strings.NewReader("short")); err != nil {
		t.Fatalf("put: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(store.Dir(), "x.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "short" {
		t.Fatalf("expected truncated body, got %q", data)
	}
}

func TestOpenMissingIsNotFound(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "missing.docx")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "secret.txt"), []byte("s"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := New(filepath.Join(root, "fiches"))
	for _, key := range []string{"../secret.txt", "..", "/etc/passwd"} {
		if _, err := store.Open(context.Background(), key); !errors.Is(err, object.ErrInvalidKey) {
			t.Fatalf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "does-not-exist"))
	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
}

func TestListSortedSkipsDirectories(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	for _, name := range []string{"b.docx", "a.docx"} {
		if _, err := store.Put(ctx, name, "", strings.NewReader(name)); err != nil {
			t.Fatalf("put %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(store.Dir(), "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].Key != "a.docx" || items[1].Key != "b.docx" {
		t.Fatalf("unexpected list: %#v", items)
	}
	if items[0].Size != int64(len("a.docx")) {
		t.Fatalf("unexpected size %d", items[0].Size)
	}
}
