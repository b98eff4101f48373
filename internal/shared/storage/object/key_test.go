package object

import (
	"errors"
	"testing"
)

func TestValidateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key string
		ok  bool
	}{
		{key: "fiche_chef_de_projet_2026-10-18_09-41-07-123Z.docx", ok: true},
		{key: "notes.txt", ok: true},
		{key: "", ok: false},
		{key: ".", ok: false},
		{key: "..", ok: false},
		{key: "../secret", ok: false},
		{key: "a/b.docx", ok: false},
		{key: `a\b.docx`, ok: false},
		{key: "/etc/passwd", ok: false},
		{key: "bad\x00.docx", ok: false},
	}

	for _, tt := range tests {
		err := ValidateKey(tt.key)
		if tt.ok && err != nil {
			t.Fatalf("ValidateKey(%q) unexpected error: %v", tt.key, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("ValidateKey(%q) expected ErrInvalidKey, got %v", tt.key, err)
		}
	}
}
