package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestWriteEmitsJSONLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Error("fiche.generate.failed", map[string]any{
		"title": "Chef de Projet",
		"error": errors.New("boom"),
		"msg":   "overridden",
	})

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["level"] != "error" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if payload["msg"] != "fiche.generate.failed" {
		t.Fatalf("reserved msg key was overwritten: %v", payload["msg"])
	}
	if payload["error"] != "boom" {
		t.Fatalf("expected error string, got %v", payload["error"])
	}
	if payload["title"] != "Chef de Projet" {
		t.Fatalf("unexpected title: %v", payload["title"])
	}
}
