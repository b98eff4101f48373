package health

import (
	"testing"
	"time"
)

func TestStatus(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	svc := NewService(func() time.Time { return time.Date(2026, time.October, 18, 11, 41, 7, 0, paris) })

	got := svc.Status()
	if got.Status != "ok" {
		t.Fatalf("unexpected status %q", got.Status)
	}
	if got.Timestamp != "2026-10-18T09:41:07Z" {
		t.Fatalf("unexpected timestamp %q", got.Timestamp)
	}
}
