package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	generationStartedTotal   atomic.Uint64
	generationCompletedTotal atomic.Uint64
	generationFailedTotal    atomic.Uint64
	renderFallbackTotal      atomic.Uint64
	downloadsTotal           atomic.Uint64

	completionDuration = newHistogram([]float64{500, 1000, 2500, 5000, 10000, 20000, 30000, 60000, 120000})
)

// IncGenerationStarted counts a generate request that passed validation.
func IncGenerationStarted() {
	generationStartedTotal.Add(1)
}

// IncGenerationCompleted counts a fiche persisted successfully.
func IncGenerationCompleted() {
	generationCompletedTotal.Add(1)
}

// IncGenerationFailed counts a generation aborted by the completion call or storage.
func IncGenerationFailed() {
	generationFailedTotal.Add(1)
}

// IncRenderFallback counts documents produced by the fallback encoder.
func IncRenderFallback() {
	renderFallbackTotal.Add(1)
}

// IncDownloads counts served downloads.
func IncDownloads() {
	downloadsTotal.Add(1)
}

// ObserveCompletionDurationMs records a completion call duration in milliseconds.
func ObserveCompletionDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	completionDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "fiche_generation_started_total", "Fiche generations started", generationStartedTotal.Load())
	writeCounter(&buf, "fiche_generation_completed_total", "Fiche generations persisted", generationCompletedTotal.Load())
	writeCounter(&buf, "fiche_generation_failed_total", "Fiche generations failed", generationFailedTotal.Load())
	writeCounter(&buf, "fiche_render_fallback_total", "Documents rendered by the fallback encoder", renderFallbackTotal.Load())
	writeCounter(&buf, "fiche_downloads_total", "Fiche downloads served", downloadsTotal.Load())
	writeHistogram(&buf, "completion_duration_ms", "Completion call duration in milliseconds", completionDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe adds value to the first bucket whose bound holds it.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

// writeHistogram emits cumulative buckets; counts hold per-bucket (non-cumulative) tallies.
func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
