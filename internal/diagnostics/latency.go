package diagnostics

import (
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// LatencyRecorder accumulates per-block-I/O latencies into an HDR
// histogram, recorded in nanoseconds from 1ns up to 10 seconds with two
// significant figures of precision — enough resolution to spot an
// occasional slow block read without the bookkeeping cost of storing every
// sample.
type LatencyRecorder struct {
	hist *hdrhistogram.Histogram
}

// NewLatencyRecorder returns a ready-to-use recorder.
func NewLatencyRecorder() *LatencyRecorder {
	return &LatencyRecorder{hist: hdrhistogram.New(1, 10*time.Second.Nanoseconds(), 2)}
}

// Observe records a single block I/O's duration.
func (l *LatencyRecorder) Observe(d time.Duration) {
	_ = l.hist.RecordValue(d.Nanoseconds())
}

// PrintSummary writes the recorded distribution's percentiles.
func (l *LatencyRecorder) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "block I/O latency: p50=%s p95=%s p99=%s max=%s (n=%d)\n",
		time.Duration(l.hist.ValueAtQuantile(50)),
		time.Duration(l.hist.ValueAtQuantile(95)),
		time.Duration(l.hist.ValueAtQuantile(99)),
		time.Duration(l.hist.Max()),
		l.hist.TotalCount())
}
