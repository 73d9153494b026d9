package diagnostics_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blockjoin/engine/internal/diagnostics"
)

func TestLatencyRecorderSummary(t *testing.T) {
	r := diagnostics.NewLatencyRecorder()
	r.Observe(1 * time.Millisecond)
	r.Observe(2 * time.Millisecond)
	r.Observe(10 * time.Millisecond)

	var buf bytes.Buffer
	r.PrintSummary(&buf)
	require.Contains(t, buf.String(), "block I/O latency")
}
