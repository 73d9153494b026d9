package storage

import (
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/tokenbucket"
)

// SkipLimiter throttles how often a decode-failure diagnostic is actually
// printed, without ever throttling the skip itself or the returned count —
// only stderr noise on a file with many consecutive malformed lines.
type SkipLimiter struct {
	mu      sync.Mutex
	bucket  tokenbucket.TokenBucket
	skipped int64
}

// NewSkipLimiter allows up to ratePerSecond diagnostics per second, with a
// short burst allowance so the first few bad lines in a file are always
// reported immediately.
func NewSkipLimiter(ratePerSecond float64) *SkipLimiter {
	l := &SkipLimiter{}
	l.bucket.Init(tokenbucket.TokensPerSecond(ratePerSecond), tokenbucket.Tokens(5))
	return l
}

// Report logs a decode-failure diagnostic if the token bucket currently has
// budget for it; otherwise it silently counts the skip and moves on.
func (l *SkipLimiter) Report(reason, raw string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.skipped++
	if ok, _ := l.bucket.TryToFulfill(tokenbucket.Tokens(1)); !ok {
		return
	}
	msg := redact.Sprintf("skipping record: %s: %v (input: %s)", redact.SafeString(reason), err, raw)
	fmt.Fprintln(os.Stderr, msg.StripMarkers())
}

// Skipped returns the total number of records reported to this limiter,
// whether or not a diagnostic was actually printed for each.
func (l *SkipLimiter) Skipped() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.skipped
}
