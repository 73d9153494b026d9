package storage

import (
	"fmt"
	"os"

	"github.com/cockroachdb/redact"
)

// LogSkip prints a diagnostic for a decode failure that spec.md §7 says must
// be logged and the offending record skipped, never treated as fatal. reason
// is safe to print verbatim (a field name, an index); raw is the untrusted
// input that produced the failure (a CSV line, a malformed field) and is
// marked redactable in the built message. The markers are stripped before
// printing, so the line written to stderr contains raw in full.
func LogSkip(reason string, raw string, err error) {
	msg := redact.Sprintf("skipping record: %s: %v (input: %s)", redact.SafeString(reason), err, raw)
	fmt.Fprintln(os.Stderr, msg.StripMarkers())
}
