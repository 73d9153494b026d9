// Package testutil supplies small test helpers: a unified text diff, a
// pretty-printed struct diff for assertion failures, and a line counter for
// text fixtures built on ghemawat/stream. No other package imports it yet;
// only its own tests exercise it.
package testutil

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/pmezard/go-difflib/difflib"
)

// DiffStrings renders a unified diff between two multi-line strings, for
// tests that compare rendered text (a diagnostics table, a CLI transcript)
// rather than structured values.
func DiffStrings(want, got string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// DiffValues renders a field-by-field pretty diff between two Go values of
// the same type, for assertion failures on structs (schema.Part,
// schema.JoinResult) where a plain %+v dump is unreadable.
func DiffValues(want, got interface{}) string {
	diffs := pretty.Diff(want, got)
	if len(diffs) == 0 {
		return ""
	}
	out := ""
	for _, d := range diffs {
		out += fmt.Sprintln(d)
	}
	return out
}
