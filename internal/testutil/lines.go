package testutil

import (
	"github.com/ghemawat/stream"
)

// CountNonEmptyLines counts the lines in a text file that contain at least
// one non-whitespace character, e.g. to get a CSV fixture's expected record
// count without duplicating the scanner logic convert.ToBlocks itself uses.
func CountNonEmptyLines(path string) (int, error) {
	n := 0
	err := stream.ForEach(stream.Sequence(
		stream.ReadLines(path),
		stream.Grep(`\S`),
	), func(string) { n++ })
	if err != nil {
		return 0, err
	}
	return n, nil
}
