// Package benchreport wraps golang.org/x/perf/benchstat to compare two
// `go test -bench` output files — the before/after comparison the
// bench-report CLI subcommand exists to print.
package benchreport

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/perf/benchstat"
)

// Compare reads the benchmark output files at paths (in order — the first
// is the baseline) and writes a benchstat comparison table to w.
func Compare(w io.Writer, paths ...string) error {
	if len(paths) == 0 {
		return errors.Newf("benchreport: at least one benchmark output file is required")
	}

	var c benchstat.Collection
	c.Alpha = 0.05
	c.AddGeoMean = true

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "benchreport: opening %q", path)
		}
		err = c.AddFile(path, f)
		f.Close()
		if err != nil {
			return errors.Wrapf(err, "benchreport: parsing %q", path)
		}
	}

	tables := c.Tables()
	benchstat.FormatText(w, tables)
	return nil
}
