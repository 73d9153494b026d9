package diagnostics

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"

	"github.com/blockjoin/engine/internal/storage"
)

// PrintStats renders a storage.Stats snapshot as a two-column table, the way
// an operator reads a completed run's numbers off a terminal.
func PrintStats(w io.Writer, label string, s storage.Snapshot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{label, "value"})
	table.Append([]string{"block reads", fmt.Sprintf("%d", s.BlockReads)})
	table.Append([]string{"block writes", fmt.Sprintf("%d", s.BlockWrites)})
	table.Append([]string{"output records", fmt.Sprintf("%d", s.OutputRecords)})
	table.Append([]string{"elapsed", time.Duration(s.ElapsedNanos).String()})
	table.Append([]string{"memory usage (bytes)", fmt.Sprintf("%d", s.MemoryUsage)})
	table.Render()
}

// PrintBucketSizeHistogram plots an ASCII line graph of hash-join bucket
// sizes sorted descending, so a lopsided build-side key distribution is
// visible without reaching for an external plotting tool.
func PrintBucketSizeHistogram(w io.Writer, bucketSizes map[int32]int) {
	if len(bucketSizes) == 0 {
		fmt.Fprintln(w, "(no buckets)")
		return
	}
	sizes := make([]int, 0, len(bucketSizes))
	for _, n := range bucketSizes {
		sizes = append(sizes, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	data := make([]float64, len(sizes))
	for i, n := range sizes {
		data[i] = float64(n)
	}
	graph := asciigraph.Plot(data,
		asciigraph.Caption("hash join bucket sizes, descending"),
		asciigraph.Height(10))
	fmt.Fprintln(w, graph)
}
