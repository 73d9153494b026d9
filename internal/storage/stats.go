package storage

import "sync/atomic"

// Stats is the process-local I/O and join counter block spec.md calls
// "Statistics": block_reads, block_writes, output_records, elapsed_time, and
// memory_usage. Readers and writers increment their own counters on every
// successful block-granular I/O; join executors populate the rest during
// Execute (output records per emitted row, memory usage once known, elapsed
// time on return).
//
// Fields are atomic so a Stats can be shared between a reader and a writer
// (or, via the stub executors in internal/join, between goroutines) without
// a separate lock, matching spec.md §5's "mutated from a single thread in
// practice, but the counter itself is a simple accumulator."
type Stats struct {
	blockReads     atomic.Int64
	blockWrites    atomic.Int64
	outputRecords  atomic.Int64
	elapsedNanos   atomic.Int64
	memoryUsage    atomic.Int64
}

// NewStats returns a zeroed Stats block.
func NewStats() *Stats { return &Stats{} }

func (s *Stats) IncBlockReads()  { s.blockReads.Add(1) }
func (s *Stats) IncBlockWrites() { s.blockWrites.Add(1) }
func (s *Stats) AddOutputRecords(n int64) { s.outputRecords.Add(n) }
func (s *Stats) SetElapsed(nanos int64)   { s.elapsedNanos.Store(nanos) }
func (s *Stats) SetMemoryUsage(bytes int64) { s.memoryUsage.Store(bytes) }

func (s *Stats) BlockReads() int64    { return s.blockReads.Load() }
func (s *Stats) BlockWrites() int64   { return s.blockWrites.Load() }
func (s *Stats) OutputRecords() int64 { return s.outputRecords.Load() }
func (s *Stats) ElapsedNanos() int64  { return s.elapsedNanos.Load() }
func (s *Stats) MemoryUsage() int64   { return s.memoryUsage.Load() }

// Snapshot is an immutable copy of a Stats block, suitable for handing to
// internal/diagnostics or internal/metrics without sharing the live counters.
type Snapshot struct {
	BlockReads     int64
	BlockWrites    int64
	OutputRecords  int64
	ElapsedNanos   int64
	MemoryUsage    int64
}

// Snapshot captures the current values of every counter.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		BlockReads:    s.BlockReads(),
		BlockWrites:   s.BlockWrites(),
		OutputRecords: s.OutputRecords(),
		ElapsedNanos:  s.ElapsedNanos(),
		MemoryUsage:   s.MemoryUsage(),
	}
}
