// Package diagnostics provides human-facing reporting on top of storage and
// join: block-file inspection utilities (grounded on the original
// FileManager's countRecords/countBlocks/printFileInfo trio), a run-stats
// table, a hash-join bucket-size histogram, and a per-block-I/O latency
// histogram.
package diagnostics

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/blockjoin/engine/internal/block"
	"github.com/blockjoin/engine/internal/record"
	"github.com/blockjoin/engine/internal/storage"
)

// FileInfo summarises a block file without interpreting its schema.
type FileInfo struct {
	Path        string
	BlockCount  int64
	RecordCount int64
}

// Inspect opens path read-only (its own reads are never counted against a
// join's or conversion's statistics) and counts its blocks and records.
func Inspect(path string, blockSize int) (FileInfo, error) {
	r, err := storage.OpenReader(path, nil)
	if err != nil {
		return FileInfo{}, errors.Wrapf(err, "diagnostics: inspecting %q", path)
	}
	defer r.Close()

	info := FileInfo{Path: path}
	b := block.New(blockSize)
	for {
		ok, err := r.ReadBlock(b)
		if err != nil {
			return FileInfo{}, err
		}
		if !ok {
			break
		}
		info.BlockCount++
		c := b.Cursor()
		for c.HasNext() {
			if _, err := record.Decode(c.Next()); err != nil {
				continue
			}
			info.RecordCount++
		}
	}
	return info, nil
}

// InspectWithLatency behaves like Inspect but also times every ReadBlock
// call against rec, so a slow-disk block file is visible in the recorded
// distribution rather than just its aggregate counts.
func InspectWithLatency(path string, blockSize int, rec *LatencyRecorder) (FileInfo, error) {
	r, err := storage.OpenReader(path, nil)
	if err != nil {
		return FileInfo{}, errors.Wrapf(err, "diagnostics: inspecting %q", path)
	}
	defer r.Close()

	info := FileInfo{Path: path}
	b := block.New(blockSize)
	for {
		start := time.Now()
		ok, err := r.ReadBlock(b)
		rec.Observe(time.Since(start))
		if err != nil {
			return FileInfo{}, err
		}
		if !ok {
			break
		}
		info.BlockCount++
		c := b.Cursor()
		for c.HasNext() {
			if _, err := record.Decode(c.Next()); err != nil {
				continue
			}
			info.RecordCount++
		}
	}
	return info, nil
}
