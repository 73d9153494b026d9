package join

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/blockjoin/engine/internal/block"
	"github.com/blockjoin/engine/internal/storage"
	"github.com/blockjoin/engine/internal/schema"
)

// BNLJ is the Block Nested Loops Join executor: spec.md §4.8, the central
// algorithm of this module. It partitions its B-block buffer pool into
// B-1 outer slots and 1 inner slot, loads one outer chunk at a time, decodes
// every record in the chunk into memory, then rescans the entire inner
// table once per chunk, matching on PARTKEY.
type BNLJ struct {
	OuterPath  string
	OuterType  schema.Kind
	InnerPath  string
	InnerType  schema.Kind
	OutputPath string

	BufferSize int // B: total blocks across outer + inner slots, B >= 2.
	BlockSize  int

	stats *storage.Stats
}

// NewBNLJ validates configuration and returns a ready-to-run executor.
func NewBNLJ(outerPath string, outerType schema.Kind, innerPath string, innerType schema.Kind, outputPath string, bufferSize, blockSize int) (*BNLJ, error) {
	if err := validatePair(outerType, innerType); err != nil {
		return nil, err
	}
	if bufferSize < 2 {
		return nil, errors.Newf("bnlj: buffer size must be at least 2 (1 outer slot + 1 inner slot), got %d", bufferSize)
	}
	return &BNLJ{
		OuterPath:  outerPath,
		OuterType:  outerType,
		InnerPath:  innerPath,
		InnerType:  innerType,
		OutputPath: outputPath,
		BufferSize: bufferSize,
		BlockSize:  blockSize,
		stats:      storage.NewStats(),
	}, nil
}

// Stats returns the executor's accumulated I/O and output statistics.
func (j *BNLJ) Stats() *storage.Stats { return j.stats }

// Execute runs the join to completion, writing JoinResult records to
// OutputPath. Per-record decode failures are logged and skipped; only
// open/read/write/oversized-record errors are fatal.
func (j *BNLJ) Execute() error {
	start := time.Now()
	defer func() { j.stats.SetElapsed(time.Since(start).Nanoseconds()) }()
	j.stats.SetMemoryUsage(int64(j.BufferSize) * int64(j.BlockSize))

	outerReader, err := storage.OpenReader(j.OuterPath, j.stats)
	if err != nil {
		return err
	}
	defer outerReader.Close()

	innerReader, err := storage.OpenReader(j.InnerPath, j.stats)
	if err != nil {
		return err
	}
	defer innerReader.Close()

	writer, err := storage.CreateWriter(j.OutputPath, j.stats)
	if err != nil {
		return err
	}
	defer writer.Close()

	outerSlots := j.BufferSize - 1
	buf, err := block.NewManager(outerSlots, j.BlockSize)
	if err != nil {
		return err
	}
	innerSlot := block.New(j.BlockSize)
	outBlock := block.New(j.BlockSize)

	for {
		buf.ClearAll()
		loaded := 0
		var outerRecs []keyedRecord
		for i := 0; i < outerSlots; i++ {
			ok, err := outerReader.ReadBlock(buf.Get(i))
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			loaded++
			outerRecs = append(outerRecs, decodeTyped(decodeBlock(buf.Get(i)), j.OuterType)...)
		}
		if loaded == 0 {
			break // outer table exhausted
		}

		if err := innerReader.Reset(); err != nil {
			return err
		}
		for {
			ok, err := innerReader.ReadBlock(innerSlot)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			innerRecs := decodeTyped(decodeBlock(innerSlot), j.InnerType)

			for _, o := range outerRecs {
				for _, in := range innerRecs {
					if o.partKey != in.partKey {
						continue
					}
					var res schema.JoinResult
					if j.OuterType == schema.Part {
						res = buildResult(o, in)
					} else {
						res = buildResult(in, o)
					}
					j.stats.AddOutputRecords(1)
					if err := appendOutput(outBlock, writer, res.ToRecord()); err != nil {
						return err
					}
				}
			}
		}
	}

	if !outBlock.Empty() {
		if _, err := writer.WriteBlock(outBlock); err != nil {
			return err
		}
	}
	return nil
}
