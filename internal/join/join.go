// Package join implements the two join executors spec.md specifies over the
// PART/PARTSUPP block-file schema: Block Nested Loops Join (bnlj.go) and
// Hash Join (hashjoin.go), plus the multithreaded/prefetching stubs (stub.go)
// that delegate to BNLJ per spec.md §4.10.
package join

import (
	"github.com/cockroachdb/errors"

	"github.com/blockjoin/engine/internal/block"
	"github.com/blockjoin/engine/internal/record"
	"github.com/blockjoin/engine/internal/schema"
	"github.com/blockjoin/engine/internal/storage"
)

// validatePair fails unless {a,b} is exactly {PART, PARTSUPP}, in either
// order — the only schema pair either join executor supports.
func validatePair(a, b schema.Kind) error {
	switch {
	case a == schema.Part && b == schema.PartSupp:
		return nil
	case a == schema.PartSupp && b == schema.Part:
		return nil
	default:
		return errors.Newf("join: unsupported schema pair (%s, %s); only PART/PARTSUPP is supported", a, b)
	}
}

// keyedRecord is a decoded record.Record paired with its extracted PARTKEY
// and its typed interpretation, so the match loop never has to re-run a
// typed schema decode for the same record twice.
type keyedRecord struct {
	partKey  int32
	part     schema.Part
	partSupp schema.PartSupp
}

// decodeBlock decodes every frame in blk into record.Record values. A
// malformed frame can't reach here (block.Cursor already stops at the first
// garbled size), but a frame whose field encoding is internally inconsistent
// is logged and skipped, not fatal.
func decodeBlock(blk *block.Block) []record.Record {
	var out []record.Record
	c := blk.Cursor()
	for c.HasNext() {
		rec, err := record.Decode(c.Next())
		if err != nil {
			storage.LogSkip("frame decode", "", err)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// decodeTyped interprets recs as kind, logging and dropping any record whose
// fields don't parse (spec.md §7: decode failures are logged and skipped,
// never fatal).
func decodeTyped(recs []record.Record, kind schema.Kind) []keyedRecord {
	out := make([]keyedRecord, 0, len(recs))
	for _, rec := range recs {
		switch kind {
		case schema.Part:
			p, err := schema.PartFromRecord(rec)
			if err != nil {
				storage.LogSkip("PART decode", rec.Field(0), err)
				continue
			}
			out = append(out, keyedRecord{partKey: p.PartKey, part: p})
		case schema.PartSupp:
			ps, err := schema.PartSuppFromRecord(rec)
			if err != nil {
				storage.LogSkip("PARTSUPP decode", rec.Field(0), err)
				continue
			}
			out = append(out, keyedRecord{partKey: ps.PartKey, partSupp: ps})
		}
	}
	return out
}

// buildResult always places the PART side in JoinResult.Part and the
// PARTSUPP side in JoinResult.PartSupp, regardless of which table was the
// outer/build side — spec.md §4.8 step 3.
func buildResult(part keyedRecord, partSupp keyedRecord) schema.JoinResult {
	return schema.JoinResult{Part: part.part, PartSupp: partSupp.partSupp}
}

// appendOutput appends rec to out, flushing out through writer and retrying
// once if the block is full. A record that still doesn't fit an empty block
// is an oversized-record fatal error (spec.md §4.8 step 4).
func appendOutput(out *block.Block, writer *storage.TableWriter, rec record.Record) error {
	payload := rec.Payload()
	if out.Append(payload) {
		return nil
	}
	if _, err := writer.WriteBlock(out); err != nil {
		return err
	}
	out.Clear()
	if !out.Append(payload) {
		return errors.Newf("join: result record of %d bytes does not fit an empty %d-byte block", len(payload), out.Cap())
	}
	return nil
}
