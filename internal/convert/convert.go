// Package convert implements the text-to-block converter: the only path by
// which a pipe-delimited TPC-H ingest file becomes a block file the join
// engine can read. The join engine itself never reads text.
package convert

import (
	"bufio"
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/blockjoin/engine/internal/block"
	"github.com/blockjoin/engine/internal/record"
	"github.com/blockjoin/engine/internal/schema"
	"github.com/blockjoin/engine/internal/storage"
)

// ToBlocks streams csvPath line by line, parses each non-empty line as
// tableType, and writes the resulting records to blockPath as a block file.
// Malformed lines are logged (via limiter, rate-limited) and skipped, never
// aborting the conversion. An oversized record — one that does not fit even
// an empty block — is fatal, per spec.md §4.7 step 4.
//
// ToBlocks returns the count of successfully converted records.
func ToBlocks(csvPath, blockPath string, tableType schema.Kind, blockSize int, limiter *storage.SkipLimiter) (int, error) {
	in, err := os.Open(csvPath)
	if err != nil {
		return 0, errors.Wrapf(err, "convert: failed to open CSV file %q", csvPath)
	}
	defer in.Close()

	writer, err := storage.CreateWriter(blockPath, nil)
	if err != nil {
		return 0, err
	}
	defer writer.Close()

	out := block.New(blockSize)
	count := 0

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		rec, err := parseLine(tableType, line)
		if err != nil {
			if limiter != nil {
				limiter.Report("parse", line, err)
			} else {
				storage.LogSkip("parse", line, err)
			}
			continue
		}

		payload := rec.Payload()
		if !out.Append(payload) {
			if _, err := writer.WriteBlock(out); err != nil {
				return count, err
			}
			out.Clear()
			if !out.Append(payload) {
				return count, errors.Newf("convert: record of %d bytes does not fit an empty %d-byte block", len(payload), blockSize)
			}
		}
		count++
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return count, errors.Wrap(err, "convert: reading CSV file")
	}

	if !out.Empty() {
		if _, err := writer.WriteBlock(out); err != nil {
			return count, err
		}
	}

	return count, nil
}

func parseLine(tableType schema.Kind, line string) (record.Record, error) {
	switch tableType {
	case schema.Part:
		p, err := schema.PartFromCSV(line)
		if err != nil {
			return record.Record{}, err
		}
		return p.ToRecord(), nil
	case schema.PartSupp:
		ps, err := schema.PartSuppFromCSV(line)
		if err != nil {
			return record.Record{}, err
		}
		return ps.ToRecord(), nil
	default:
		return record.Record{}, errors.Newf("convert: unknown table type %q", tableType)
	}
}
