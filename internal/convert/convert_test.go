package convert_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockjoin/engine/internal/block"
	"github.com/blockjoin/engine/internal/convert"
	"github.com/blockjoin/engine/internal/record"
	"github.com/blockjoin/engine/internal/schema"
	"github.com/blockjoin/engine/internal/storage"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertPartHappyPath(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "part.tbl",
		"1|A|m|b|t|4|box|1.5|c\n2|B|m|b|t|4|box|2.5|c\n")
	out := filepath.Join(dir, "part.dat")

	n, err := convert.ToBlocks(csv, out, schema.Part, block.DefaultSize, nil)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	r, err := storage.OpenReader(out, nil)
	require.NoError(t, err)
	defer r.Close()

	b := block.New(block.DefaultSize)
	ok, err := r.ReadBlock(b)
	require.NoError(t, err)
	require.True(t, ok)

	c := b.Cursor()
	var partKeys []string
	for c.HasNext() {
		rec, err := record.Decode(c.Next())
		require.NoError(t, err)
		partKeys = append(partKeys, rec.Field(0))
	}
	require.Equal(t, []string{"1", "2"}, partKeys)
}

func TestConvertSkipsEmptyLines(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "part.tbl", "\n1|A|m|b|t|4|box|1.5|c\n\n")
	out := filepath.Join(dir, "part.dat")

	n, err := convert.ToBlocks(csv, out, schema.Part, block.DefaultSize, nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestConvertSkipsMalformedLineButKeepsGoing(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "part.tbl",
		"1|A|m|b|t|4|box|1.5|c\nbad|A|m|b|t|x|box|1.5|c\n3|C|m|b|t|4|box|3.5|c\n")
	out := filepath.Join(dir, "part.dat")

	n, err := convert.ToBlocks(csv, out, schema.Part, block.DefaultSize, nil)
	require.NoError(t, err)
	require.Equal(t, 2, n, "malformed line must be skipped, not counted, without aborting")
}

func TestConvertOversizedRecordFails(t *testing.T) {
	dir := t.TempDir()
	huge := make([]byte, 200)
	for i := range huge {
		huge[i] = 'x'
	}
	csv := writeCSV(t, dir, "part.tbl", "1|"+string(huge)+"|m|b|t|4|box|1.5|c\n")
	out := filepath.Join(dir, "part.dat")

	// A block size smaller than the record's serialised frame forces the
	// retry-after-flush path to fail.
	_, err := convert.ToBlocks(csv, out, schema.Part, 64, nil)
	require.Error(t, err)
}

func TestConvertPartSupp(t *testing.T) {
	dir := t.TempDir()
	csv := writeCSV(t, dir, "partsupp.tbl", "1|10|5|1.5|c\n1|20|3|2.5|c\n")
	out := filepath.Join(dir, "partsupp.dat")

	n, err := convert.ToBlocks(csv, out, schema.PartSupp, block.DefaultSize, nil)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
