package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockjoin/engine/internal/block"
	"github.com/blockjoin/engine/internal/storage"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.dat")

	writeStats := storage.NewStats()
	w, err := storage.CreateWriter(path, writeStats)
	require.NoError(t, err)

	b := block.New(32)
	require.True(t, b.Append([]byte("one")))
	require.True(t, b.Append([]byte("two")))
	ok, err := w.WriteBlock(b)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, w.Close())
	require.EqualValues(t, 1, writeStats.BlockWrites())

	readStats := storage.NewStats()
	r, err := storage.OpenReader(path, readStats)
	require.NoError(t, err)
	defer r.Close()

	dst := block.New(32)
	ok, err = r.ReadBlock(dst)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, b.Used(), dst.Used())

	ok, err = r.ReadBlock(dst)
	require.NoError(t, err)
	require.False(t, ok, "second read must hit EOF")
	require.EqualValues(t, 1, readStats.BlockReads())
}

func TestWriteEmptyBlockIsNoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.dat")
	w, err := storage.CreateWriter(path, nil)
	require.NoError(t, err)
	defer w.Close()

	ok, err := w.WriteBlock(block.New(16))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReaderResetRescans(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.dat")
	w, err := storage.CreateWriter(path, nil)
	require.NoError(t, err)
	b := block.New(16)
	require.True(t, b.Append([]byte("x")))
	_, err = w.WriteBlock(b)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := storage.OpenReader(path, nil)
	require.NoError(t, err)
	defer r.Close()

	dst := block.New(16)
	ok, err := r.ReadBlock(dst)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.ReadBlock(dst)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Reset())
	ok, err = r.ReadBlock(dst)
	require.NoError(t, err)
	require.True(t, ok, "after reset, the first block must be readable again")
}

func TestOpenReaderMissingFileFails(t *testing.T) {
	_, err := storage.OpenReader(filepath.Join(t.TempDir(), "missing.dat"), nil)
	require.Error(t, err)
}

func TestShortFinalBlockIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.dat")
	w, err := storage.CreateWriter(path, nil)
	require.NoError(t, err)

	full := block.New(16)
	require.True(t, full.Append([]byte("0123456789")))
	_, err = w.WriteBlock(full)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := storage.OpenReader(path, nil)
	require.NoError(t, err)
	defer r.Close()

	dst := block.New(16)
	ok, err := r.ReadBlock(dst)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, full.Used(), dst.Used())
}
