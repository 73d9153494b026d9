package block_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockjoin/engine/internal/block"
)

func TestAppendMonotonicity(t *testing.T) {
	b := block.New(32)
	require.True(t, b.Empty())

	ok := b.Append([]byte("hello"))
	require.True(t, ok)
	require.Equal(t, 4+5, b.Used())
	require.False(t, b.Empty())

	used := b.Used()
	ok = b.Append(make([]byte, 100))
	require.False(t, ok)
	require.Equal(t, used, b.Used(), "failed append must not change used")
}

func TestAppendFailsWhenOversized(t *testing.T) {
	b := block.New(8)
	// 4 (header) + 8 (payload) > 8 capacity.
	require.False(t, b.Append(make([]byte, 8)))
	require.True(t, b.Empty())
}

func TestClear(t *testing.T) {
	b := block.New(16)
	require.True(t, b.Append([]byte("ab")))
	b.Clear()
	require.True(t, b.Empty())
	require.Equal(t, 16, b.Free())
}

func TestCursorIgnoresTrailingGarbage(t *testing.T) {
	b := block.New(64)
	require.True(t, b.Append([]byte("one")))
	require.True(t, b.Append([]byte("two")))

	c := b.Cursor()
	var got []string
	for c.HasNext() {
		got = append(got, string(c.Next()))
	}
	require.Equal(t, []string{"one", "two"}, got)
}

func TestCursorRejectsGarbledSize(t *testing.T) {
	b := block.New(16)
	// Manually poke a record_size of 0, which must be treated as
	// end-of-records, never a panic.
	b.SetUsed(4)
	c := b.Cursor()
	require.False(t, c.HasNext())
}

func TestBufferManagerRejectsZero(t *testing.T) {
	_, err := block.NewManager(0, block.DefaultSize)
	require.Error(t, err)
}

func TestBufferManagerMemoryUsage(t *testing.T) {
	m, err := block.NewManager(10, block.DefaultSize)
	require.NoError(t, err)
	require.EqualValues(t, 10*block.DefaultSize, m.MemoryUsage())
	require.Equal(t, 10, m.Count())
}

func TestBufferManagerGetOutOfRangePanics(t *testing.T) {
	m, err := block.NewManager(2, block.DefaultSize)
	require.NoError(t, err)
	require.Panics(t, func() { m.Get(2) })
}

func TestBufferManagerClearAll(t *testing.T) {
	m, err := block.NewManager(2, 32)
	require.NoError(t, err)
	require.True(t, m.Get(0).Append([]byte("x")))
	m.ClearAll()
	require.True(t, m.Get(0).Empty())
}
