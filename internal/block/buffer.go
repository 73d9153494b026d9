package block

import "github.com/cockroachdb/errors"

// Manager owns a fixed-size pool of identically-sized blocks, addressed by
// index, for the lifetime of a single join or convert execution. It never
// grows or shrinks; spec.md requires N >= 1 (N >= 2 for BNLJ, enforced by the
// join package, not here).
type Manager struct {
	buffers   []*Block
	blockSize int
}

// NewManager pre-allocates n blocks of the given size.
func NewManager(n, blockSize int) (*Manager, error) {
	if n == 0 {
		return nil, errors.Newf("block: buffer manager requires at least 1 buffer, got %d", errors.Safe(n))
	}
	buffers := make([]*Block, n)
	for i := range buffers {
		buffers[i] = New(blockSize)
	}
	return &Manager{buffers: buffers, blockSize: blockSize}, nil
}

// Count returns the number of blocks in the pool.
func (m *Manager) Count() int { return len(m.buffers) }

// Get returns the block at idx, panicking if idx is out of range — the same
// contract spec.md assigns to BufferManager.get.
func (m *Manager) Get(idx int) *Block {
	if idx < 0 || idx >= len(m.buffers) {
		panic(errors.AssertionFailedf("block: buffer index %d out of range [0,%d)", errors.Safe(idx), errors.Safe(len(m.buffers))))
	}
	return m.buffers[idx]
}

// ClearAll clears every block in the pool.
func (m *Manager) ClearAll() {
	for _, b := range m.buffers {
		b.Clear()
	}
}

// MemoryUsage reports N * block_size, the spec's memory accounting for a
// buffer pool of this size.
func (m *Manager) MemoryUsage() int64 {
	return int64(len(m.buffers)) * int64(m.blockSize)
}

// BlockSize returns the fixed size of every block owned by the manager.
func (m *Manager) BlockSize() int { return m.blockSize }
