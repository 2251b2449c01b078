package machine

import (
	"github.com/colorfulnotion/intcode/vmerrors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// denseLimit bounds the zero-filled backing slice. Addresses at or beyond it
// live in a sparse map so that a single far write does not allocate the
// whole range below it.
const denseLimit = 1 << 22

// Memory is an auto-growing store of signed integers. Addresses that were
// never written read as zero.
type Memory struct {
	cells  []int64
	sparse map[int64]int64
}

// NewMemory returns a memory initialised with a copy of code.
func NewMemory(code []int64) *Memory {
	return &Memory{
		cells:  slices.Clone(code),
		sparse: make(map[int64]int64),
	}
}

func invalidAddress(addr int64) error {
	return &vmerrors.Fault{Value: addr, Err: vmerrors.ErrInvalidAddress}
}

// Read returns the value at addr.
func (m *Memory) Read(addr int64) (int64, error) {
	if addr < 0 {
		return 0, invalidAddress(addr)
	}
	if addr < int64(len(m.cells)) {
		return m.cells[addr], nil
	}
	return m.sparse[addr], nil
}

// Write stores v at addr, extending the store when addr is past its extent.
func (m *Memory) Write(addr int64, v int64) error {
	if addr < 0 {
		return invalidAddress(addr)
	}
	if addr < int64(len(m.cells)) {
		m.cells[addr] = v
		return nil
	}
	if addr < denseLimit {
		m.grow(addr + 1)
		m.cells[addr] = v
		return nil
	}
	m.sparse[addr] = v
	return nil
}

// grow extends the dense region to n zeroed cells.
func (m *Memory) grow(n int64) {
	old := int64(len(m.cells))
	m.cells = slices.Grow(m.cells, int(n-old))[:n]
	clear(m.cells[old:])
}

// Len is one past the highest address ever written or loaded.
func (m *Memory) Len() int64 {
	n := int64(len(m.cells))
	for addr := range m.sparse {
		if addr >= n {
			n = addr + 1
		}
	}
	return n
}

// Dense returns a copy of the contiguous region starting at address 0.
func (m *Memory) Dense() []int64 {
	return slices.Clone(m.cells)
}

// SparseAddrs returns the far addresses in ascending order.
func (m *Memory) SparseAddrs() []int64 {
	addrs := make([]int64, 0, len(m.sparse))
	for addr := range m.sparse {
		addrs = append(addrs, addr)
	}
	slices.Sort(addrs)
	return addrs
}

// Sparse returns a copy of the far entries.
func (m *Memory) Sparse() map[int64]int64 {
	return maps.Clone(m.sparse)
}

// Clone returns an independent copy.
func (m *Memory) Clone() *Memory {
	return &Memory{
		cells:  slices.Clone(m.cells),
		sparse: maps.Clone(m.sparse),
	}
}
