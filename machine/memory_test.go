package machine

import (
	"testing"

	"github.com/colorfulnotion/intcode/vmerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReadWrite(t *testing.T) {
	code := []int64{1, 2, 3}
	m := NewMemory(code)
	code[0] = 100
	v, err := m.Read(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v, "memory must own its copy")

	v, err = m.Read(5000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
	assert.Equal(t, int64(3), m.Len(), "reads never grow memory")

	require.NoError(t, m.Write(10, 7))
	assert.Equal(t, int64(11), m.Len())
	for addr := int64(3); addr < 10; addr++ {
		v, _ := m.Read(addr)
		assert.Zero(t, v)
	}
	v, _ = m.Read(10)
	assert.Equal(t, int64(7), v)
}

func TestMemoryNegativeAddress(t *testing.T) {
	m := NewMemory(nil)
	_, err := m.Read(-1)
	assert.ErrorIs(t, err, vmerrors.ErrInvalidAddress)
	err = m.Write(-2, 1)
	assert.ErrorIs(t, err, vmerrors.ErrInvalidAddress)

	var f *vmerrors.Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, int64(-2), f.Value)
}

func TestMemorySparse(t *testing.T) {
	m := NewMemory([]int64{9})
	far := int64(denseLimit) * 4
	require.NoError(t, m.Write(far, 5))
	require.NoError(t, m.Write(far-10, 6))

	assert.Equal(t, 1, len(m.Dense()))
	assert.Equal(t, []int64{far - 10, far}, m.SparseAddrs())
	assert.Equal(t, far+1, m.Len())

	v, _ := m.Read(far)
	assert.Equal(t, int64(5), v)

	c := m.Clone()
	require.NoError(t, c.Write(far, 0))
	v, _ = m.Read(far)
	assert.Equal(t, int64(5), v)
}
