package storage

import (
	"bytes"
	"testing"

	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/vmerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suspended(t *testing.T) *machine.VM {
	t.Helper()
	// echo twice, then far write
	vm := machine.NewVM([]int64{3, 0, 4, 0, 3, 0, 4, 0, 1101, 1, 2, 1 << 30, 99}, machine.WithName("echo"), machine.WithInput(7))
	ev, err := vm.Run()
	require.NoError(t, err)
	require.Equal(t, machine.EventAwaitingInput, ev)
	return vm
}

func TestSnapshotEncodingIsCanonical(t *testing.T) {
	vm := suspended(t)
	a, err := MarshalSnapshot(vm.Snapshot())
	require.NoError(t, err)
	b, err := MarshalSnapshot(vm.Clone().Snapshot())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))

	_, err = UnmarshalSnapshot([]byte{0xff, 0x00})
	assert.Error(t, err)
}

func TestSnapshotStore(t *testing.T) {
	st, err := OpenSnapshotStore("")
	require.NoError(t, err)
	defer st.Close()

	vm := suspended(t)
	require.NoError(t, st.Save("mid", vm.Snapshot()))
	require.NoError(t, st.Save("again", vm.Snapshot()))
	assert.Error(t, st.Save("", vm.Snapshot()))

	names, err := st.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"again", "mid"}, names)

	s, err := st.Load("mid")
	require.NoError(t, err)
	assert.Equal(t, "echo", s.Name)
	assert.Equal(t, int64(4), s.IP)
	assert.Equal(t, []int64{7}, s.Output)

	// resume the stored machine
	r := machine.Restore(s, machine.WithInput(9))
	ev, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, machine.EventHalted, ev)
	assert.Equal(t, []int64{7, 9}, r.Output())
	v, err := r.Peek(1 << 30)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	require.NoError(t, st.Delete("mid"))
	_, err = st.Load("mid")
	assert.ErrorIs(t, err, vmerrors.ErrSnapshotNotFound)
	assert.ErrorIs(t, st.Delete("mid"), vmerrors.ErrSnapshotNotFound)
}

func TestSnapshotStoreFault(t *testing.T) {
	st, err := OpenSnapshotStore("")
	require.NoError(t, err)
	defer st.Close()

	vm := machine.NewVM([]int64{1, -4, 0, 0})
	_, err = vm.Run()
	require.Error(t, err)
	require.NoError(t, st.Save("crash", vm.Snapshot()))

	s, err := st.Load("crash")
	require.NoError(t, err)
	r := machine.Restore(s)
	assert.Equal(t, machine.FAULT, r.Status())
	assert.ErrorIs(t, r.Err(), vmerrors.ErrInvalidAddress)

	var f *vmerrors.Fault
	require.ErrorAs(t, r.Err(), &f)
	assert.Equal(t, int64(-4), f.Value)
}
