package program

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/colorfulnotion/intcode/machine/vmtypes"
	"github.com/colorfulnotion/intcode/vmerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		word  int64
		op    Opcode
		modes [MaxParams]vmtypes.Mode
	}{
		{1, ADD, [MaxParams]vmtypes.Mode{}},
		{101, ADD, [MaxParams]vmtypes.Mode{vmtypes.IMMEDIATE, vmtypes.POSITION, vmtypes.POSITION}},
		{1002, MUL, [MaxParams]vmtypes.Mode{vmtypes.POSITION, vmtypes.IMMEDIATE, vmtypes.POSITION}},
		{3, IN, [MaxParams]vmtypes.Mode{}},
		{203, IN, [MaxParams]vmtypes.Mode{vmtypes.RELATIVE}},
		{104, OUT, [MaxParams]vmtypes.Mode{vmtypes.IMMEDIATE}},
		{1105, JNZ, [MaxParams]vmtypes.Mode{vmtypes.IMMEDIATE, vmtypes.IMMEDIATE}},
		{106, JZ, [MaxParams]vmtypes.Mode{vmtypes.IMMEDIATE}},
		{21107, LT, [MaxParams]vmtypes.Mode{vmtypes.IMMEDIATE, vmtypes.IMMEDIATE, vmtypes.RELATIVE}},
		{108, EQ, [MaxParams]vmtypes.Mode{vmtypes.IMMEDIATE}},
		{209, ARB, [MaxParams]vmtypes.Mode{vmtypes.RELATIVE}},
		{99, HALT, [MaxParams]vmtypes.Mode{}},
	}
	for _, tc := range testCases {
		inst, err := Decode(tc.word)
		require.NoError(t, err, "word %d", tc.word)
		assert.Equal(t, tc.op, inst.Op, "word %d", tc.word)
		assert.Equal(t, tc.modes, inst.Modes, "word %d", tc.word)
	}
}

func TestDecodeFailures(t *testing.T) {
	testCases := []struct {
		word  int64
		err   error
		value int64
	}{
		{10, vmerrors.ErrUnknownOpcode, 10},
		{0, vmerrors.ErrUnknownOpcode, 0},
		{98, vmerrors.ErrUnknownOpcode, 98},
		{-1, vmerrors.ErrUnknownOpcode, -1},
		{301, vmerrors.ErrInvalidMode, 3},
		{10001, vmerrors.ErrImmediateWrite, 3},
		{103, vmerrors.ErrImmediateWrite, 1},
	}
	for _, tc := range testCases {
		_, err := Decode(tc.word)
		require.Error(t, err, "word %d", tc.word)
		assert.ErrorIs(t, err, tc.err, "word %d", tc.word)
		var fault *vmerrors.Fault
		require.ErrorAs(t, err, &fault)
		assert.Equal(t, tc.value, fault.Value, "word %d", tc.word)
		assert.Equal(t, tc.word, fault.Word)
	}
}

func TestDecodeIgnoresExtraModeDigits(t *testing.T) {
	inst, err := Decode(90004)
	require.NoError(t, err)
	assert.Equal(t, OUT, inst.Op)
	assert.Equal(t, vmtypes.POSITION, inst.Modes[0])
}

func TestOpcodeWidth(t *testing.T) {
	assert.Equal(t, int64(4), ADD.Width())
	assert.Equal(t, int64(2), IN.Width())
	assert.Equal(t, int64(3), JZ.Width())
	assert.Equal(t, int64(1), HALT.Width())
	assert.Equal(t, 2, EQ.Writes())
	assert.Equal(t, -1, OUT.Writes())
	assert.Equal(t, "op(42)", Opcode(42).String())
}

func TestParse(t *testing.T) {
	code, err := Parse("1,9,10,3,\n2,3,11,0,99,30,40,50\n")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, code)

	code, err = Parse(" 104, -7 ,99 ")
	require.NoError(t, err)
	assert.Equal(t, []int64{104, -7, 99}, code)

	for _, bad := range []string{"", "  \n", "1,,2", "1,x,99", "1;2"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, vmerrors.ErrMalformedProgram, "%q", bad)
	}
}

func TestLoadAndFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("1002,4,3,4,33\n"), 0o644))

	code, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1002,4,3,4,33", Format(code))

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDisassemble(t *testing.T) {
	code := []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}
	lines := Disassemble(code)
	require.Len(t, lines, 6)

	assert.Equal(t, "     0: add   [9], [10], [3]", lines[0].String())
	assert.Equal(t, "     4: mul   [3], [11], [0]", lines[1].String())
	assert.Equal(t, "     8: halt", lines[2].String())
	assert.Equal(t, "     9: data  30", lines[3].String())
	assert.True(t, lines[5].Data)

	rel := Disassemble([]int64{109, -3, 204, 5, 1105, 1, 0})
	require.Len(t, rel, 3)
	assert.Equal(t, "     0: arb   #-3", rel[0].String())
	assert.Equal(t, "     2: out   [rb+5]", rel[1].String())
	assert.Equal(t, "     4: jnz   #1, #0", rel[2].String())
}

func TestDisassembleTruncatedInstruction(t *testing.T) {
	lines := Disassemble([]int64{1, 0, 0})
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.True(t, l.Data)
	}
}

func TestBasicBlocks(t *testing.T) {
	code := []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}
	blocks := BasicBlocks(code)
	require.Len(t, blocks, 2)
	assert.Equal(t, int64(0), blocks[0].Start)
	assert.Equal(t, int64(9), blocks[0].End)
	assert.Equal(t, TERMINATED, blocks[0].JumpType)
	assert.Equal(t, FALLTHROUGH_JUMP, blocks[1].JumpType)
	assert.Equal(t, int64(12), blocks[1].End)

	branch := BasicBlocks([]int64{1105, 1, 4, 99, 1106, 0, 0})
	require.Len(t, branch, 3)
	assert.Equal(t, CONDITIONAL, branch[0].JumpType)
	assert.Equal(t, int64(4), branch[0].TruePC)
	assert.Equal(t, "block 0..3 (1 instructions, branch -> 4)", branch[0].String())
	assert.Equal(t, TERMINATED, branch[1].JumpType)
	assert.Equal(t, CONDITIONAL, branch[2].JumpType)
}
