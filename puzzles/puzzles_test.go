package puzzles

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/colorfulnotion/intcode/config"
	"github.com/colorfulnotion/intcode/vmerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echo writes back the first value it reads
var echo = []int64{3, 0, 4, 0, 99}

func TestRunNounVerb(t *testing.T) {
	code := []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}
	v, err := RunNounVerb(code, 9, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), v)
	assert.Equal(t, int64(9), code[1], "source program must not be patched")
}

func TestFindNounVerb(t *testing.T) {
	code := []int64{1, 0, 0, 0, 99, 1000, 2000, 3000}
	got, err := FindNounVerb(code, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(607), got)

	_, err = FindNounVerb(code, 7777777)
	assert.ErrorIs(t, err, vmerrors.ErrNoAnswer)
}

func TestDiagnostic(t *testing.T) {
	v, err := Diagnostic([]int64{104, 0, 104, 0, 104, 77, 99}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(77), v)

	_, err = Diagnostic([]int64{104, 0, 104, 3, 104, 77, 99}, 1)
	assert.ErrorContains(t, err, "diagnostic test 1 failed")

	_, err = Diagnostic([]int64{99}, 1)
	assert.ErrorIs(t, err, vmerrors.ErrNoOutput)

	v, err = Diagnostic([]int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestSolveDay05(t *testing.T) {
	ans, err := SolveDay05(context.Background(), echo, config.Default())
	require.NoError(t, err)
	assert.Equal(t, Answers{Day: 5, Part1: 1, Part2: 5}, ans)
}

func TestBoost(t *testing.T) {
	_, err := Boost([]int64{104, 203, 104, 9, 99}, 1)
	assert.ErrorContains(t, err, "malfunctioning opcodes [203]")

	_, err = Boost([]int64{3, 0, 42}, 1)
	assert.ErrorIs(t, err, vmerrors.ErrUnknownOpcode)
}

func TestSolveDay07(t *testing.T) {
	// linear: signal*10 + phase; feedback: the last amplifier's first output
	code := []int64{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	ans, err := SolveDay07(context.Background(), code, config.Default())
	require.NoError(t, err)
	assert.Equal(t, int64(43210), ans.Part1)
	assert.Equal(t, int64(98765), ans.Part2)
}

func TestSolveDay23(t *testing.T) {
	nic := []int64{
		3, 100,
		1005, 100, 11,
		104, 255, 104, 1, 104, 5,
		3, 101,
		1008, 101, -1, 102,
		1005, 102, 11,
		3, 103,
		104, 255, 4, 101, 4, 103,
		1105, 1, 11,
	}
	cfg := config.Default()
	cfg.Network.NICCount = 3
	ans, err := SolveDay23(context.Background(), nic, cfg)
	require.NoError(t, err)
	assert.Equal(t, Answers{Day: 23, Part1: 5, Part2: 5}, ans)
}

func TestSolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boost.txt")
	require.NoError(t, os.WriteFile(path, []byte("3,0,4,0,99\n"), 0644))

	cfg := config.Default()
	cfg.Inputs["day09"] = path
	ans, err := Solve(context.Background(), 9, cfg)
	require.NoError(t, err)
	assert.Equal(t, Answers{Day: 9, Part1: 1, Part2: 2}, ans)
	assert.Equal(t, "day 09: part1=1 part2=2", ans.String())

	_, err = Solve(context.Background(), 4, cfg)
	assert.Error(t, err)

	cfg.Inputs["day02"] = filepath.Join(dir, "missing.txt")
	_, err = Solve(context.Background(), 2, cfg)
	assert.Error(t, err)

	assert.Equal(t, []int{2, 5, 7, 9, 23}, Days())
}
