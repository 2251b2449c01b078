package puzzles

import (
	"context"
	"fmt"

	"github.com/colorfulnotion/intcode/config"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/vmerrors"
)

// Diagnostic runs the program with a single system ID. Every output but
// the last is a test result and must be zero; the last is the diagnostic
// code.
func Diagnostic(code []int64, systemID int64, opts ...machine.Option) (int64, error) {
	vm := machine.NewVM(code, append(opts, machine.WithInput(systemID))...)
	ev, err := vm.Run()
	if err != nil {
		return 0, err
	}
	if ev != machine.EventHalted {
		return 0, fmt.Errorf("diagnostic stopped with %s at ip %d", ev, vm.IP())
	}
	out := vm.Output()
	if len(out) == 0 {
		return 0, fmt.Errorf("%w: system %d", vmerrors.ErrNoOutput, systemID)
	}
	for i, v := range out[:len(out)-1] {
		if v != 0 {
			return 0, fmt.Errorf("diagnostic test %d failed with %d", i, v)
		}
	}
	return out[len(out)-1], nil
}

func SolveDay05(ctx context.Context, code []int64, cfg *config.Config) (Answers, error) {
	opts := machineOptions(cfg)
	p1, err := Diagnostic(code, 1, opts...)
	if err != nil {
		return Answers{}, err
	}
	p2, err := Diagnostic(code, 5, opts...)
	if err != nil {
		return Answers{}, err
	}
	return Answers{Day: 5, Part1: p1, Part2: p2}, nil
}
