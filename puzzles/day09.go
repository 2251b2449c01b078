package puzzles

import (
	"context"
	"fmt"

	"github.com/colorfulnotion/intcode/config"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/vmerrors"
)

// Boost runs the BOOST program in the given mode. Test mode (1) reports
// malfunctioning opcodes before the keycode, so more than one output is an
// error.
func Boost(code []int64, mode int64, opts ...machine.Option) (int64, error) {
	vm := machine.NewVM(code, append(opts, machine.WithInput(mode))...)
	ev, err := vm.Run()
	if err != nil {
		return 0, err
	}
	if ev != machine.EventHalted {
		return 0, fmt.Errorf("boost stopped with %s at ip %d", ev, vm.IP())
	}
	out := vm.Output()
	switch len(out) {
	case 0:
		return 0, fmt.Errorf("%w: boost mode %d", vmerrors.ErrNoOutput, mode)
	case 1:
		return out[0], nil
	default:
		return 0, fmt.Errorf("boost reported malfunctioning opcodes %v", out[:len(out)-1])
	}
}

func SolveDay09(ctx context.Context, code []int64, cfg *config.Config) (Answers, error) {
	opts := machineOptions(cfg)
	p1, err := Boost(code, 1, opts...)
	if err != nil {
		return Answers{}, err
	}
	p2, err := Boost(code, 2, opts...)
	if err != nil {
		return Answers{}, err
	}
	return Answers{Day: 9, Part1: p1, Part2: p2}, nil
}
