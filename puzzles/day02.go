package puzzles

import (
	"context"
	"fmt"

	"github.com/colorfulnotion/intcode/config"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/vmerrors"
)

// GravityAssistTarget is the output the noun/verb search looks for.
const GravityAssistTarget = 19690720

// RunNounVerb patches addresses 1 and 2, runs to halt and returns address 0.
func RunNounVerb(code []int64, noun, verb int64, opts ...machine.Option) (int64, error) {
	vm := machine.NewVM(code, opts...)
	if err := vm.Patch(1, noun); err != nil {
		return 0, err
	}
	if err := vm.Patch(2, verb); err != nil {
		return 0, err
	}
	ev, err := vm.Run()
	if err != nil {
		return 0, err
	}
	if ev != machine.EventHalted {
		return 0, fmt.Errorf("noun=%d verb=%d stopped with %s", noun, verb, ev)
	}
	return vm.Peek(0)
}

// FindNounVerb searches noun and verb in 0..99 for the pair that leaves
// target at address 0 and returns 100*noun+verb. Pairs that fault are
// skipped.
func FindNounVerb(code []int64, target int64, opts ...machine.Option) (int64, error) {
	for noun := int64(0); noun <= 99; noun++ {
		for verb := int64(0); verb <= 99; verb++ {
			v, err := RunNounVerb(code, noun, verb, opts...)
			if err != nil {
				continue
			}
			if v == target {
				return 100*noun + verb, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: target %d", vmerrors.ErrNoAnswer, target)
}

func SolveDay02(ctx context.Context, code []int64, cfg *config.Config) (Answers, error) {
	opts := machineOptions(cfg)
	p1, err := RunNounVerb(code, 12, 2, opts...)
	if err != nil {
		return Answers{}, fmt.Errorf("1202 program alarm: %w", err)
	}
	p2, err := FindNounVerb(code, GravityAssistTarget, opts...)
	if err != nil {
		return Answers{}, err
	}
	return Answers{Day: 2, Part1: p1, Part2: p2}, nil
}
