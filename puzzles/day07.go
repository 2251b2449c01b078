package puzzles

import (
	"context"

	"github.com/colorfulnotion/intcode/config"
	"github.com/colorfulnotion/intcode/network"
)

var (
	linearPhases   = []int64{0, 1, 2, 3, 4}
	feedbackPhases = []int64{5, 6, 7, 8, 9}
)

func SolveDay07(ctx context.Context, code []int64, cfg *config.Config) (Answers, error) {
	opts := networkOptions(cfg)
	p1, _, err := network.MaxSignal(ctx, code, linearPhases, false, opts...)
	if err != nil {
		return Answers{}, err
	}
	p2, _, err := network.MaxSignal(ctx, code, feedbackPhases, true, opts...)
	if err != nil {
		return Answers{}, err
	}
	return Answers{Day: 7, Part1: p1, Part2: p2}, nil
}
