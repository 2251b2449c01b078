package puzzles

import (
	"context"

	"github.com/colorfulnotion/intcode/config"
	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/machine/vmtypes"
	"github.com/colorfulnotion/intcode/network"
)

// SolveDay23 boots the NIC network once. Part 1 is the Y of the first
// packet sent to the sink; part 2 is the first Y the sink delivers to
// address 0 twice in a row.
func SolveDay23(ctx context.Context, code []int64, cfg *config.Config) (Answers, error) {
	n := vmtypes.DefaultNICCount
	if cfg != nil {
		n = cfg.Network.NICCount
	}
	nw := network.NewNetwork(code, n, networkOptions(cfg)...)
	res, err := nw.Run(ctx)
	if err != nil {
		log.Debug(log.PuzzleMonitoring, "network state", "tree", nw.Describe())
		return Answers{}, err
	}
	return Answers{Day: 23, Part1: res.FirstSinkY, Part2: res.RepeatedY}, nil
}
