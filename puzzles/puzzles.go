// Package puzzles holds the per-day drivers that load a program, run one or
// more machines over it and report the two answers.
package puzzles

import (
	"context"
	"fmt"
	"sort"

	"github.com/colorfulnotion/intcode/config"
	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/machine/program"
	"github.com/colorfulnotion/intcode/network"
)

// Answers are the two results of one day.
type Answers struct {
	Day   int
	Part1 int64
	Part2 int64
}

func (a Answers) String() string {
	return fmt.Sprintf("day %02d: part1=%d part2=%d", a.Day, a.Part1, a.Part2)
}

// Solver computes both answers for a program.
type Solver func(ctx context.Context, code []int64, cfg *config.Config) (Answers, error)

var solvers = map[int]Solver{
	2:  SolveDay02,
	5:  SolveDay05,
	7:  SolveDay07,
	9:  SolveDay09,
	23: SolveDay23,
}

// Days lists the days with a solver, in order.
func Days() []int {
	days := make([]int, 0, len(solvers))
	for d := range solvers {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// Solve loads the configured input for day and runs its solver.
func Solve(ctx context.Context, day int, cfg *config.Config) (Answers, error) {
	solve, ok := solvers[day]
	if !ok {
		return Answers{}, fmt.Errorf("no solver for day %d", day)
	}
	path := cfg.Input(day)
	code, err := program.Load(path)
	if err != nil {
		return Answers{}, err
	}
	log.Debug(log.PuzzleMonitoring, "solving", "day", day, "input", path, "words", len(code))
	ans, err := solve(ctx, code, cfg)
	if err != nil {
		return Answers{}, fmt.Errorf("day %02d: %w", day, err)
	}
	log.Info(log.PuzzleMonitoring, "solved", "day", day, "part1", ans.Part1, "part2", ans.Part2)
	return ans, nil
}

// machineOptions maps the [machine] settings onto engine options.
func machineOptions(cfg *config.Config) []machine.Option {
	if cfg == nil {
		return nil
	}
	return []machine.Option{
		machine.WithTrace(cfg.Machine.Trace),
		machine.WithStepLimit(cfg.Machine.StepLimit),
	}
}

// networkOptions maps the [network] and [machine] settings onto topology
// options.
func networkOptions(cfg *config.Config) []network.Option {
	if cfg == nil {
		return nil
	}
	return []network.Option{
		network.WithMaxRounds(cfg.Network.MaxRounds),
		network.WithIdleRounds(cfg.Network.IdleRounds),
		network.WithSinkAddress(cfg.Network.SinkAddress),
		network.WithMachineOptions(machineOptions(cfg)...),
	}
}
