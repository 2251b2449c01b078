package network

import (
	"context"
	"fmt"

	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/vmerrors"
)

// newAmplifiers loads one instance per phase setting, each with its phase
// as first input, and queues signal on the first.
func newAmplifiers(code []int64, phases []int64, signal int64, o Options) []*machine.VM {
	amps := make([]*machine.VM, len(phases))
	for i, phase := range phases {
		opts := append([]machine.Option{
			machine.WithName(fmt.Sprintf("amp%d", i)),
			machine.WithInput(phase),
		}, o.Machine...)
		amps[i] = machine.NewVM(code, opts...)
	}
	if len(amps) > 0 {
		amps[0].Send(signal)
	}
	return amps
}

// RunPipeline chains one instance per phase setting and returns the last
// value produced by the final instance. Instances are stepped in turn until
// each produces an output or suspends, and every output is routed to the
// next instance immediately. With WithFeedback the final instance feeds the
// first, and the run lasts until every instance has halted.
func RunPipeline(ctx context.Context, code []int64, phases []int64, signal int64, opts ...Option) (int64, error) {
	o := newOptions(opts)
	if len(phases) == 0 {
		return 0, fmt.Errorf("%w: empty pipeline", vmerrors.ErrNoOutput)
	}
	amps := newAmplifiers(code, phases, signal, o)
	last := amps[len(amps)-1]

	for round := 1; ; round++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if o.MaxRounds > 0 && round > o.MaxRounds {
			return 0, fmt.Errorf("%w: pipeline still running after %d rounds", vmerrors.ErrDeadlock, o.MaxRounds)
		}
		progress := false
		halted := 0
		for i, amp := range amps {
			if amp.Status().Terminal() {
				halted++
				continue
			}
			before := amp.Steps()
			ev, err := amp.RunUntilOutput()
			if err != nil {
				return 0, fmt.Errorf("%s: %w", amp.Name, err)
			}
			if amp.Steps() != before {
				progress = true
			}
			if ev == machine.EventHalted {
				halted++
			}
			out := amp.Output()
			if len(out) == 0 {
				continue
			}
			next := i + 1
			if next == len(amps) {
				if !o.Feedback {
					continue
				}
				next = 0
			}
			amps[next].Send(out...)
		}
		if halted == len(amps) {
			log.Debug(log.NetworkMonitoring, "pipeline halted", "amps", len(amps), "rounds", round, "feedback", o.Feedback)
			break
		}
		if !progress {
			return 0, fmt.Errorf("%w: every amplifier is waiting for input (round %d)", vmerrors.ErrDeadlock, round)
		}
	}

	v, ok := last.LastOutput()
	if !ok {
		return 0, fmt.Errorf("%w: %s", vmerrors.ErrNoOutput, last.Name)
	}
	return v, nil
}
