package network

import (
	"context"
	"fmt"

	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/permutations"
	"github.com/colorfulnotion/intcode/vmerrors"
	"golang.org/x/exp/slices"
)

// MaxSignal runs a pipeline for every ordering of phaseValues, starting
// from signal 0, and returns the largest final output together with the
// phase order that produced it. Orders whose pipeline fails are skipped;
// only a cancelled context stops the search early.
func MaxSignal(ctx context.Context, code []int64, phaseValues []int64, feedback bool, opts ...Option) (int64, []int64, error) {
	opts = append([]Option{WithFeedback(feedback)}, opts...)

	var (
		best      int64
		bestOrder []int64
		failed    int
		lastErr   error
	)
	permutations.Each(phaseValues, func(order []int64) bool {
		v, err := RunPipeline(ctx, code, order, 0, opts...)
		if err != nil {
			if ctx.Err() != nil {
				lastErr = err
				return false
			}
			failed++
			lastErr = fmt.Errorf("phases %v: %w", order, err)
			log.Debug(log.NetworkMonitoring, "phase order skipped", "phases", order, "err", err)
			return true
		}
		if bestOrder == nil || v > best {
			best = v
			bestOrder = slices.Clone(order)
		}
		return true
	})
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	if bestOrder == nil {
		if lastErr != nil {
			return 0, nil, fmt.Errorf("%w: all %d phase orders failed, last %w", vmerrors.ErrNoAnswer, failed, lastErr)
		}
		return 0, nil, vmerrors.ErrNoAnswer
	}
	log.Debug(log.NetworkMonitoring, "max signal", "signal", best, "phases", bestOrder, "feedback", feedback, "skipped", failed)
	return best, bestOrder, nil
}
