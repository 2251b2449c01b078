package network

import (
	"context"
	"fmt"

	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/vmerrors"
	"golang.org/x/sync/errgroup"
)

// edge is an unbounded FIFO channel between two instances. Values written
// to in come out of out in the same order; closing in closes out once the
// buffer has drained.
type edge struct {
	in  chan int64
	out chan int64
}

func newEdge(ctx context.Context) *edge {
	e := &edge{in: make(chan int64), out: make(chan int64)}
	go e.pump(ctx)
	return e
}

func (e *edge) pump(ctx context.Context) {
	defer close(e.out)
	var buf []int64
	in := e.in
	for in != nil || len(buf) > 0 {
		var out chan int64
		var head int64
		if len(buf) > 0 {
			out = e.out
			head = buf[0]
		}
		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			buf = append(buf, v)
		case out <- head:
			buf = buf[1:]
		case <-ctx.Done():
			return
		}
	}
}

// RunPipelineConcurrent is RunPipeline with one goroutine per instance.
// Each instance runs until it suspends and then blocks on its incoming edge,
// so the values observed by every instance are the same as in the
// cooperative schedule. A pipeline whose instances all wait for input
// blocks until ctx is cancelled.
func RunPipelineConcurrent(ctx context.Context, code []int64, phases []int64, signal int64, opts ...Option) (int64, error) {
	o := newOptions(opts)
	if len(phases) == 0 {
		return 0, fmt.Errorf("%w: empty pipeline", vmerrors.ErrNoOutput)
	}
	amps := newAmplifiers(code, phases, signal, o)
	n := len(amps)

	edgeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// edges[i] feeds amps[i]; edges[0] only exists in a feedback loop
	edges := make([]*edge, n)
	for i := 1; i < n; i++ {
		edges[i] = newEdge(edgeCtx)
	}
	if o.Feedback {
		edges[0] = newEdge(edgeCtx)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, amp := range amps {
		amp := amp
		in := edges[i]
		var out *edge
		if i+1 < n {
			out = edges[i+1]
		} else if o.Feedback {
			out = edges[0]
		}
		g.Go(func() error {
			return drive(gctx, amp, in, out)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	last := amps[n-1]
	v, ok := last.LastOutput()
	if !ok {
		return 0, fmt.Errorf("%w: %s", vmerrors.ErrNoOutput, last.Name)
	}
	log.Debug(log.NetworkMonitoring, "concurrent pipeline halted", "amps", n, "feedback", o.Feedback, "signal", v)
	return v, nil
}

// drive runs one instance, forwarding its output to out and feeding it
// from in whenever it suspends.
func drive(ctx context.Context, vm *machine.VM, in, out *edge) error {
	if out != nil {
		defer close(out.in)
	}
	for {
		ev, err := vm.RunUntilOutput()
		if err != nil {
			return fmt.Errorf("%s: %w", vm.Name, err)
		}
		switch ev {
		case machine.EventOutput:
			values := vm.Output()
			if out == nil {
				continue
			}
			for _, v := range values {
				select {
				case out.in <- v:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		case machine.EventAwaitingInput:
			if in == nil {
				return fmt.Errorf("%s: %w", vm.Name, vmerrors.ErrInputExhausted)
			}
			select {
			case v, ok := <-in.out:
				if !ok {
					return fmt.Errorf("%s: %w", vm.Name, vmerrors.ErrInputExhausted)
				}
				vm.Send(v)
			case <-ctx.Done():
				return ctx.Err()
			}
		case machine.EventHalted:
			return nil
		}
	}
}
