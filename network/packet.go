package network

import (
	"context"
	"fmt"

	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/machine/vmtypes"
	"github.com/colorfulnotion/intcode/vmerrors"
)

// Packet is one addressed (X, Y) pair.
type Packet struct {
	Dest int64 `json:"dest"`
	X    int64 `json:"x"`
	Y    int64 `json:"y"`
}

func (p Packet) String() string {
	return fmt.Sprintf("%d <- (%d, %d)", p.Dest, p.X, p.Y)
}

// Result summarises a packet network run.
type Result struct {
	FirstSinkY      int64
	FirstSinkPacket Packet
	HasSinkPacket   bool
	RepeatedY       int64
	Reinjections    int
	Rounds          int
}

// sink records traffic for addresses outside the topology and keeps the
// most recent packet for reinjection.
type sink struct {
	addr     int64
	last     Packet
	has      bool
	received int
}

func (s *sink) record(p Packet) {
	s.last = p
	s.has = true
	s.received++
}

// Network is a fixed set of instances, one per address 0..n-1, exchanging
// packets through their output and input queues.
type Network struct {
	nodes   []*machine.VM
	faulted []bool
	sink    sink
	opts    Options
}

// NewNetwork loads n instances of code. Each instance's first input is its
// own address.
func NewNetwork(code []int64, n int, opts ...Option) *Network {
	o := newOptions(opts)
	nw := &Network{
		nodes:   make([]*machine.VM, n),
		faulted: make([]bool, n),
		sink:    sink{addr: o.SinkAddress},
		opts:    o,
	}
	for addr := range nw.nodes {
		vmOpts := append([]machine.Option{
			machine.WithName(fmt.Sprintf("nic%d", addr)),
			machine.WithInput(int64(addr)),
		}, o.Machine...)
		nw.nodes[addr] = machine.NewVM(code, vmOpts...)
	}
	return nw
}

// Node returns the instance at addr.
func (nw *Network) Node(addr int) *machine.VM {
	return nw.nodes[addr]
}

// excluded reports whether the node at addr is no longer scheduled.
func (nw *Network) excluded(addr int) bool {
	return nw.faulted[addr] || nw.nodes[addr].Status() == vmtypes.HALT
}

// route delivers p to the node it addresses or, failing that, to the sink.
// Packets for excluded nodes are dropped.
func (nw *Network) route(p Packet) {
	if p.Dest >= 0 && p.Dest < int64(len(nw.nodes)) {
		if nw.excluded(int(p.Dest)) {
			log.Debug(log.NetworkMonitoring, "packet for excluded node dropped", "packet", p)
			return
		}
		nw.nodes[p.Dest].Send(p.X, p.Y)
		return
	}
	if p.Dest != nw.sink.addr {
		log.Debug(log.NetworkMonitoring, "packet for unknown address sent to sink", "packet", p)
	}
	nw.sink.record(p)
}

// quiet reports whether every scheduled node's input queue is empty.
func (nw *Network) quiet() bool {
	for addr, node := range nw.nodes {
		if nw.excluded(addr) {
			continue
		}
		if node.Input().Len() > 0 {
			return false
		}
	}
	return true
}

// Run schedules the nodes round-robin. A node waiting on an empty queue is
// fed NoPacket so it keeps running. Complete (dest, X, Y) triples are
// routed after each node's turn; a partial triple stays queued until the
// node finishes it.
//
// When IdleRounds consecutive rounds start with every input queue empty and
// produce no output, the sink's most recent packet is sent to address 0.
// The run ends when two consecutive reinjections carry the same Y.
func (nw *Network) Run(ctx context.Context) (Result, error) {
	var (
		res     Result
		idle    int
		lastY   int64
		hasLast bool
	)
	for round := 1; ; round++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if nw.opts.MaxRounds > 0 && round > nw.opts.MaxRounds {
			return res, fmt.Errorf("%w: no repeated reinjection after %d rounds", vmerrors.ErrDeadlock, nw.opts.MaxRounds)
		}
		res.Rounds = round

		quiet := nw.quiet()
		produced := false
		live := 0
		for addr, node := range nw.nodes {
			if nw.excluded(addr) {
				continue
			}
			live++
			if node.Status() == vmtypes.AWAITING_INPUT && node.Input().Len() == 0 {
				node.Send(vmtypes.NoPacket)
			}
			_, err := node.Run()
			if err != nil {
				if !vmerrors.IsFatal(err) {
					return res, fmt.Errorf("%s: %w", node.Name, err)
				}
				nw.faulted[addr] = true
				log.Warn(log.NetworkMonitoring, "node excluded", "addr", addr, "err", err)
			}
			out := node.OutputQueue()
			for out.Len() >= vmtypes.PacketWidth {
				dest, _ := out.Pop()
				x, _ := out.Pop()
				y, _ := out.Pop()
				p := Packet{Dest: dest, X: x, Y: y}
				produced = true
				nw.route(p)
				if !res.HasSinkPacket && nw.sink.has {
					res.HasSinkPacket = true
					res.FirstSinkPacket = p
					res.FirstSinkY = p.Y
					log.Info(log.NetworkMonitoring, "first sink packet", "packet", p, "round", round)
					if nw.opts.StopOnFirstSinkPacket {
						return res, nil
					}
				}
			}
		}
		if live == 0 {
			return res, fmt.Errorf("%w: every node has terminated", vmerrors.ErrNoAnswer)
		}

		if quiet && !produced {
			idle++
		} else {
			idle = 0
		}
		if idle < nw.opts.IdleRounds || !nw.sink.has {
			continue
		}
		idle = 0
		p := nw.sink.last
		nw.nodes[0].Send(p.X, p.Y)
		res.Reinjections++
		log.Debug(log.NetworkMonitoring, "idle: reinjecting", "x", p.X, "y", p.Y, "round", round)
		if hasLast && lastY == p.Y {
			res.RepeatedY = p.Y
			log.Info(log.NetworkMonitoring, "repeated reinjection", "y", p.Y, "round", round, "reinjections", res.Reinjections)
			return res, nil
		}
		lastY, hasLast = p.Y, true
	}
}
