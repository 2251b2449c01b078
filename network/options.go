// Package network drives several machine instances as one topology: a
// pipeline of amplifiers, optionally closed into a feedback loop, or a
// packet-addressed network with a sink that reinjects traffic when the
// whole network goes idle.
package network

import (
	"github.com/colorfulnotion/intcode/machine"
	"github.com/colorfulnotion/intcode/machine/vmtypes"
)

const (
	DefaultMaxRounds  = 100000
	DefaultIdleRounds = 1
)

// Options configures a topology run.
type Options struct {
	Feedback              bool
	MaxRounds             int
	IdleRounds            int
	SinkAddress           int64
	StopOnFirstSinkPacket bool
	Machine               []machine.Option
}

type Option func(*Options)

func newOptions(opts []Option) Options {
	o := Options{
		MaxRounds:   DefaultMaxRounds,
		IdleRounds:  DefaultIdleRounds,
		SinkAddress: vmtypes.DefaultSink,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.IdleRounds < 1 {
		o.IdleRounds = 1
	}
	return o
}

// WithFeedback routes the last amplifier's output back to the first.
func WithFeedback(on bool) Option {
	return func(o *Options) { o.Feedback = on }
}

// WithMaxRounds bounds the number of scheduling rounds. Zero disables the
// bound.
func WithMaxRounds(n int) Option {
	return func(o *Options) { o.MaxRounds = n }
}

// WithIdleRounds sets how many consecutive quiet rounds count as idle.
func WithIdleRounds(n int) Option {
	return func(o *Options) { o.IdleRounds = n }
}

// WithSinkAddress sets the address the sink answers to.
func WithSinkAddress(addr int64) Option {
	return func(o *Options) { o.SinkAddress = addr }
}

// StopOnFirstSinkPacket ends a packet network run as soon as the sink
// records its first packet.
func StopOnFirstSinkPacket() Option {
	return func(o *Options) { o.StopOnFirstSinkPacket = true }
}

// WithMachineOptions applies opts to every instance in the topology.
func WithMachineOptions(opts ...machine.Option) Option {
	return func(o *Options) { o.Machine = append(o.Machine, opts...) }
}
