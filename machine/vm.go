package machine

import (
	"errors"
	"fmt"

	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/machine/program"
	"github.com/colorfulnotion/intcode/machine/vmtypes"
	"github.com/colorfulnotion/intcode/vmerrors"
)

const (
	HALT           = vmtypes.HALT
	FAULT          = vmtypes.FAULT
	RUNNING        = vmtypes.RUNNING
	AWAITING_INPUT = vmtypes.AWAITING_INPUT
)

// Stop selects the suspension points at which RunUntil returns.
type Stop uint8

const (
	// StopOnSuspend returns on a terminal status or when input is needed.
	StopOnSuspend Stop = iota
	// StopOnOutput also returns after every produced output value.
	StopOnOutput
)

// Event is the reason RunUntil returned control to the caller.
type Event uint8

const (
	EventNone Event = iota
	EventAwaitingInput
	EventOutput
	EventHalted
	EventFaulted
	EventStepLimit
)

func (e Event) String() string {
	switch e {
	case EventAwaitingInput:
		return "awaiting-input"
	case EventOutput:
		return "output"
	case EventHalted:
		return "halted"
	case EventFaulted:
		return "faulted"
	case EventStepLimit:
		return "step-limit"
	default:
		return "none"
	}
}

// VM is one machine instance: its memory, instruction pointer, relative
// base, run status and the two I/O queues it owns.
type VM struct {
	Name string

	mem    *Memory
	ip     int64 // instruction pointer
	base   int64 // relative base
	status vmtypes.Status
	fault  *vmerrors.Fault

	input  *Queue
	output *Queue

	steps      uint64
	outputs    uint64
	lastOutput int64
	stepLimit  uint64
	trace      bool
}

// Option configures a VM at construction.
type Option func(*VM)

// WithInput queues initial input values.
func WithInput(values ...int64) Option {
	return func(vm *VM) { vm.input.Push(values...) }
}

// WithTrace logs every executed instruction at trace level.
func WithTrace(on bool) Option {
	return func(vm *VM) { vm.trace = on }
}

// WithStepLimit bounds the number of steps a single RunUntil call may take.
// Zero means unbounded.
func WithStepLimit(n uint64) Option {
	return func(vm *VM) { vm.stepLimit = n }
}

// WithName labels the instance in logs and snapshots.
func WithName(name string) Option {
	return func(vm *VM) { vm.Name = name }
}

// NewVM loads a copy of code into a fresh instance.
func NewVM(code []int64, opts ...Option) *VM {
	vm := &VM{
		mem:    NewMemory(code),
		status: RUNNING,
		input:  NewQueue(),
		output: NewQueue(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

func (vm *VM) Status() vmtypes.Status { return vm.status }
func (vm *VM) IP() int64              { return vm.ip }
func (vm *VM) Base() int64            { return vm.base }
func (vm *VM) Steps() uint64          { return vm.steps }
func (vm *VM) Memory() *Memory        { return vm.mem }

// Input is the queue the input instruction reads from.
func (vm *VM) Input() *Queue { return vm.input }

// OutputQueue is the queue the output instruction appends to.
func (vm *VM) OutputQueue() *Queue { return vm.output }

// Err returns the fault that terminated the instance, or nil.
func (vm *VM) Err() error {
	if vm.fault == nil {
		return nil
	}
	return vm.fault
}

// Send queues input values.
func (vm *VM) Send(values ...int64) {
	vm.input.Push(values...)
}

// Output drains and returns the queued output values.
func (vm *VM) Output() []int64 {
	return vm.output.Drain()
}

// LastOutput is the most recently produced output value, whether or not it
// has been drained. ok is false if nothing was ever produced.
func (vm *VM) LastOutput() (v int64, ok bool) {
	return vm.lastOutput, vm.outputs > 0
}

// Patch overwrites memory before or between runs.
func (vm *VM) Patch(addr int64, v int64) error {
	return vm.mem.Write(addr, v)
}

// Peek reads memory.
func (vm *VM) Peek(addr int64) (int64, error) {
	return vm.mem.Read(addr)
}

// Clone returns an independent copy of the instance, queues included.
func (vm *VM) Clone() *VM {
	c := *vm
	c.mem = vm.mem.Clone()
	c.input = NewQueue(vm.input.Values()...)
	c.output = NewQueue(vm.output.Values()...)
	if vm.fault != nil {
		f := *vm.fault
		c.fault = &f
	}
	return &c
}

// Step decodes and executes the instruction at the instruction pointer.
// An input instruction with an empty input queue leaves the pointer in
// place and moves the instance to AWAITING_INPUT. A terminal instance
// returns ErrTerminated without changing state.
func (vm *VM) Step() error {
	if vm.status.Terminal() {
		return vmerrors.ErrTerminated
	}
	word, err := vm.mem.Read(vm.ip)
	if err != nil {
		return vm.fail(word, err)
	}
	inst, err := program.Decode(word)
	if err != nil {
		return vm.fail(word, err)
	}
	if vm.trace {
		log.Trace(log.MachineMonitoring, "step", "vm", vm.Name, "ip", vm.ip, "op", inst.Op, "base", vm.base)
	}

	switch inst.Op {
	case program.ADD:
		err = vm.handleArith(inst, add)
	case program.MUL:
		err = vm.handleArith(inst, mul)
	case program.IN:
		err = vm.handleIN(inst)
	case program.OUT:
		err = vm.handleOUT(inst)
	case program.JNZ:
		err = vm.handleJump(inst, true)
	case program.JZ:
		err = vm.handleJump(inst, false)
	case program.LT:
		err = vm.handleArith(inst, lessThan)
	case program.EQ:
		err = vm.handleArith(inst, equals)
	case program.ARB:
		err = vm.handleARB(inst)
	case program.HALT:
		vm.status = HALT
	default:
		err = &vmerrors.Fault{Value: int64(inst.Op), Err: vmerrors.ErrUnknownOpcode}
	}
	if err != nil {
		return vm.fail(word, err)
	}
	if vm.status == AWAITING_INPUT {
		// suspended read, nothing executed
		return nil
	}
	vm.steps++
	return nil
}

// fail moves the instance to FAULT, stamping the instruction pointer and
// word onto the fault.
func (vm *VM) fail(word int64, err error) error {
	var f *vmerrors.Fault
	if !errors.As(err, &f) {
		f = &vmerrors.Fault{Err: err}
	}
	f.IP = vm.ip
	f.Word = word
	vm.status = FAULT
	vm.fault = f
	log.Warn(log.MachineMonitoring, "terminated: fault", "vm", vm.Name, "ip", f.IP, "word", f.Word, "value", f.Value, "err", vmerrors.GetErrorName(f))
	return f
}

// RunUntil steps until the instance halts, faults, needs input, or (with
// StopOnOutput) produces an output value. It never blocks: an instance
// already awaiting input with an empty queue returns immediately.
func (vm *VM) RunUntil(stop Stop) (Event, error) {
	switch vm.status {
	case HALT:
		return EventHalted, nil
	case FAULT:
		return EventFaulted, vm.fault
	}
	for n := uint64(0); ; n++ {
		if vm.stepLimit > 0 && n >= vm.stepLimit {
			return EventStepLimit, fmt.Errorf("%w: %d steps at ip %d", vmerrors.ErrStepLimit, n, vm.ip)
		}
		before := vm.outputs
		if err := vm.Step(); err != nil {
			return EventFaulted, err
		}
		switch vm.status {
		case HALT:
			return EventHalted, nil
		case AWAITING_INPUT:
			return EventAwaitingInput, nil
		}
		if stop == StopOnOutput && vm.outputs > before {
			return EventOutput, nil
		}
	}
}

// Run steps until the instance halts, faults or needs input.
func (vm *VM) Run() (Event, error) {
	return vm.RunUntil(StopOnSuspend)
}

// RunUntilOutput is RunUntil(StopOnOutput).
func (vm *VM) RunUntilOutput() (Event, error) {
	return vm.RunUntil(StopOnOutput)
}

// Execute runs a fresh copy of code to completion with the given input and
// returns everything it wrote. Running out of input is an error.
func Execute(code []int64, input ...int64) ([]int64, error) {
	vm := NewVM(code, WithInput(input...))
	ev, err := vm.Run()
	if err != nil {
		return vm.Output(), err
	}
	if ev == EventAwaitingInput {
		return vm.Output(), fmt.Errorf("%w: ip %d", vmerrors.ErrInputExhausted, vm.ip)
	}
	return vm.Output(), nil
}
