package machine

import (
	"github.com/colorfulnotion/intcode/machine/program"
	"github.com/colorfulnotion/intcode/machine/vmtypes"
)

func add(a, b int64) int64 { return a + b }
func mul(a, b int64) int64 { return a * b }

func lessThan(a, b int64) int64 {
	if a < b {
		return 1
	}
	return 0
}

func equals(a, b int64) int64 {
	if a == b {
		return 1
	}
	return 0
}

// address resolves operand p of the current instruction to an effective
// address. An immediate operand resolves to its own location, so reading
// it yields the literal.
func (vm *VM) address(inst program.Instruction, p int) (int64, error) {
	loc := vm.ip + 1 + int64(p)
	if inst.Modes[p] == vmtypes.IMMEDIATE {
		return loc, nil
	}
	raw, err := vm.mem.Read(loc)
	if err != nil {
		return 0, err
	}
	if inst.Modes[p] == vmtypes.RELATIVE {
		raw += vm.base
	}
	if raw < 0 {
		return 0, invalidAddress(raw)
	}
	return raw, nil
}

func (vm *VM) load(inst program.Instruction, p int) (int64, error) {
	addr, err := vm.address(inst, p)
	if err != nil {
		return 0, err
	}
	return vm.mem.Read(addr)
}

func (vm *VM) store(inst program.Instruction, p int, v int64) error {
	addr, err := vm.address(inst, p)
	if err != nil {
		return err
	}
	return vm.mem.Write(addr, v)
}

// ADD, MUL, LT, EQ: two sources, one destination.
func (vm *VM) handleArith(inst program.Instruction, fn func(a, b int64) int64) error {
	a, err := vm.load(inst, 0)
	if err != nil {
		return err
	}
	b, err := vm.load(inst, 1)
	if err != nil {
		return err
	}
	if err := vm.store(inst, 2, fn(a, b)); err != nil {
		return err
	}
	vm.ip += inst.Op.Width()
	return nil
}

func (vm *VM) handleIN(inst program.Instruction) error {
	addr, err := vm.address(inst, 0)
	if err != nil {
		return err
	}
	v, ok := vm.input.Pop()
	if !ok {
		vm.status = AWAITING_INPUT
		return nil
	}
	if err := vm.mem.Write(addr, v); err != nil {
		return err
	}
	vm.status = RUNNING
	vm.ip += inst.Op.Width()
	return nil
}

func (vm *VM) handleOUT(inst program.Instruction) error {
	v, err := vm.load(inst, 0)
	if err != nil {
		return err
	}
	vm.output.Push(v)
	vm.lastOutput = v
	vm.outputs++
	vm.ip += inst.Op.Width()
	return nil
}

// JNZ jumps when the condition is non-zero, JZ when it is zero.
func (vm *VM) handleJump(inst program.Instruction, nonZero bool) error {
	cond, err := vm.load(inst, 0)
	if err != nil {
		return err
	}
	if (cond != 0) != nonZero {
		vm.ip += inst.Op.Width()
		return nil
	}
	target, err := vm.load(inst, 1)
	if err != nil {
		return err
	}
	if target < 0 {
		return invalidAddress(target)
	}
	vm.ip = target
	return nil
}

func (vm *VM) handleARB(inst program.Instruction) error {
	v, err := vm.load(inst, 0)
	if err != nil {
		return err
	}
	vm.base += v
	vm.ip += inst.Op.Width()
	return nil
}
