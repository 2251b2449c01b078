package program

import (
	"fmt"

	"github.com/colorfulnotion/intcode/machine/vmtypes"
	"github.com/colorfulnotion/intcode/vmerrors"
)

// Opcode selects the operation of an instruction word (its low two digits).
type Opcode uint8

// Arithmetic.
const (
	ADD = Opcode(1)
	MUL = Opcode(2)
)

// Input / output.
const (
	IN  = Opcode(3)
	OUT = Opcode(4)
)

// Control flow and comparison.
const (
	JNZ  = Opcode(5)
	JZ   = Opcode(6)
	LT   = Opcode(7)
	EQ   = Opcode(8)
	ARB  = Opcode(9) // adjust relative base
	HALT = Opcode(99)
)

// MaxParams is the widest operand list of any opcode.
const MaxParams = 3

type opcodeInfo struct {
	name   string
	params int
	write  int // index of the destination operand, -1 if none
}

var opcodeTable = map[Opcode]opcodeInfo{
	ADD:  {"add", 3, 2},
	MUL:  {"mul", 3, 2},
	IN:   {"in", 1, 0},
	OUT:  {"out", 1, -1},
	JNZ:  {"jnz", 2, -1},
	JZ:   {"jz", 2, -1},
	LT:   {"lt", 3, 2},
	EQ:   {"eq", 3, 2},
	ARB:  {"arb", 1, -1},
	HALT: {"halt", 0, -1},
}

// Valid reports whether op is a defined instruction.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

func (op Opcode) String() string {
	if info, ok := opcodeTable[op]; ok {
		return info.name
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Params is the number of operands following the instruction word.
func (op Opcode) Params() int {
	return opcodeTable[op].params
}

// Width is the total number of words the instruction occupies.
func (op Opcode) Width() int64 {
	return int64(1 + op.Params())
}

// Writes returns the index of the destination operand, or -1.
func (op Opcode) Writes() int {
	if info, ok := opcodeTable[op]; ok {
		return info.write
	}
	return -1
}

// IsJump reports whether op may set the instruction pointer.
func (op Opcode) IsJump() bool {
	return op == JNZ || op == JZ
}

// IsBasicBlockInstruction reports whether op ends a basic block.
func IsBasicBlockInstruction(op Opcode) bool {
	switch op {
	case JNZ, JZ, HALT:
		return true
	default:
		return false
	}
}

// Instruction is one decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxParams]vmtypes.Mode
}

func (i Instruction) String() string {
	s := i.Op.String()
	for p := 0; p < i.Op.Params(); p++ {
		s += " " + i.Modes[p].String()
	}
	return s
}

// Decode splits an instruction word into its opcode and per-operand modes.
// Missing mode digits default to position mode. The returned error is a
// *vmerrors.Fault without an instruction pointer.
func Decode(word int64) (Instruction, error) {
	var inst Instruction
	if word < 0 {
		return inst, &vmerrors.Fault{Word: word, Value: word, Err: vmerrors.ErrUnknownOpcode}
	}
	code := word % 100
	inst.Op = Opcode(code)
	if !inst.Op.Valid() {
		return inst, &vmerrors.Fault{Word: word, Value: code, Err: vmerrors.ErrUnknownOpcode}
	}

	modes := word / 100
	for p := 0; p < inst.Op.Params(); p++ {
		digit := modes % 10
		modes /= 10
		if digit > int64(vmtypes.RELATIVE) {
			return inst, &vmerrors.Fault{Word: word, Value: digit, Err: vmerrors.ErrInvalidMode}
		}
		inst.Modes[p] = vmtypes.Mode(digit)
	}

	if w := inst.Op.Writes(); w >= 0 && inst.Modes[w] == vmtypes.IMMEDIATE {
		return inst, &vmerrors.Fault{Word: word, Value: int64(w + 1), Err: vmerrors.ErrImmediateWrite}
	}
	return inst, nil
}
