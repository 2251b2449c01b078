package program

import (
	"fmt"

	"github.com/colorfulnotion/intcode/machine/vmtypes"
)

const (
	FALLTHROUGH_JUMP = 0 // block ran into the end of the program
	CONDITIONAL      = 1 // jnz / jz
	TERMINATED       = 2 // halt
)

type BasicBlock struct {
	Start    int64
	End      int64 // address after the last word of the block
	Lines    []Line
	JumpType int

	// TruePC is the static jump target, -1 when the target operand is
	// not immediate or the block does not end in a jump.
	TruePC int64
}

func NewBasicBlock(start int64) *BasicBlock {
	return &BasicBlock{
		Start:  start,
		End:    start,
		Lines:  make([]Line, 0),
		TruePC: -1,
	}
}

func (bb *BasicBlock) AddLine(l Line) {
	bb.Lines = append(bb.Lines, l)
	bb.End = l.Addr + l.Width()
}

func (bb *BasicBlock) String() string {
	kind := "fallthrough"
	switch bb.JumpType {
	case CONDITIONAL:
		if bb.TruePC >= 0 {
			kind = fmt.Sprintf("branch -> %d", bb.TruePC)
		} else {
			kind = "branch -> dynamic"
		}
	case TERMINATED:
		kind = "halt"
	}
	return fmt.Sprintf("block %d..%d (%d instructions, %s)", bb.Start, bb.End, len(bb.Lines), kind)
}

// BasicBlocks splits the linear sweep of code into blocks ending at
// jumps or halts. Trailing words form a final fallthrough block.
func BasicBlocks(code []int64) []*BasicBlock {
	var blocks []*BasicBlock
	var block *BasicBlock
	for _, line := range Disassemble(code) {
		if block == nil {
			block = NewBasicBlock(line.Addr)
		}
		block.AddLine(line)
		if line.Data || !IsBasicBlockInstruction(line.Inst.Op) {
			continue
		}
		if line.Inst.Op == HALT {
			block.JumpType = TERMINATED
		} else {
			block.JumpType = CONDITIONAL
			if line.Inst.Modes[1] == vmtypes.IMMEDIATE {
				block.TruePC = line.Operands[1]
			}
		}
		blocks = append(blocks, block)
		block = nil
	}
	if block != nil {
		blocks = append(blocks, block)
	}
	return blocks
}
