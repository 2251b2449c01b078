// Disassembler - renders a program into one line per instruction

package program

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/intcode/machine/vmtypes"
)

// Line is one disassembled instruction, or a data word that does not decode.
type Line struct {
	Addr     int64
	Word     int64
	Data     bool
	Inst     Instruction
	Operands []int64
}

// Width is the number of words the line covers.
func (l Line) Width() int64 {
	if l.Data {
		return 1
	}
	return l.Inst.Op.Width()
}

func formatOperand(mode vmtypes.Mode, v int64) string {
	switch mode {
	case vmtypes.IMMEDIATE:
		return fmt.Sprintf("#%d", v)
	case vmtypes.RELATIVE:
		if v < 0 {
			return fmt.Sprintf("[rb%d]", v)
		}
		return fmt.Sprintf("[rb+%d]", v)
	default:
		return fmt.Sprintf("[%d]", v)
	}
}

func (l Line) String() string {
	if l.Data {
		return fmt.Sprintf("%6d: %-5s %d", l.Addr, "data", l.Word)
	}
	ops := make([]string, len(l.Operands))
	for i, v := range l.Operands {
		ops[i] = formatOperand(l.Inst.Modes[i], v)
	}
	return strings.TrimRight(fmt.Sprintf("%6d: %-5s %s", l.Addr, l.Inst.Op, strings.Join(ops, ", ")), " ")
}

// DisassembleSingleInstruction decodes the instruction at addr.
func DisassembleSingleInstruction(code []int64, addr int64) Line {
	word := code[addr]
	inst, err := Decode(word)
	if err != nil || addr+inst.Op.Width() > int64(len(code)) {
		return Line{Addr: addr, Word: word, Data: true}
	}
	return Line{
		Addr:     addr,
		Word:     word,
		Inst:     inst,
		Operands: code[addr+1 : addr+inst.Op.Width()],
	}
}

// Disassemble performs a linear sweep from address 0.
func Disassemble(code []int64) []Line {
	lines := make([]Line, 0, len(code)/2)
	for addr := int64(0); addr < int64(len(code)); {
		line := DisassembleSingleInstruction(code, addr)
		lines = append(lines, line)
		addr += line.Width()
	}
	return lines
}

// DisassembleText joins Disassemble output with newlines.
func DisassembleText(code []int64) string {
	var sb strings.Builder
	for _, l := range Disassemble(code) {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
