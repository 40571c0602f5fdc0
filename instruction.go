package bfint

import (
	str "strings"

	cp "github.com/jinzhu/copier"
)

// The instruction set the parser emits. Runs of the four foldable source
// bytes (+ - > <) are collapsed into a single instruction carrying a count,
// so the executor pays for a long run once instead of once per byte. Loop
// brackets carry the absolute index of their partner in the same Program,
// resolved at parse time so the executor never scans for a match.

type OpCode byte

const (
	OpAdd OpCode = iota
	OpSubtract
	OpAdvance
	OpRetreat
	OpOutput
	OpInput
	OpLoopStart
	OpLoopEnd
)

// Instruction is one entry of a parsed Program. The meaning of Arg depends
// on Op:
//
//	OpAdd, OpSubtract:      cell delta, already reduced mod 256
//	OpAdvance, OpRetreat:   data pointer delta, machine word width
//	OpLoopStart, OpLoopEnd: index of the matching bracket instruction
//	OpOutput, OpInput:      unused, always 0
//
// A loop target is the index OF the partner, not past it. The executor
// increments the program counter after every instruction, jumps included,
// so a taken OpLoopStart lands just after its OpLoopEnd and a taken
// OpLoopEnd lands on the first instruction of the loop body.
type Instruction struct {
	Op  OpCode
	Arg uint
}

// Program is a parsed instruction stream. Immutable after Parse returns it.
type Program []Instruction

func (o OpCode) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpAdvance:
		return ">"
	case OpRetreat:
		return "<"
	case OpOutput:
		return "."
	case OpInput:
		return ","
	case OpLoopStart:
		return "["
	case OpLoopEnd:
		return "]"
	default:
		return "?"
	}
}

// String renders the program back to canonical source. A run whose count
// wrapped to zero renders as nothing, so the result is the shortest source
// with the same behavior, not necessarily the original bytes.
func (p Program) String() string {
	var sb str.Builder
	for _, ins := range p {
		switch ins.Op {
		case OpAdd, OpSubtract, OpAdvance, OpRetreat:
			sb.WriteString(str.Repeat(ins.Op.String(), int(ins.Arg)))
		default:
			sb.WriteString(ins.Op.String())
		}
	}
	return sb.String()
}

func (p Program) Clone() Program {
	clone := Program{}
	cp.Copy(&clone, &p)
	return clone
}
