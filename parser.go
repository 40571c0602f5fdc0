package bfint

import (
	"fmt"
)

// ErrUnbalancedLoop is the only way a parse can fail. Every byte outside
// the eight opcodes is a comment, so bracket imbalance is the whole error
// surface.
var ErrUnbalancedLoop error = fmt.Errorf("Unbalanced loop brackets")

// parser folds runs and links brackets in a single pass over the source.
// pending holds the most recent foldable instruction not yet committed to
// the output; loopStack holds output indices of OpLoopStart instructions
// still waiting for their OpLoopEnd.
type parser struct {
	program     Program
	loopStack   []int
	pending     Instruction
	havePending bool
}

// fold extends the pending run if the op matches it, otherwise commits the
// pending run and starts a new one. Folding is tag-local: a '+' after a '-'
// does not cancel, it commits the Subtract and opens an Add run. Add and
// Subtract counts fold with 8-bit wrapping to match cell arithmetic, so 257
// consecutive '+' produce Add(1) and 256 produce Add(0). Pointer runs fold
// at machine word width.
func (p *parser) fold(op OpCode) {
	if p.havePending && p.pending.Op == op {
		switch op {
		case OpAdd, OpSubtract:
			p.pending.Arg = uint(uint8(p.pending.Arg) + 1)
		default:
			p.pending.Arg++
		}
		return
	}
	p.commit()
	p.pending = Instruction{Op: op, Arg: 1}
	p.havePending = true
}

func (p *parser) commit() {
	if p.havePending {
		p.program = append(p.program, p.pending)
		p.havePending = false
	}
}

// Parse turns raw source bytes into a Program. Bytes outside "+-<>.,[]"
// are comments and leave the emitted stream untouched. The only failure
// is bracket imbalance; the returned error wraps ErrUnbalancedLoop with
// the offending byte position.
func Parse(source []byte) (Program, error) {
	p := &parser{program: make(Program, 0, len(source)/2)}
	for pos, b := range source {
		switch b {
		case '+':
			p.fold(OpAdd)
		case '-':
			p.fold(OpSubtract)
		case '>':
			p.fold(OpAdvance)
		case '<':
			p.fold(OpRetreat)
		case '.':
			p.commit()
			p.program = append(p.program, Instruction{Op: OpOutput})
		case ',':
			p.commit()
			p.program = append(p.program, Instruction{Op: OpInput})
		case '[':
			p.commit()
			p.loopStack = append(p.loopStack, len(p.program))
			// Target patched when the matching ']' arrives.
			p.program = append(p.program, Instruction{Op: OpLoopStart})
		case ']':
			p.commit()
			if len(p.loopStack) == 0 {
				return nil, fmt.Errorf("Loop end at byte [%d] has no matching loop start. %w", pos, ErrUnbalancedLoop)
			}
			start := p.loopStack[len(p.loopStack)-1]
			p.loopStack = p.loopStack[:len(p.loopStack)-1]
			p.program[start].Arg = uint(len(p.program))
			p.program = append(p.program, Instruction{Op: OpLoopEnd, Arg: uint(start)})
		}
	}
	p.commit()
	if len(p.loopStack) > 0 {
		return nil, fmt.Errorf("[%d] loop starts left open at end of source. %w", len(p.loopStack), ErrUnbalancedLoop)
	}
	return p.program, nil
}
