package bfint

import (
	"io"

	cp "github.com/jinzhu/copier"
)

// How a run ended. The first failure wins and stops execution; output
// already written stays written.
type RunResult byte

const (
	RunOk RunResult = iota
	RunMemoryAccessError
	RunIOError
	RunStepLimitExceeded
)

func (r RunResult) String() string {
	switch r {
	case RunOk:
		return "ok"
	case RunMemoryAccessError:
		return "memory access error"
	case RunIOError:
		return "I/O error"
	case RunStepLimitExceeded:
		return "step limit exceeded"
	default:
		return "unknown"
	}
}

type InterpreterConfig struct {
	MemoryCellCount uint `toml:"memory_cell_count"`
	// MaxInstructionExecutionCount caps executed instructions for tooling
	// runs that can't trust the program to halt. Zero means no cap.
	MaxInstructionExecutionCount uint `toml:"max_instruction_execution_count"`
}

type flusher interface {
	Flush() error
}

// Interpreter drives a program counter over a Program, mutating a fixed
// array of byte cells. The data pointer moves with wrapping machine-word
// arithmetic and is bounds-checked only by the instructions that actually
// touch a cell, so moving left of cell zero wraps to a huge index that
// fails at the next access rather than at the move.
type Interpreter struct {
	Program              Program
	Memory               []uint8
	ProgramPointer       uint
	MemoryPointer        uint
	InstructionsExecuted uint
	Input                io.Reader
	Output               io.Writer
	Config               *InterpreterConfig
}

func NewInterpreter(program Program, config *InterpreterConfig, input io.Reader, output io.Writer) *Interpreter {
	return &Interpreter{
		Program: program,
		Memory:  make([]uint8, config.MemoryCellCount),
		Input:   input,
		Output:  output,
		Config:  config,
	}
}

// Reset rewinds the interpreter for another run of the same program.
func (i *Interpreter) Reset() {
	i.ProgramPointer = 0
	i.MemoryPointer = 0
	i.InstructionsExecuted = 0
	for j := range i.Memory {
		i.Memory[j] = 0
	}
}

// Run executes the program to completion or first failure.
//
// Every instruction, taken jumps included, is followed by a program counter
// increment, which is why loop targets are the index of the partner bracket
// itself. Output is flushed per byte when the sink supports it, so bytes
// are observable in order against anything else the process writes.
func (i *Interpreter) Run() RunResult {
	cells := uint(len(i.Memory))
	limit := i.Config.MaxInstructionExecutionCount
	for i.ProgramPointer < uint(len(i.Program)) {
		if limit > 0 && i.InstructionsExecuted >= limit {
			return RunStepLimitExceeded
		}
		ins := i.Program[i.ProgramPointer]
		switch ins.Op {
		case OpAdd:
			if i.MemoryPointer >= cells {
				return RunMemoryAccessError
			}
			i.Memory[i.MemoryPointer] += uint8(ins.Arg)
		case OpSubtract:
			if i.MemoryPointer >= cells {
				return RunMemoryAccessError
			}
			i.Memory[i.MemoryPointer] -= uint8(ins.Arg)
		case OpAdvance:
			i.MemoryPointer += ins.Arg
		case OpRetreat:
			i.MemoryPointer -= ins.Arg
		case OpOutput:
			if i.MemoryPointer >= cells {
				return RunMemoryAccessError
			}
			buf := [1]byte{i.Memory[i.MemoryPointer]}
			if _, err := i.Output.Write(buf[:]); err != nil {
				return RunIOError
			}
			if f, ok := i.Output.(flusher); ok {
				if err := f.Flush(); err != nil {
					return RunIOError
				}
			}
		case OpInput:
			if i.MemoryPointer >= cells {
				return RunMemoryAccessError
			}
			var buf [1]byte
			n, err := i.Input.Read(buf[:])
			if n > 0 {
				i.Memory[i.MemoryPointer] = buf[0]
			} else if err != nil && err != io.EOF {
				return RunIOError
			} else {
				// End of input is not an error; the cell reads as zero.
				i.Memory[i.MemoryPointer] = 0
			}
		case OpLoopStart:
			if i.MemoryPointer >= cells {
				return RunMemoryAccessError
			}
			if i.Memory[i.MemoryPointer] == 0 {
				i.ProgramPointer = ins.Arg
			}
		case OpLoopEnd:
			if i.MemoryPointer >= cells {
				return RunMemoryAccessError
			}
			if i.Memory[i.MemoryPointer] != 0 {
				i.ProgramPointer = ins.Arg
			}
		}
		i.ProgramPointer++
		i.InstructionsExecuted++
	}
	return RunOk
}

// CoreDump is a snapshot of machine state after a run, taken for reporting.
type CoreDump struct {
	ProgramPointer       uint
	MemoryPointer        uint
	InstructionsExecuted uint
	Memory               []uint8
}

func (i *Interpreter) CoreDump() *CoreDump {
	dump := &CoreDump{}
	cp.Copy(dump, i)
	// copier copies the slice header; the dump has to survive a Reset, so
	// the cells are copied out.
	dump.Memory = append([]uint8(nil), i.Memory...)
	return dump
}
