package bfint

import (
	"io"
	"time"
)

// RunReport is one persisted record of an interpreter run: what program ran,
// against how much memory, how it ended, and how much work it did.
type RunReport struct {
	ID                   uint
	CreatedAt            time.Time
	SourcePath           string
	MemoryCellCount      uint
	ProgramLength        uint
	Result               string
	InstructionsExecuted uint
	OutputByteCount      uint
	FinalMemoryPointer   uint
	DurationMicros       int64
}

func NewRunReport(sourcePath string, interp *Interpreter, result RunResult, outputBytes uint, duration time.Duration) *RunReport {
	dump := interp.CoreDump()
	return &RunReport{
		SourcePath:           sourcePath,
		MemoryCellCount:      uint(len(interp.Memory)),
		ProgramLength:        uint(len(interp.Program)),
		Result:               result.String(),
		InstructionsExecuted: dump.InstructionsExecuted,
		OutputByteCount:      outputBytes,
		FinalMemoryPointer:   dump.MemoryPointer,
		DurationMicros:       duration.Microseconds(),
	}
}

// CountingWriter counts the program output bytes on their way to the real
// sink so a RunReport can record them. Flush is forwarded when the sink
// supports it; the per-Output flush contract must reach the descriptor,
// not stop at the wrapper.
type CountingWriter struct {
	Sink  io.Writer
	Count uint
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.Sink.Write(p)
	c.Count += uint(n)
	return n, err
}

func (c *CountingWriter) Flush() error {
	if f, ok := c.Sink.(flusher); ok {
		return f.Flush()
	}
	return nil
}
