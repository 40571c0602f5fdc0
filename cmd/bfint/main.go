package main

import (
	"fmt"
	"os"
	"strconv"

	bf "github.com/xnor99/bfint"
)

/*
	bfint <source-path> <memory-size>

	Runs a brainfuck program from a file against a fixed number of byte
	cells, with program I/O on stdin/stdout. Diagnostics go to stderr;
	the exit code is 0 only for a clean run.
*/

func run() int {
	args := os.Args[1:]
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: [path] [mem_size]")
		return 1
	}

	memorySize, err := strconv.ParseUint(args[1], 10, strconv.IntSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "usage: [path] [mem_size]")
		return 1
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "couldn't read file")
		return 1
	}

	program, err := bf.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, "couldn't parse program")
		return 1
	}

	config := &bf.InterpreterConfig{MemoryCellCount: uint(memorySize)}
	switch bf.NewInterpreter(program, config, os.Stdin, os.Stdout).Run() {
	case bf.RunMemoryAccessError:
		fmt.Fprintln(os.Stderr, "memory access error")
		return 1
	case bf.RunIOError:
		fmt.Fprintln(os.Stderr, "I/O error")
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
