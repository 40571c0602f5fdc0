package main

import (
	"flag"
	"log"
	"os"
	"time"

	bf "github.com/xnor99/bfint"
)

/*
	Read tool config (TOML)

	With -file:
		Parse and run the program with the configured cell count and
		instruction cap, stdin/stdout attached
		Persist a RunReport for the run
		Print a one line summary to stderr

	With -recent:
		Print the N newest RunReports instead of running anything
*/

var toolConfigPath *string = flag.String("config", "./config.toml", "The config file for bfint tools to use. Defaults to './config.toml'")

var sourcePath *string = flag.String("file", "", "The brainfuck source file to run and report on")

var recentCount *int = flag.Int("recent", 0, "Print this many recent run reports instead of running a program")

func main() {
	flag.Parse()

	toolConfig, err := bf.LoadToolConfig(*toolConfigPath)
	if err != nil {
		log.Fatalf("Unable to load bfint config: %v", err)
	}

	persist, err := bf.NewPersistence(toolConfig.Persistence)
	if err != nil {
		log.Fatalf("Failed to create or initialize Persistence: %v", err)
	}
	defer persist.Shutdown()

	if *recentCount > 0 {
		reports, err := persist.RecentReports(*recentCount)
		if err != nil {
			log.Fatalf("Unable to load run reports from DB: %v", err)
		}
		for _, report := range reports {
			log.Printf("[%d] %s: result=%s cells=%d instructions=%d output_bytes=%d duration=%dus",
				report.ID, report.SourcePath, report.Result, report.MemoryCellCount,
				report.InstructionsExecuted, report.OutputByteCount, report.DurationMicros)
		}
		return
	}

	if *sourcePath == "" {
		log.Fatalf("No source file. Provide one with -file or use -recent")
	}

	source, err := os.ReadFile(*sourcePath)
	if err != nil {
		log.Fatalf("Unable to read source file [%s]: %v", *sourcePath, err)
	}

	program, err := bf.Parse(source)
	if err != nil {
		log.Fatalf("Failed to parse program: %v", err)
	}

	output := &bf.CountingWriter{Sink: os.Stdout}
	interp := bf.NewInterpreter(program, toolConfig.Interpreter, os.Stdin, output)

	start := time.Now()
	result := interp.Run()
	duration := time.Since(start)

	report := bf.NewRunReport(*sourcePath, interp, result, output.Count, duration)
	if id, err := persist.SaveReport(report); err != nil {
		log.Fatalf("Persisting run report failed: %v", err)
	} else {
		log.Printf("[%d] %s: result=%s instructions=%d output_bytes=%d duration=%dus",
			id, *sourcePath, report.Result, report.InstructionsExecuted,
			report.OutputByteCount, report.DurationMicros)
	}
}
