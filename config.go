package bfint

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ToolConfig is the TOML config shared by the repo's command line tools.
//
//	[interpreter]
//	memory_cell_count = 30000
//	max_instruction_execution_count = 0
//
//	[persistence]
//	name = "bfint.db"
//	path = "."
//	sqlite_pragmas = ["journal_mode(WAL)"]
type ToolConfig struct {
	Interpreter *InterpreterConfig `toml:"interpreter"`
	Persistence *PersistenceConfig `toml:"persistence"`
}

func LoadToolConfig(path string) (*ToolConfig, error) {
	conffile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Unable to open config file [%s]. %w", path, err)
	}
	defer conffile.Close()

	var config ToolConfig
	if _, err := toml.NewDecoder(conffile).Decode(&config); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal tool config [%s]. %w", path, err)
	}

	if config.Interpreter == nil {
		config.Interpreter = &InterpreterConfig{MemoryCellCount: 30_000}
	}

	return &config, nil
}
