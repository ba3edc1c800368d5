package cliutil

import (
	"fmt"
	"os"

	"github.com/akupila/gowasm/disasm"
	"github.com/akupila/gowasm/wasm"
)

// LoadModule reads path, parses it, and lifts it into a Disassembler ready
// for rendering. Shared by every subcommand so each one has exactly one
// "open file, parse, disassemble" call site.
func LoadModule(path string) (*wasm.Module, *disasm.Disassembler, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	mod, err := wasm.Parse(buf)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	d := disasm.New(mod)
	if err := d.DisassembleAll(); err != nil {
		return nil, nil, fmt.Errorf("disassemble %s: %w", path, err)
	}

	return mod, d, nil
}
