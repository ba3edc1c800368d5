// Package decompile lifts a disassembled module into one of two textual
// renderings: Flat (opcode-per-line, with recorded cross-references) or
// Structured (symbolic-stack-based pseudocode). Both operate over the same
// *disasm.Disassembler and satisfy Renderer, mirroring the teacher's
// interface-per-output-shape idiom generalized from its single eval.go
// switch statement (spec.md §9's renderer polymorphism note).
package decompile

import (
	"fmt"

	"github.com/akupila/gowasm/disasm"
	"github.com/akupila/gowasm/xref"
)

// Kind selects which renderer Run uses.
type Kind int

const (
	// KindFlat renders one line per opcode and records call cross-references.
	KindFlat Kind = iota
	// KindStructured renders symbolic, control-flow-aware pseudocode.
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindFlat:
		return "flat"
	case KindStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Renderer produces the textual decompilation of an already-disassembled
// module.
type Renderer interface {
	Render() (string, error)
}

// Run renders d (d must already have had DisassembleAll called) using the
// renderer named by kind. When kind is KindFlat and tracker is non-nil,
// every call instruction records an edge into it.
func Run(d *disasm.Disassembler, kind Kind, tracker *xref.Tracker) (string, error) {
	var r Renderer
	switch kind {
	case KindFlat:
		r = NewFlatRenderer(d, tracker)
	case KindStructured:
		r = NewStructuredRenderer(d)
	default:
		return "", fmt.Errorf("decompile: unknown renderer kind %v", kind)
	}
	return r.Render()
}
