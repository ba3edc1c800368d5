package decompile

import (
	"fmt"
	"strings"

	"github.com/akupila/gowasm/disasm"
	"github.com/akupila/gowasm/leb128"
	"github.com/akupila/gowasm/wasm"
	"github.com/akupila/gowasm/xref"
)

// FlatRenderer produces an opcode-per-line, assembly-like rendering. It is
// the decompiler variant that records cross-references, per spec.md §4.6.
//
// Grounded on go-interpreter-wagon/disasm's single-pass opcode walk and on
// the teacher's big-switch-over-opcode-byte idiom (eval.go).
type FlatRenderer struct {
	d       *disasm.Disassembler
	tracker *xref.Tracker
	buf     strings.Builder
	pc      uint32
}

// NewFlatRenderer builds a FlatRenderer over the already-disassembled d. If
// tracker is non-nil, every call site is recorded into it.
func NewFlatRenderer(d *disasm.Disassembler, tracker *xref.Tracker) *FlatRenderer {
	return &FlatRenderer{d: d, tracker: tracker}
}

// Render produces the full module listing: a preamble of globals and
// non-function exports, then one block per function.
func (fr *FlatRenderer) Render() (string, error) {
	if _, err := fr.d.CreateDataStream(); err != nil {
		return "", fmt.Errorf("decompile: %w", err)
	}
	fr.renderPreamble()
	for _, fn := range fr.d.Functions {
		if err := fr.renderFunction(fn); err != nil {
			return "", fmt.Errorf("decompile: function %s: %w", fn.Name, err)
		}
	}
	return fr.buf.String(), nil
}

func (fr *FlatRenderer) renderPreamble() {
	for _, g := range fr.d.Globals {
		fmt.Fprintf(&fr.buf, "static %s = %s;\n", g.Name, g.Value)
	}
	for _, sec := range fr.d.Module.Sections {
		es, ok := sec.(*wasm.ExportSection)
		if !ok {
			continue
		}
		for _, e := range es.Entries {
			if e.Kind == wasm.ExtKindFunction {
				continue
			}
			fmt.Fprintf(&fr.buf, "export %s %q (%d);\n", e.Kind, e.Name, e.Index)
		}
	}
	if len(fr.d.Globals) > 0 || fr.hasNonFunctionExport() {
		fr.buf.WriteString("\n")
	}
}

func (fr *FlatRenderer) hasNonFunctionExport() bool {
	for _, sec := range fr.d.Module.Sections {
		es, ok := sec.(*wasm.ExportSection)
		if !ok {
			continue
		}
		for _, e := range es.Entries {
			if e.Kind != wasm.ExtKindFunction {
				return true
			}
		}
	}
	return false
}

func (fr *FlatRenderer) renderFunction(fn *disasm.Function) error {
	sig := fr.signature(fn)

	if fn.Body == nil {
		line := sig
		if fn.ExportedName != nil {
			line += " export " + *fn.ExportedName
		}
		fr.buf.WriteString(line + ";\n")
		return nil
	}

	prefix := fmt.Sprintf("%08X\t", fr.pc)
	line := prefix + sig
	if fn.ExportedName != nil {
		line += " export " + *fn.ExportedName
	}
	fr.buf.WriteString(line + " {\n")

	for _, l := range fn.Locals {
		if l.IsParameter {
			continue
		}
		fmt.Fprintf(&fr.buf, "\t%s %s;\n", l.Type.TypeName(), l.Name)
	}
	fr.buf.WriteString("\n")

	if err := fr.renderBody(fn); err != nil {
		return err
	}

	fr.buf.WriteString("}\n\n")
	fr.pc += uint32(len(fn.Body))
	return nil
}

func (fr *FlatRenderer) signature(fn *disasm.Function) string {
	var params []string
	for _, l := range fn.Locals {
		if l.IsParameter {
			params = append(params, fmt.Sprintf("%s %s", l.Type.TypeName(), l.Name))
		}
	}
	return fmt.Sprintf("%s %s(%s)", fn.ReturnType.TypeName(), fn.Name, strings.Join(params, ", "))
}

func (fr *FlatRenderer) renderBody(fn *disasm.Function) error {
	r := leb128.NewReader(fn.Body)
	for !r.AtEnd() {
		start := r.Pos()
		opByte, err := r.ReadU8()
		if err != nil {
			return err
		}
		op := wasm.OpCode(opByte)
		pcValue := fr.pc + uint32(start)

		if op == wasm.OpBlock {
			// Consume and discard the block's result type; the label
			// stands in for a normal instruction line entirely.
			if _, err := r.ReadI8(); err != nil {
				return err
			}
			fmt.Fprintf(&fr.buf, "label_%08X:\n", pcValue)
			continue
		}

		if op == wasm.OpEnd && start == uint64(len(fn.Body)-1) {
			// The terminating end of the function body is suppressed.
			continue
		}

		operand, err := fr.operand(fn, r, op, pcValue)
		if err != nil {
			return err
		}

		mnemonic := op.Mnemonic()
		if op == wasm.OpTruncSatPrefix {
			sel, err := r.ReadU8()
			if err != nil {
				return err
			}
			mnemonic = wasm.TruncSatOp(sel).Mnemonic()
		}

		if operand == "" {
			fmt.Fprintf(&fr.buf, "%08X\t%s\n", pcValue, mnemonic)
		} else {
			fmt.Fprintf(&fr.buf, "%08X\t%s %s\n", pcValue, mnemonic, operand)
		}
	}
	return nil
}

// operand reads and renders the operand(s) for op, advancing r past them.
// The leading opcode byte has already been consumed by the caller; op is
// that primary opcode byte. For the 0xFC group the caller reads the
// secondary selector after this returns.
func (fr *FlatRenderer) operand(fn *disasm.Function, r *leb128.Reader, op wasm.OpCode, pcValue uint32) (string, error) {
	switch op {
	case wasm.OpLoop, wasm.OpIf:
		bt, err := r.ReadI8()
		if err != nil {
			return "", err
		}
		if wasm.ValueType(bt) == wasm.ValueTypeEmptyBlock {
			return "", nil
		}
		return wasm.ValueType(bt).String(), nil

	case wasm.OpBr, wasm.OpBrIf:
		depth, err := r.ReadULEB32()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", depth), nil

	case wasm.OpBrTable:
		count, err := r.ReadULEB32()
		if err != nil {
			return "", err
		}
		targets := make([]string, 0, count)
		for i := uint32(0); i < count; i++ {
			t, err := r.ReadULEB32()
			if err != nil {
				return "", err
			}
			targets = append(targets, fmt.Sprintf("%d", t))
		}
		def, err := r.ReadULEB32()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%s] default=%d", strings.Join(targets, ", "), def), nil

	case wasm.OpCall:
		idx, err := r.ReadULEB32()
		if err != nil {
			return "", err
		}
		callee := fr.d.FunctionAt(idx)
		if callee == nil {
			return "", fmt.Errorf("call to out-of-range function %d", idx)
		}
		if fr.tracker != nil {
			fr.tracker.Record(xref.NewCrossReference(
				xref.FunctionRef{Index: fn.Index, Name: fn.Name},
				xref.FunctionRef{Index: callee.Index, Name: callee.Name},
				pcValue,
			))
		}
		return callee.Name, nil

	case wasm.OpCallIndirect:
		typeIdx, err := r.ReadULEB32()
		if err != nil {
			return "", err
		}
		if _, err := r.ReadU8(); err != nil { // reserved
			return "", err
		}
		return fmt.Sprintf("type_%d", typeIdx), nil

	case wasm.OpGetLocal, wasm.OpSetLocal, wasm.OpTeeLocal:
		idx, err := r.ReadULEB32()
		if err != nil {
			return "", err
		}
		if int(idx) >= len(fn.Locals) {
			return "", fmt.Errorf("local index %d out of range", idx)
		}
		return fn.Locals[idx].Name, nil

	case wasm.OpGetGlobal, wasm.OpSetGlobal:
		idx, err := r.ReadULEB32()
		if err != nil {
			return "", err
		}
		if int(idx) >= len(fr.d.Globals) {
			return "", fmt.Errorf("global index %d out of range", idx)
		}
		return fr.d.Globals[idx].Name, nil

	case wasm.OpI32Load, wasm.OpI64Load, wasm.OpF32Load, wasm.OpF64Load,
		wasm.OpI32Load8S, wasm.OpI32Load8U, wasm.OpI32Load16S, wasm.OpI32Load16U,
		wasm.OpI64Load8S, wasm.OpI64Load8U, wasm.OpI64Load16S, wasm.OpI64Load16U,
		wasm.OpI64Load32S, wasm.OpI64Load32U,
		wasm.OpI32Store, wasm.OpI64Store, wasm.OpF32Store, wasm.OpF64Store,
		wasm.OpI32Store8, wasm.OpI32Store16, wasm.OpI64Store8, wasm.OpI64Store16, wasm.OpI64Store32:
		align, err := r.ReadULEB32()
		if err != nil {
			return "", err
		}
		offset, err := r.ReadULEB32()
		if err != nil {
			return "", err
		}
		out := fmt.Sprintf("%08Xh [align=%d]", offset, align)
		if fr.d.InDataRange(offset) {
			if info, err := fr.d.ReadableDataInfo(offset); err == nil {
				out += " [" + info + "]"
			}
		}
		return out, nil

	case wasm.OpCurrentMemory, wasm.OpGrowMemory:
		if _, err := r.ReadULEB32(); err != nil { // reserved
			return "", err
		}
		return "", nil

	case wasm.OpI32Const:
		v, err := r.ReadSLEB32()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", v), nil

	case wasm.OpI64Const:
		v, err := r.ReadSLEB64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", v), nil

	case wasm.OpF32Const:
		bits, err := r.ReadU32()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", int32(bits)), nil

	case wasm.OpF64Const:
		bits, err := r.ReadU64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", int64(bits)), nil

	case wasm.OpTruncSatPrefix:
		// The secondary selector byte is consumed by the caller once it
		// knows this is the prefix opcode; no further operand here.
		return "", nil

	default:
		if !op.IsValid() {
			return "", fmt.Errorf("%w: 0x%02X", wasm.ErrInvalidOpcode, byte(op))
		}
		return "", nil
	}
}
