// Package disasm lowers a parsed wasm.Module into named, typed entities:
// functions (imports prepended), globals with decoded initializers, types,
// the element-segment table image, and the merged data-segment image.
//
// Grounded on go-interpreter-wagon's disasm package (the Disassemble(fn,
// module) shape and its module-relative function lookups) and on the
// teacher's single-pass, error-eager decoding style.
package disasm

import (
	"fmt"

	"github.com/akupila/gowasm/leb128"
	"github.com/akupila/gowasm/wasm"
)

// Local is one parameter or local variable of a lifted Function.
type Local struct {
	Name        string
	Type        wasm.ValueType
	IsParameter bool
}

// Function is the lifted, named form of a Wasm function: an import (Body is
// nil) or a code-section definition.
type Function struct {
	Name         string
	ReturnType   wasm.ValueType
	Index        uint32
	Locals       []Local
	Body         []byte
	ExportedName *string
}

// IsImport reports whether the function has no body, i.e. was declared by
// the Import section rather than the Code section.
func (f *Function) IsImport() bool { return f.Body == nil }

// Global is the lifted, named form of a Wasm global: its decoded constant
// initializer rendered as decimal text, its C-family type name, and whether
// it is immutable.
type Global struct {
	Name    string
	Value   string
	Type    string
	IsConst bool
}

// AddressRange is a half-open [Start, End) byte range in the merged data
// image, corresponding to one Data segment.
type AddressRange struct {
	Start uint32
	End   uint32
}

// Disassembler lifts a parsed Module into named functions, globals, types,
// a table image and (on demand) a merged data image.
type Disassembler struct {
	Module *wasm.Module

	Functions []*Function
	Globals   []*Global
	Types     []wasm.FuncType
	Table     []uint32 // global function indices, from the first Element segment

	// RealFunctionOffset is the number of Function-kind imports: indices
	// below it refer to imports, indices at or above it refer to
	// code-section functions.
	RealFunctionOffset uint32

	dataImage  []byte
	dataRanges []AddressRange
	haveData   bool
}

// New builds a Disassembler over mod. Call DisassembleAll to populate
// Functions/Globals/Types/Table.
func New(mod *wasm.Module) *Disassembler {
	return &Disassembler{Module: mod}
}

func typeSection(mod *wasm.Module) []wasm.FuncType {
	if ts, ok := mod.Section(wasm.SectionType).(*wasm.TypeSection); ok {
		return ts.Entries
	}
	return nil
}

func functionSection(mod *wasm.Module) []uint32 {
	if fs, ok := mod.Section(wasm.SectionFunction).(*wasm.FunctionSection); ok {
		return fs.TypeIndices
	}
	return nil
}

func codeSection(mod *wasm.Module) []wasm.FunctionBody {
	if cs, ok := mod.Section(wasm.SectionCode).(*wasm.CodeSection); ok {
		return cs.Bodies
	}
	return nil
}

func exportSection(mod *wasm.Module) []wasm.ExportEntry {
	if es, ok := mod.Section(wasm.SectionExport).(*wasm.ExportSection); ok {
		return es.Entries
	}
	return nil
}

func globalSection(mod *wasm.Module) []wasm.GlobalEntry {
	if gs, ok := mod.Section(wasm.SectionGlobal).(*wasm.GlobalSection); ok {
		return gs.Globals
	}
	return nil
}

func elementSection(mod *wasm.Module) []wasm.ElementSegment {
	if es, ok := mod.Section(wasm.SectionElement).(*wasm.ElementSection); ok {
		return es.Entries
	}
	return nil
}

func dataSection(mod *wasm.Module) []wasm.DataSegment {
	if ds, ok := mod.Section(wasm.SectionData).(*wasm.DataSection); ok {
		return ds.Entries
	}
	return nil
}

// DisassembleAll clears any previously lifted functions, re-adds the
// imported functions, then lifts every code-section function, decodes
// globals, copies types, and collapses the first Element segment into a
// table image. See spec.md §4.3.
func (d *Disassembler) DisassembleAll() error {
	d.Types = append([]wasm.FuncType(nil), typeSection(d.Module)...)

	imports := d.Module.Imports(wasm.ExtKindFunction)
	d.RealFunctionOffset = uint32(len(imports))

	d.Functions = make([]*Function, 0, len(imports))
	for i, imp := range imports {
		if int(imp.FunctionTypeIndex) >= len(d.Types) {
			return fmt.Errorf("disasm: import %d: type index %d out of range", i, imp.FunctionTypeIndex)
		}
		ft := d.Types[imp.FunctionTypeIndex]
		fn := &Function{
			Name:       fmt.Sprintf("$imp_%s.%s", imp.Module, imp.Field),
			ReturnType: ft.ReturnType,
			Index:      uint32(i),
			Locals:     paramsToLocals(ft.Params),
		}
		d.Functions = append(d.Functions, fn)
	}

	if err := d.decodeGlobals(); err != nil {
		return err
	}

	d.Table = nil
	if segs := elementSection(d.Module); len(segs) > 0 {
		if len(segs[0].Elems) == 0 {
			return fmt.Errorf("disasm: empty element segment: %w", wasm.ErrInvalidState)
		}
		d.Table = append([]uint32(nil), segs[0].Elems...)
	}

	typeIdx := functionSection(d.Module)
	bodies := codeSection(d.Module)
	if len(typeIdx) != len(bodies) {
		return fmt.Errorf("disasm: function/code section length mismatch: %d vs %d", len(typeIdx), len(bodies))
	}

	exports := exportSection(d.Module)

	for n := 0; n < len(bodies); n++ {
		if int(typeIdx[n]) >= len(d.Types) {
			return fmt.Errorf("disasm: function %d: type index %d out of range", n, typeIdx[n])
		}
		ft := d.Types[typeIdx[n]]
		globalIndex := d.RealFunctionOffset + uint32(n)

		locals := paramsToLocals(ft.Params)
		locals = append(locals, localsFromGroups(bodies[n].Locals)...)

		fn := &Function{
			Name:       fmt.Sprintf("fun_%08X", globalIndex),
			ReturnType: ft.ReturnType,
			Index:      globalIndex,
			Locals:     locals,
			Body:       bodies[n].Code,
		}
		for _, exp := range exports {
			if exp.Kind == wasm.ExtKindFunction && exp.Index == globalIndex {
				name := exp.Name
				fn.ExportedName = &name
				break
			}
		}
		d.Functions = append(d.Functions, fn)
	}

	return nil
}

func paramsToLocals(params []wasm.ValueType) []Local {
	out := make([]Local, len(params))
	for i, t := range params {
		out[i] = Local{Name: fmt.Sprintf("par%d", i), Type: t, IsParameter: true}
	}
	return out
}

func localsFromGroups(groups []wasm.LocalEntry) []Local {
	var out []Local
	counter := 0
	for _, g := range groups {
		for i := uint32(0); i < g.Count; i++ {
			out = append(out, Local{Name: fmt.Sprintf("local%d", counter), Type: g.Type})
			counter++
		}
	}
	return out
}

// decodeGlobals reads each global's init expression: an opcode byte, the
// immediate for the declared content type, then the terminating 0x0B. Per
// spec.md §4.3, I32/I64 constants are unsigned LEB, F32/F64 are raw bytes
// reinterpreted as an integer for display.
func (d *Disassembler) decodeGlobals() error {
	entries := globalSection(d.Module)
	d.Globals = make([]*Global, len(entries))
	for i, g := range entries {
		value, err := decodeGlobalInit(g)
		if err != nil {
			return fmt.Errorf("disasm: global %d: %w", i, err)
		}
		d.Globals[i] = &Global{
			Name:    fmt.Sprintf("global_%d", i),
			Value:   value,
			Type:    g.Type.ContentType.TypeName(),
			IsConst: !g.Type.Mutable,
		}
	}
	return nil
}

func decodeGlobalInit(g wasm.GlobalEntry) (string, error) {
	if len(g.Init) < 2 {
		return "", fmt.Errorf("init expression too short")
	}
	r := leb128.NewReader(g.Init[1:]) // skip the opcode byte
	switch g.Type.ContentType {
	case wasm.ValueTypeI32:
		v, err := r.ReadULEB32()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", int32(v)), nil
	case wasm.ValueTypeI64:
		v, err := r.ReadULEB64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", int64(v)), nil
	case wasm.ValueTypeF32:
		v, err := r.ReadU32()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", int32(v)), nil
	case wasm.ValueTypeF64:
		v, err := r.ReadU64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", int64(v)), nil
	default:
		return "", fmt.Errorf("%w: global content type %s", wasm.ErrUnexpectedLocalType, g.Type.ContentType)
	}
}

// FunctionAt returns the lifted function at global index idx, or nil.
func (d *Disassembler) FunctionAt(idx uint32) *Function {
	for _, f := range d.Functions {
		if f.Index == idx {
			return f
		}
	}
	return nil
}
