package wasm

// Module is a parsed WASM module: the magic/version preamble plus its
// sections, in file order. The items in Sections are a mix of the
// SectionXXX types below, one concrete type per section present in the
// file (a valid but section-less file has a nil slice).
type Module struct {
	Version  uint32
	Sections []Section
}

// Section is implemented by every SectionXXX type.
type Section interface {
	ID() SectionID
}

// CustomSection is an unparsed, named section (e.g. "name", "producers").
type CustomSection struct {
	Name    string
	Payload []byte
}

// ID implements Section.
func (*CustomSection) ID() SectionID { return SectionCustom }

// TypeSection declares function signatures.
type TypeSection struct {
	Entries []FuncType
}

// ID implements Section.
func (*TypeSection) ID() SectionID { return SectionType }

// ImportEntry is one imported function, table, memory or global.
type ImportEntry struct {
	Module string
	Field  string
	Kind   ExternalKind

	// Exactly one of these is set, selected by Kind.
	FunctionTypeIndex uint32
	TableType         *TableType
	MemoryType        *MemoryType
	GlobalType        *GlobalType
}

// ImportSection declares the module's imports.
type ImportSection struct {
	Entries []ImportEntry
}

// ID implements Section.
func (*ImportSection) ID() SectionID { return SectionImport }

// FunctionSection declares the FuncType index of every code-section
// function, in order.
type FunctionSection struct {
	TypeIndices []uint32
}

// ID implements Section.
func (*FunctionSection) ID() SectionID { return SectionFunction }

// TableSection declares the module's tables (MVP: at most one).
type TableSection struct {
	Entries []TableType
}

// ID implements Section.
func (*TableSection) ID() SectionID { return SectionTable }

// MemorySection declares the module's linear memories (MVP: at most one).
type MemorySection struct {
	Entries []MemoryType
}

// ID implements Section.
func (*MemorySection) ID() SectionID { return SectionMemory }

// GlobalEntry is a global variable declaration with its raw initializer
// expression (terminated by, and including, 0x0B).
type GlobalEntry struct {
	Type GlobalType
	Init []byte
}

// GlobalSection declares the module's globals.
type GlobalSection struct {
	Globals []GlobalEntry
}

// ID implements Section.
func (*GlobalSection) ID() SectionID { return SectionGlobal }

// ExportEntry is one exported function, table, memory or global.
type ExportEntry struct {
	Name  string
	Kind  ExternalKind
	Index uint32
}

// ExportSection declares the module's exports.
type ExportSection struct {
	Entries []ExportEntry
}

// ID implements Section.
func (*ExportSection) ID() SectionID { return SectionExport }

// StartSection names the function invoked when the module is instantiated.
type StartSection struct {
	Index uint32
}

// ID implements Section.
func (*StartSection) ID() SectionID { return SectionStart }

// ElementSegment initializes a contiguous range of a table.
type ElementSegment struct {
	TableIndex uint32
	OffsetExpr []byte
	Elems      []uint32
}

// ElementSection declares the module's table initializers.
type ElementSection struct {
	Entries []ElementSegment
}

// ID implements Section.
func (*ElementSection) ID() SectionID { return SectionElement }

// LocalEntry is one local-variable group: Count consecutive locals of Type.
type LocalEntry struct {
	Count uint32
	Type  ValueType
}

// FunctionBody is a raw function body: its local-variable groups and
// instruction bytecode.
type FunctionBody struct {
	Locals []LocalEntry
	Code   []byte
}

// CodeSection holds a FunctionBody for every code-section function, in the
// same order as FunctionSection.TypeIndices.
type CodeSection struct {
	Bodies []FunctionBody
}

// ID implements Section.
func (*CodeSection) ID() SectionID { return SectionCode }

// DataSegment initializes a contiguous range of linear memory.
type DataSegment struct {
	MemoryIndex uint32
	OffsetExpr  []byte
	Payload     []byte
}

// DataSection declares the module's linear-memory initializers.
type DataSection struct {
	Entries []DataSegment
}

// ID implements Section.
func (*DataSection) ID() SectionID { return SectionData }

// Imports returns every ImportEntry of the given kind, in file order —
// a convenience used throughout disasm to locate e.g. the function imports.
func (m *Module) Imports(kind ExternalKind) []ImportEntry {
	var out []ImportEntry
	for _, sec := range m.Sections {
		is, ok := sec.(*ImportSection)
		if !ok {
			continue
		}
		for _, e := range is.Entries {
			if e.Kind == kind {
				out = append(out, e)
			}
		}
	}
	return out
}

// Section returns the first section of the given id, or nil.
func (m *Module) Section(id SectionID) Section {
	for _, sec := range m.Sections {
		if sec.ID() == id {
			return sec
		}
	}
	return nil
}
