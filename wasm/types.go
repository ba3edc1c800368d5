package wasm

import "fmt"

// ValueType is a Wasm value type, encoded on the wire as a signed LEB128
// (varint7) byte.
type ValueType int8

const (
	// ValueTypeVoid is synthetic: it has no wire encoding and marks "no
	// return value" on a FuncType.
	ValueTypeVoid ValueType = -1

	// ValueTypeEmptyBlock marks a block/loop/if with no result type.
	ValueTypeEmptyBlock ValueType = 0x40
	// ValueTypeFunc is the type constructor tag for function types.
	ValueTypeFunc ValueType = 0x60
	// ValueTypeAnyFunc is the element type of the MVP function table.
	ValueTypeAnyFunc ValueType = 0x70
	// ValueTypeF64 is a 64-bit float.
	ValueTypeF64 ValueType = 0x7C
	// ValueTypeF32 is a 32-bit float.
	ValueTypeF32 ValueType = 0x7D
	// ValueTypeI64 is a 64-bit integer.
	ValueTypeI64 ValueType = 0x7E
	// ValueTypeI32 is a 32-bit integer.
	ValueTypeI32 ValueType = 0x7F
)

func (v ValueType) String() string {
	switch v {
	case ValueTypeVoid:
		return "void"
	case ValueTypeEmptyBlock:
		return "emptyblock"
	case ValueTypeFunc:
		return "func"
	case ValueTypeAnyFunc:
		return "anyfunc"
	case ValueTypeF64:
		return "f64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeI32:
		return "i32"
	default:
		return fmt.Sprintf("valuetype(0x%02x)", uint8(v))
	}
}

// TypeName renders v the way the decompiled output does: C-family type
// names rather than Wasm's own vocabulary.
func (v ValueType) TypeName() string {
	switch v {
	case ValueTypeI32:
		return "int"
	case ValueTypeI64:
		return "long long"
	case ValueTypeF32:
		return "float"
	case ValueTypeF64:
		return "double"
	case ValueTypeVoid:
		return "void"
	default:
		return v.String()
	}
}

// MarshalJSON renders v for debug dumps, mirroring the teacher's
// LangType.MarshalJSON convention.
func (v ValueType) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s (0x%02x)"`, v.String(), uint8(v))), nil
}

// SectionID identifies one of the twelve Wasm MVP sections.
type SectionID uint8

const (
	SectionCustom SectionID = iota
	SectionType
	SectionImport
	SectionFunction
	SectionTable
	SectionMemory
	SectionGlobal
	SectionExport
	SectionStart
	SectionElement
	SectionCode
	SectionData
)

var sectionNames = [...]string{
	"Custom", "Type", "Import", "Function", "Table", "Memory",
	"Global", "Export", "Start", "Element", "Code", "Data",
}

func (s SectionID) String() string {
	if int(s) < len(sectionNames) {
		return sectionNames[s]
	}
	return fmt.Sprintf("SectionID(%d)", uint8(s))
}

// ExternalKind is the kind tag on an Import or Export entry.
type ExternalKind uint8

const (
	ExtKindFunction ExternalKind = iota
	ExtKindTable
	ExtKindMemory
	ExtKindGlobal
)

var externalKindNames = [...]string{"Function", "Table", "Memory", "Global"}

func (e ExternalKind) String() string {
	if int(e) < len(externalKindNames) {
		return externalKindNames[e]
	}
	return fmt.Sprintf("ExternalKind(%d)", uint8(e))
}

// FuncType is a function signature from the Type section.
type FuncType struct {
	Params     []ValueType
	HasReturn  bool
	ReturnType ValueType
}

// ResizableLimits describes the size bounds of a table or memory.
type ResizableLimits struct {
	HasMax  bool
	Initial uint32
	Maximum uint32
}

// GlobalType is the declared type and mutability of a global.
type GlobalType struct {
	ContentType ValueType
	Mutable     bool
}

// TableType is the declared element type and limits of a table.
type TableType struct {
	ElemType ValueType
	Limits   ResizableLimits
}

// MemoryType is the declared limits of a linear memory.
type MemoryType struct {
	Limits ResizableLimits
}
