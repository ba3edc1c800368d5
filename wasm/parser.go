package wasm

import (
	"fmt"

	"github.com/akupila/gowasm/leb128"
)

// magic is the \0asm header, read as a little-endian u32, generalizing the
// teacher's parser.go magicnumber constant.
const magic = 0x6D736100

// mvpVersion is the only Module.Version this parser accepts.
const mvpVersion = 1

// Parser is an empty type with no methods; parsing is done by the
// package-level Parse function, which holds no state across calls.
type Parser struct{}

// Parse consumes buf and produces a Module of raw sections, per spec.md
// §4.2. It fails fast on a bad magic/version, an unknown section id, an
// unknown import kind, or a truncated payload.
func Parse(buf []byte) (*Module, error) {
	r := leb128.NewReader(buf)

	header, err := r.ReadU32()
	if err != nil || header != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidModule)
	}
	version, err := r.ReadU32()
	if err != nil || version != mvpVersion {
		return nil, fmt.Errorf("%w: bad version", ErrInvalidModule)
	}

	mod := &Module{Version: version}
	for !r.AtEnd() {
		sec, err := readSection(r)
		if err != nil {
			return nil, err
		}
		mod.Sections = append(mod.Sections, sec)
	}
	return mod, nil
}

func readSection(r *leb128.Reader) (Section, error) {
	idByte, err := r.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("read section id: %w", err)
	}
	id := SectionID(idByte)

	payloadLen, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("read section %s payload length: %w", id, err)
	}
	start := r.Pos()

	var sec Section
	switch id {
	case SectionCustom:
		sec, err = readCustomSection(r)
	case SectionType:
		sec, err = readTypeSection(r)
	case SectionImport:
		sec, err = readImportSection(r)
	case SectionFunction:
		sec, err = readFunctionSection(r)
	case SectionTable:
		sec, err = readTableSection(r)
	case SectionMemory:
		sec, err = readMemorySection(r)
	case SectionGlobal:
		sec, err = readGlobalSection(r)
	case SectionExport:
		sec, err = readExportSection(r)
	case SectionStart:
		sec, err = readStartSection(r)
	case SectionElement:
		sec, err = readElementSection(r)
	case SectionCode:
		sec, err = readCodeSection(r)
	case SectionData:
		sec, err = readDataSection(r)
	default:
		return nil, fmt.Errorf("%w: id %d", ErrInvalidSectionID, idByte)
	}
	if err != nil {
		return nil, fmt.Errorf("read section %s: %w", id, err)
	}

	// Re-synchronize to the declared section boundary: every decoder above
	// consumes exactly the bytes it parsed, but re-seeking guards against
	// any accounting drift rather than silently misaligning the rest of the
	// module.
	if _, err := r.Seek(int64(start+uint64(payloadLen)), leb128.SeekBegin); err != nil {
		return nil, fmt.Errorf("seek past section %s: %w", id, err)
	}

	return sec, nil
}

func readName(r *leb128.Reader) (string, error) {
	n, err := r.ReadULEB32()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readValueType(r *leb128.Reader) (ValueType, error) {
	v, err := r.ReadI8()
	return ValueType(v), err
}

func readResizableLimits(r *leb128.Reader) (ResizableLimits, error) {
	var l ResizableLimits
	flags, err := r.ReadU8()
	if err != nil {
		return l, fmt.Errorf("flags: %w", err)
	}
	l.HasMax = flags == 1
	if l.Initial, err = r.ReadULEB32(); err != nil {
		return l, fmt.Errorf("initial: %w", err)
	}
	if l.HasMax {
		if l.Maximum, err = r.ReadULEB32(); err != nil {
			return l, fmt.Errorf("maximum: %w", err)
		}
	}
	return l, nil
}

// readInitExpr reads a raw init expression: an opcode, its immediate, up to
// and including the terminating 0x0B (end).
func readInitExpr(r *leb128.Reader) ([]byte, error) {
	var buf []byte
	for {
		b, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		buf = append(buf, b)
		if b == byte(OpEnd) {
			return buf, nil
		}
	}
}

func readCustomSection(r *leb128.Reader) (Section, error) {
	name, err := readName(r)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	// The remainder of the payload is opaque; the caller re-seeks to the
	// section boundary afterwards, so there is nothing further to read
	// here (the count field spec.md mentions for Custom sections is
	// skipped entirely).
	return &CustomSection{Name: name}, nil
}

func readTypeSection(r *leb128.Reader) (Section, error) {
	count, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	entries := make([]FuncType, count)
	for i := range entries {
		form, err := r.ReadI8()
		if err != nil {
			return nil, fmt.Errorf("entry %d form: %w", i, err)
		}
		_ = form // always ValueTypeFunc (0x60) in the MVP
		paramCount, err := r.ReadULEB32()
		if err != nil {
			return nil, fmt.Errorf("entry %d param count: %w", i, err)
		}
		params := make([]ValueType, paramCount)
		for j := range params {
			if params[j], err = readValueType(r); err != nil {
				return nil, fmt.Errorf("entry %d param %d: %w", i, j, err)
			}
		}
		retCount, err := r.ReadU8()
		if err != nil {
			return nil, fmt.Errorf("entry %d return count: %w", i, err)
		}
		ft := FuncType{Params: params, HasReturn: retCount == 1, ReturnType: ValueTypeVoid}
		if ft.HasReturn {
			if ft.ReturnType, err = readValueType(r); err != nil {
				return nil, fmt.Errorf("entry %d return type: %w", i, err)
			}
		}
		entries[i] = ft
	}
	return &TypeSection{Entries: entries}, nil
}

func readImportSection(r *leb128.Reader) (Section, error) {
	count, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	entries := make([]ImportEntry, count)
	for i := range entries {
		var e ImportEntry
		if e.Module, err = readName(r); err != nil {
			return nil, fmt.Errorf("entry %d module: %w", i, err)
		}
		if e.Field, err = readName(r); err != nil {
			return nil, fmt.Errorf("entry %d field: %w", i, err)
		}
		kindByte, err := r.ReadU8()
		if err != nil {
			return nil, fmt.Errorf("entry %d kind: %w", i, err)
		}
		e.Kind = ExternalKind(kindByte)
		switch e.Kind {
		case ExtKindFunction:
			if e.FunctionTypeIndex, err = r.ReadULEB32(); err != nil {
				return nil, fmt.Errorf("entry %d function type index: %w", i, err)
			}
		case ExtKindTable:
			elemType, err := readValueType(r)
			if err != nil {
				return nil, fmt.Errorf("entry %d table elem type: %w", i, err)
			}
			limits, err := readResizableLimits(r)
			if err != nil {
				return nil, fmt.Errorf("entry %d table limits: %w", i, err)
			}
			e.TableType = &TableType{ElemType: elemType, Limits: limits}
		case ExtKindMemory:
			limits, err := readResizableLimits(r)
			if err != nil {
				return nil, fmt.Errorf("entry %d memory limits: %w", i, err)
			}
			e.MemoryType = &MemoryType{Limits: limits}
		case ExtKindGlobal:
			contentType, err := readValueType(r)
			if err != nil {
				return nil, fmt.Errorf("entry %d global content type: %w", i, err)
			}
			mut, err := r.ReadU8()
			if err != nil {
				return nil, fmt.Errorf("entry %d global mutability: %w", i, err)
			}
			e.GlobalType = &GlobalType{ContentType: contentType, Mutable: mut == 1}
		default:
			return nil, fmt.Errorf("%w: %d", ErrInvalidImportKind, kindByte)
		}
		entries[i] = e
	}
	return &ImportSection{Entries: entries}, nil
}

func readFunctionSection(r *leb128.Reader) (Section, error) {
	count, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	indices := make([]uint32, count)
	for i := range indices {
		if indices[i], err = r.ReadULEB32(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return &FunctionSection{TypeIndices: indices}, nil
}

func readTableSection(r *leb128.Reader) (Section, error) {
	count, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	entries := make([]TableType, count)
	for i := range entries {
		elemType, err := readValueType(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d elem type: %w", i, err)
		}
		limits, err := readResizableLimits(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d limits: %w", i, err)
		}
		entries[i] = TableType{ElemType: elemType, Limits: limits}
	}
	return &TableSection{Entries: entries}, nil
}

func readMemorySection(r *leb128.Reader) (Section, error) {
	count, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	entries := make([]MemoryType, count)
	for i := range entries {
		limits, err := readResizableLimits(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d limits: %w", i, err)
		}
		entries[i] = MemoryType{Limits: limits}
	}
	return &MemorySection{Entries: entries}, nil
}

func readGlobalSection(r *leb128.Reader) (Section, error) {
	count, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	globals := make([]GlobalEntry, count)
	for i := range globals {
		contentType, err := readValueType(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d content type: %w", i, err)
		}
		mut, err := r.ReadU8()
		if err != nil {
			return nil, fmt.Errorf("entry %d mutability: %w", i, err)
		}
		init, err := readInitExpr(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d init: %w", i, err)
		}
		globals[i] = GlobalEntry{
			Type: GlobalType{ContentType: contentType, Mutable: mut == 1},
			Init: init,
		}
	}
	return &GlobalSection{Globals: globals}, nil
}

func readExportSection(r *leb128.Reader) (Section, error) {
	count, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	entries := make([]ExportEntry, count)
	for i := range entries {
		name, err := readName(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d name: %w", i, err)
		}
		kindByte, err := r.ReadU8()
		if err != nil {
			return nil, fmt.Errorf("entry %d kind: %w", i, err)
		}
		kind := ExternalKind(kindByte)
		if kind > ExtKindGlobal {
			return nil, fmt.Errorf("%w: %d", ErrInvalidExportKind, kindByte)
		}
		index, err := r.ReadULEB32()
		if err != nil {
			return nil, fmt.Errorf("entry %d index: %w", i, err)
		}
		entries[i] = ExportEntry{Name: name, Kind: kind, Index: index}
	}
	return &ExportSection{Entries: entries}, nil
}

func readStartSection(r *leb128.Reader) (Section, error) {
	index, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	return &StartSection{Index: index}, nil
}

func readElementSection(r *leb128.Reader) (Section, error) {
	count, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	entries := make([]ElementSegment, count)
	for i := range entries {
		tableIndex, err := r.ReadULEB32()
		if err != nil {
			return nil, fmt.Errorf("entry %d table index: %w", i, err)
		}
		offset, err := readInitExpr(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d offset: %w", i, err)
		}
		numElems, err := r.ReadULEB32()
		if err != nil {
			return nil, fmt.Errorf("entry %d elem count: %w", i, err)
		}
		elems := make([]uint32, numElems)
		for j := range elems {
			if elems[j], err = r.ReadULEB32(); err != nil {
				return nil, fmt.Errorf("entry %d elem %d: %w", i, j, err)
			}
		}
		entries[i] = ElementSegment{TableIndex: tableIndex, OffsetExpr: offset, Elems: elems}
	}
	return &ElementSection{Entries: entries}, nil
}

func readCodeSection(r *leb128.Reader) (Section, error) {
	count, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	bodies := make([]FunctionBody, count)
	for i := range bodies {
		bodySize, err := r.ReadULEB32()
		if err != nil {
			return nil, fmt.Errorf("entry %d body size: %w", i, err)
		}
		before := r.Pos()

		localGroupCount, err := r.ReadULEB32()
		if err != nil {
			return nil, fmt.Errorf("entry %d local group count: %w", i, err)
		}
		locals := make([]LocalEntry, localGroupCount)
		for j := range locals {
			localCount, err := r.ReadULEB32()
			if err != nil {
				return nil, fmt.Errorf("entry %d local group %d count: %w", i, j, err)
			}
			localType, err := readValueType(r)
			if err != nil {
				return nil, fmt.Errorf("entry %d local group %d type: %w", i, j, err)
			}
			locals[j] = LocalEntry{Count: localCount, Type: localType}
		}

		after := r.Pos()
		consumed := after - before
		if consumed > uint64(bodySize) {
			return nil, fmt.Errorf("entry %d: locals overran body size", i)
		}
		codeLen := uint64(bodySize) - consumed
		code, err := r.ReadBytes(int(codeLen))
		if err != nil {
			return nil, fmt.Errorf("entry %d code: %w", i, err)
		}
		bodies[i] = FunctionBody{Locals: locals, Code: code}
	}
	return &CodeSection{Bodies: bodies}, nil
}

func readDataSection(r *leb128.Reader) (Section, error) {
	count, err := r.ReadULEB32()
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	entries := make([]DataSegment, count)
	for i := range entries {
		memIndex, err := r.ReadULEB32()
		if err != nil {
			return nil, fmt.Errorf("entry %d memory index: %w", i, err)
		}
		offset, err := readInitExpr(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d offset: %w", i, err)
		}
		size, err := r.ReadULEB32()
		if err != nil {
			return nil, fmt.Errorf("entry %d size: %w", i, err)
		}
		payload, err := r.ReadBytes(int(size))
		if err != nil {
			return nil, fmt.Errorf("entry %d payload: %w", i, err)
		}
		entries[i] = DataSegment{MemoryIndex: memIndex, OffsetExpr: offset, Payload: payload}
	}
	return &DataSection{Entries: entries}, nil
}
