package wasm

// Helpers for hand-assembling minimal Wasm binaries in tests, since no
// toolchain runs here to compile a .wat fixture to .wasm.

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}

func sleb(v int32) []byte {
	var out []byte
	more := true
	for more {
		b := byte(v & 0x7F)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		out = append(out, b)
	}
	return out
}

func section(id SectionID, payload []byte) []byte {
	out := []byte{byte(id)}
	out = append(out, uleb(uint32(len(payload)))...)
	out = append(out, payload...)
	return out
}

func concat(bs ...[]byte) []byte {
	var out []byte
	for _, b := range bs {
		out = append(out, b...)
	}
	return out
}

var modulePreamble = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

// addModuleBytes builds spec.md §8 scenario 2: a single exported function
// `add(i32, i32) -> i32` with body `get_local 0; get_local 1; i32.add; end`.
func addModuleBytes() []byte {
	typeSec := section(SectionType, concat(
		uleb(1),                 // 1 type entry
		[]byte{byte(ValueTypeFunc)},
		uleb(2),                 // 2 params
		[]byte{byte(ValueTypeI32), byte(ValueTypeI32)},
		[]byte{1},               // has return
		[]byte{byte(ValueTypeI32)},
	))
	funcSec := section(SectionFunction, concat(uleb(1), uleb(0)))
	exportSec := section(SectionExport, concat(
		uleb(1),
		uleb(3), []byte("add"),
		[]byte{byte(ExtKindFunction)},
		uleb(0),
	))
	body := []byte{byte(OpGetLocal), 0x00, byte(OpGetLocal), 0x01, byte(OpI32Add), byte(OpEnd)}
	codeSec := section(SectionCode, concat(
		uleb(1),
		uleb(uint32(1+len(body))), // body size: 1 byte local-group-count + code
		uleb(0),                   // zero local groups
		body,
	))
	return concat(modulePreamble, typeSec, funcSec, exportSec, codeSec)
}
