package decompile

import "github.com/akupila/gowasm/wasm"

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

func section(id wasm.SectionID, payload []byte) []byte {
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

var preamble = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

// buildFunctionModule assembles a single-function module with signature
// params -> returnType (or no return if returnType == ValueTypeVoid),
// exported under exportName if non-empty, with the given raw body bytes
// (no trailing OpEnd added automatically).
func buildFunctionModule(params []wasm.ValueType, returnType wasm.ValueType, body []byte, exportName string) []byte {
	retCount := byte(0)
	var retBytes []byte
	if returnType != wasm.ValueTypeVoid {
		retCount = 1
		retBytes = []byte{byte(returnType)}
	}
	paramBytes := make([]byte, 0, len(params))
	for _, p := range params {
		paramBytes = append(paramBytes, byte(p))
	}
	typeSec := section(wasm.SectionType, concat(
		uleb(1),
		[]byte{byte(wasm.ValueTypeFunc)},
		uleb(uint32(len(params))),
		paramBytes,
		[]byte{retCount},
		retBytes,
	))
	funcSec := section(wasm.SectionFunction, concat(uleb(1), uleb(0)))
	codeSec := section(wasm.SectionCode, concat(
		uleb(1), uleb(uint32(1+len(body))), uleb(0), body,
	))

	pieces := [][]byte{preamble, typeSec, funcSec}
	if exportName != "" {
		exportSec := section(wasm.SectionExport, concat(
			uleb(1), uleb(uint32(len(exportName))), []byte(exportName), []byte{byte(wasm.ExtKindFunction)}, uleb(0),
		))
		pieces = append(pieces, exportSec)
	}
	pieces = append(pieces, codeSec)
	return concat(pieces...)
}
