package disasm

import (
	"testing"

	"github.com/akupila/gowasm/wasm"
	"github.com/stretchr/testify/require"
)

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

// addModule mirrors spec.md §8 scenario 2.
func addModule(t *testing.T) *wasm.Module {
	t.Helper()
	typeSec := section(wasm.SectionType, concat(
		uleb(1),
		[]byte{byte(wasm.ValueTypeFunc)},
		uleb(2),
		[]byte{byte(wasm.ValueTypeI32), byte(wasm.ValueTypeI32)},
		[]byte{1},
		[]byte{byte(wasm.ValueTypeI32)},
	))
	funcSec := section(wasm.SectionFunction, concat(uleb(1), uleb(0)))
	exportSec := section(wasm.SectionExport, concat(
		uleb(1), uleb(3), []byte("add"), []byte{byte(wasm.ExtKindFunction)}, uleb(0),
	))
	body := []byte{byte(wasm.OpGetLocal), 0x00, byte(wasm.OpGetLocal), 0x01, byte(wasm.OpI32Add), byte(wasm.OpEnd)}
	codeSec := section(wasm.SectionCode, concat(
		uleb(1), uleb(uint32(1+len(body))), uleb(0), body,
	))
	mod, err := wasm.Parse(concat(preamble, typeSec, funcSec, exportSec, codeSec))
	require.NoError(t, err)
	return mod
}

func TestDisassembleAllIndexInvariant(t *testing.T) {
	mod := addModule(t)
	d := New(mod)
	require.NoError(t, d.DisassembleAll())

	require.Len(t, d.Functions, 1)
	require.Equal(t, uint32(0), d.RealFunctionOffset)

	fn := d.Functions[0]
	require.Equal(t, "fun_00000000", fn.Name)
	require.Equal(t, wasm.ValueTypeI32, fn.ReturnType)
	require.Len(t, fn.Locals, 2)
	require.True(t, fn.Locals[0].IsParameter)
	require.Equal(t, "par0", fn.Locals[0].Name)
	require.Equal(t, "par1", fn.Locals[1].Name)
	require.NotNil(t, fn.ExportedName)
	require.Equal(t, "add", *fn.ExportedName)
}

func TestDisassembleGlobal(t *testing.T) {
	globalSec := section(wasm.SectionGlobal, concat(
		uleb(1),
		[]byte{byte(wasm.ValueTypeI32), 1}, // i32, mutable
		[]byte{byte(wasm.OpI32Const)}, uleb(1024), []byte{byte(wasm.OpEnd)},
	))
	mod, err := wasm.Parse(concat(preamble, globalSec))
	require.NoError(t, err)

	d := New(mod)
	require.NoError(t, d.DisassembleAll())
	require.Len(t, d.Globals, 1)
	require.Equal(t, "global_0", d.Globals[0].Name)
	require.Equal(t, "1024", d.Globals[0].Value)
	require.False(t, d.Globals[0].IsConst)
}

func TestDataImageDeterminism(t *testing.T) {
	payload := []byte("hello\x00")
	dataSec := section(wasm.SectionData, concat(
		uleb(1), uleb(0),
		[]byte{byte(wasm.OpI32Const)}, uleb(16), []byte{byte(wasm.OpEnd)},
		uleb(uint32(len(payload))), payload,
	))
	mod, err := wasm.Parse(concat(preamble, dataSec))
	require.NoError(t, err)

	d := New(mod)
	require.NoError(t, d.DisassembleAll())
	ranges, err := d.CreateDataStream()
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	require.Equal(t, uint32(16), ranges[0].Start)
	require.Equal(t, uint32(16+len(payload)), ranges[0].End)
	require.Equal(t, payload, d.DataImage()[ranges[0].Start:ranges[0].End])
}

func TestReadableDataInfoString(t *testing.T) {
	payload := []byte("hello\x00")
	dataSec := section(wasm.SectionData, concat(
		uleb(1), uleb(0),
		[]byte{byte(wasm.OpI32Const)}, uleb(0), []byte{byte(wasm.OpEnd)},
		uleb(uint32(len(payload))), payload,
	))
	mod, err := wasm.Parse(concat(preamble, dataSec))
	require.NoError(t, err)

	d := New(mod)
	require.NoError(t, d.DisassembleAll())
	_, err = d.CreateDataStream()
	require.NoError(t, err)

	info, err := d.ReadableDataInfo(0)
	require.NoError(t, err)
	require.Equal(t, "hello", info)
}

func TestReadableDataInfoHexFallback(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	dataSec := section(wasm.SectionData, concat(
		uleb(1), uleb(0),
		[]byte{byte(wasm.OpI32Const)}, uleb(0), []byte{byte(wasm.OpEnd)},
		uleb(uint32(len(payload))), payload,
	))
	mod, err := wasm.Parse(concat(preamble, dataSec))
	require.NoError(t, err)

	d := New(mod)
	require.NoError(t, d.DisassembleAll())
	_, err = d.CreateDataStream()
	require.NoError(t, err)

	info, err := d.ReadableDataInfo(0)
	require.NoError(t, err)
	require.Equal(t, "h", info[len(info)-1:])
}

func TestReadableDataInfoRequiresStream(t *testing.T) {
	mod := addModule(t)
	d := New(mod)
	require.NoError(t, d.DisassembleAll())
	_, err := d.ReadableDataInfo(0)
	require.ErrorIs(t, err, wasm.ErrInvalidState)
}
