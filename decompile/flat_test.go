package decompile

import (
	"strings"
	"testing"

	"github.com/akupila/gowasm/disasm"
	"github.com/akupila/gowasm/wasm"
	"github.com/akupila/gowasm/xref"
	"github.com/stretchr/testify/require"
)

func mustDisasm(t *testing.T, buf []byte) *disasm.Disassembler {
	t.Helper()
	mod, err := wasm.Parse(buf)
	require.NoError(t, err)
	d := disasm.New(mod)
	require.NoError(t, d.DisassembleAll())
	return d
}

func TestFlatEmptyModule(t *testing.T) {
	d := mustDisasm(t, preamble)
	out, err := NewFlatRenderer(d, nil).Render()
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFlatAddFunction(t *testing.T) {
	body := []byte{byte(wasm.OpGetLocal), 0x00, byte(wasm.OpGetLocal), 0x01, byte(wasm.OpI32Add), byte(wasm.OpEnd)}
	buf := buildFunctionModule([]wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI32}, wasm.ValueTypeI32, body, "add")
	d := mustDisasm(t, buf)

	out, err := NewFlatRenderer(d, nil).Render()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	var opLines int
	for _, l := range lines {
		if strings.Contains(l, "getlocal") || strings.Contains(l, "i32_add") {
			opLines++
		}
	}
	require.Equal(t, 3, opLines, "expected getlocal par0, getlocal par1, i32_add: got %q", out)
	require.NotContains(t, out, "\tend\n", "trailing end of function body must be suppressed")
}

func TestFlatGlobalLoad(t *testing.T) {
	globalSec := section(wasm.SectionGlobal, concat(
		uleb(1),
		[]byte{byte(wasm.ValueTypeI32), 1},
		[]byte{byte(wasm.OpI32Const)}, uleb(1024), []byte{byte(wasm.OpEnd)},
	))
	body := []byte{byte(wasm.OpGetGlobal), 0x00, byte(wasm.OpI32Load), 0x02, 0x00, byte(wasm.OpEnd)}
	// buildFunctionModule doesn't support extra sections, so this case
	// assembles the module directly to splice the global section in.
	typeSec := section(wasm.SectionType, concat(
		uleb(1), []byte{byte(wasm.ValueTypeFunc)}, uleb(0), []byte{1}, []byte{byte(wasm.ValueTypeI32)},
	))
	funcSec := section(wasm.SectionFunction, concat(uleb(1), uleb(0)))
	codeSec := section(wasm.SectionCode, concat(uleb(1), uleb(uint32(1+len(body))), uleb(0), body))
	buf := concat(preamble, typeSec, funcSec, globalSec, codeSec)

	d := mustDisasm(t, buf)
	out, err := NewFlatRenderer(d, nil).Render()
	require.NoError(t, err)
	require.Contains(t, out, "getglobal global_0")
	require.Contains(t, out, "i32_load 00000000h [align=2]")
}

func TestFlatInvalidOpcode(t *testing.T) {
	body := []byte{0x06, byte(wasm.OpEnd)}
	buf := buildFunctionModule(nil, wasm.ValueTypeVoid, body, "")
	d := mustDisasm(t, buf)
	_, err := NewFlatRenderer(d, nil).Render()
	require.ErrorIs(t, err, wasm.ErrInvalidOpcode)
}

func TestFlatRecordsCallXref(t *testing.T) {
	calleeBody := []byte{byte(wasm.OpI32Const), 0x2A, byte(wasm.OpEnd)}
	callerBody := []byte{byte(wasm.OpCall), 0x00, byte(wasm.OpEnd)}

	typeSec := section(wasm.SectionType, concat(
		uleb(2),
		[]byte{byte(wasm.ValueTypeFunc)}, uleb(0), []byte{1}, []byte{byte(wasm.ValueTypeI32)},
		[]byte{byte(wasm.ValueTypeFunc)}, uleb(0), []byte{1}, []byte{byte(wasm.ValueTypeI32)},
	))
	funcSec := section(wasm.SectionFunction, concat(uleb(2), uleb(0), uleb(1)))
	codeSec := section(wasm.SectionCode, concat(
		uleb(2),
		uleb(uint32(1+len(calleeBody))), uleb(0), calleeBody,
		uleb(uint32(1+len(callerBody))), uleb(0), callerBody,
	))
	buf := concat(preamble, typeSec, funcSec, codeSec)
	d := mustDisasm(t, buf)

	tracker := xref.New()
	_, err := NewFlatRenderer(d, tracker).Render()
	require.NoError(t, err)

	edges := tracker.Edges()
	require.Len(t, edges, 1)
	require.Equal(t, uint32(1), edges[0].Caller.Index)
	require.Equal(t, uint32(0), edges[0].Target.Index)
}
