package decompile

import (
	"testing"

	"github.com/akupila/gowasm/wasm"
	"github.com/stretchr/testify/require"
)

func TestStructuredEmptyModule(t *testing.T) {
	d := mustDisasm(t, preamble)
	out, err := NewStructuredRenderer(d).Render()
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestStructuredAddFunctionImplicitReturn(t *testing.T) {
	body := []byte{byte(wasm.OpGetLocal), 0x00, byte(wasm.OpGetLocal), 0x01, byte(wasm.OpI32Add), byte(wasm.OpEnd)}
	buf := buildFunctionModule([]wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI32}, wasm.ValueTypeI32, body, "add")
	d := mustDisasm(t, buf)

	out, err := NewStructuredRenderer(d).Render()
	require.NoError(t, err)
	require.Contains(t, out, "return par0 + par1;")
}

func TestStructuredGlobalLoad(t *testing.T) {
	globalSec := section(wasm.SectionGlobal, concat(
		uleb(1),
		[]byte{byte(wasm.ValueTypeI32), 1},
		[]byte{byte(wasm.OpI32Const)}, uleb(1024), []byte{byte(wasm.OpEnd)},
	))
	body := []byte{byte(wasm.OpGetGlobal), 0x00, byte(wasm.OpI32Load), 0x02, 0x00, byte(wasm.OpEnd)}
	typeSec := section(wasm.SectionType, concat(
		uleb(1), []byte{byte(wasm.ValueTypeFunc)}, uleb(0), []byte{1}, []byte{byte(wasm.ValueTypeI32)},
	))
	funcSec := section(wasm.SectionFunction, concat(uleb(1), uleb(0)))
	codeSec := section(wasm.SectionCode, concat(uleb(1), uleb(uint32(1+len(body))), uleb(0), body))
	buf := concat(preamble, typeSec, funcSec, globalSec, codeSec)

	d := mustDisasm(t, buf)
	out, err := NewStructuredRenderer(d).Render()
	require.NoError(t, err)
	require.Contains(t, out, "return mem_get_value(global_0, 2);")
}

func TestStructuredLoopBrIf(t *testing.T) {
	body := []byte{
		byte(wasm.OpLoop), byte(wasm.ValueTypeEmptyBlock),
		byte(wasm.OpGetLocal), 0x00,
		byte(wasm.OpI32Const), 0x00,
		byte(wasm.OpI32GtU),
		byte(wasm.OpBrIf), 0x00,
		byte(wasm.OpEnd),
		byte(wasm.OpEnd),
	}
	buf := buildFunctionModule([]wasm.ValueType{wasm.ValueTypeI32}, wasm.ValueTypeVoid, body, "")
	d := mustDisasm(t, buf)

	out, err := NewStructuredRenderer(d).Render()
	require.NoError(t, err)
	require.Contains(t, out, "while (true) {")
	require.Contains(t, out, "continue loop_0;")
	require.Contains(t, out, "break loop_0;")
}

func TestStructuredSelect(t *testing.T) {
	body := concat(
		[]byte{byte(wasm.OpI32Const)}, sleb(123),
		[]byte{byte(wasm.OpI32Const)}, sleb(456),
		[]byte{byte(wasm.OpI32Const)}, sleb(1),
		[]byte{byte(wasm.OpSelect)},
		[]byte{byte(wasm.OpEnd)},
	)
	buf := buildFunctionModule(nil, wasm.ValueTypeI32, body, "")
	d := mustDisasm(t, buf)

	out, err := NewStructuredRenderer(d).Render()
	require.NoError(t, err)
	require.Contains(t, out, "return 1 ? 456 : 123;") // documented select order artifact, see decodeSimple
}

func TestStructuredInvalidOpcode(t *testing.T) {
	body := []byte{0x06, byte(wasm.OpEnd)}
	buf := buildFunctionModule(nil, wasm.ValueTypeVoid, body, "")
	d := mustDisasm(t, buf)
	_, err := NewStructuredRenderer(d).Render()
	require.ErrorIs(t, err, wasm.ErrInvalidOpcode)
}

func TestStructuredCallExpression(t *testing.T) {
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

	out, err := NewStructuredRenderer(d).Render()
	require.NoError(t, err)
	require.Contains(t, out, "return fun_00000000();")
}
