package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEmptyModule(t *testing.T) {
	mod, err := Parse(modulePreamble)
	require.NoError(t, err)
	require.Empty(t, mod.Sections)
}

func TestParseMagicGuard(t *testing.T) {
	bad := append([]byte(nil), modulePreamble...)
	bad[0] ^= 0xFF
	_, err := Parse(bad)
	require.ErrorIs(t, err, ErrInvalidModule)
}

func TestParseVersionGuard(t *testing.T) {
	bad := append([]byte(nil), modulePreamble...)
	bad[4] = 2
	_, err := Parse(bad)
	require.ErrorIs(t, err, ErrInvalidModule)
}

func TestParseAddFunctionModule(t *testing.T) {
	mod, err := Parse(addModuleBytes())
	require.NoError(t, err)
	require.Len(t, mod.Sections, 4)

	ts, ok := mod.Sections[0].(*TypeSection)
	require.True(t, ok)
	require.Len(t, ts.Entries, 1)
	require.Equal(t, []ValueType{ValueTypeI32, ValueTypeI32}, ts.Entries[0].Params)
	require.True(t, ts.Entries[0].HasReturn)
	require.Equal(t, ValueTypeI32, ts.Entries[0].ReturnType)

	fs, ok := mod.Sections[1].(*FunctionSection)
	require.True(t, ok)
	require.Equal(t, []uint32{0}, fs.TypeIndices)

	es, ok := mod.Sections[2].(*ExportSection)
	require.True(t, ok)
	require.Equal(t, "add", es.Entries[0].Name)
	require.Equal(t, ExtKindFunction, es.Entries[0].Kind)
	require.Equal(t, uint32(0), es.Entries[0].Index)

	cs, ok := mod.Sections[3].(*CodeSection)
	require.True(t, ok)
	require.Len(t, cs.Bodies, 1)
	require.Empty(t, cs.Bodies[0].Locals)
	require.Equal(t, []byte{byte(OpGetLocal), 0, byte(OpGetLocal), 1, byte(OpI32Add), byte(OpEnd)}, cs.Bodies[0].Code)
}

func TestParseUnknownSectionID(t *testing.T) {
	bad := concat(modulePreamble, []byte{0x0D, 0x00}) // section id 13 doesn't exist
	_, err := Parse(bad)
	require.ErrorIs(t, err, ErrInvalidSectionID)
}

func TestParseTruncatedPayload(t *testing.T) {
	bad := concat(modulePreamble, []byte{byte(SectionType), 0x05, 0x01})
	_, err := Parse(bad)
	require.Error(t, err)
}
