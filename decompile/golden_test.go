package decompile

import (
	"testing"

	"github.com/akupila/gowasm/internal/wasmtest"
	"github.com/akupila/gowasm/wasm"
)

// TestFlatAddFunctionGolden exercises the same module as
// TestFlatAddFunction but checks the renderer's exact byte output,
// generalizing the teacher's parser_test.go assertGolden idiom.
func TestFlatAddFunctionGolden(t *testing.T) {
	body := []byte{byte(wasm.OpGetLocal), 0x00, byte(wasm.OpGetLocal), 0x01, byte(wasm.OpI32Add), byte(wasm.OpEnd)}
	buf := buildFunctionModule([]wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI32}, wasm.ValueTypeI32, body, "add")
	d := mustDisasm(t, buf)

	out, err := NewFlatRenderer(d, nil).Render()
	if err != nil {
		t.Fatal(err)
	}
	wasmtest.AssertGolden(t, "flat_add.golden", []byte(out))
}
