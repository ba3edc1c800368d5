// Package wasmtest holds small test-only helpers shared across this
// module's packages, generalizing the teacher's parser_test.go
// assertGolden/-update idiom into a reusable helper instead of a
// copy-pasted one per package.
package wasmtest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// Update is true when tests are invoked with -update, in which case
// AssertGolden overwrites the golden file instead of comparing against it.
var Update = flag.Bool("update", false, "update golden files")

// AssertGolden compares got against the contents of testdata/<name>,
// failing the test on a mismatch. With -update it writes got instead.
func AssertGolden(t testing.TB, name string, got []byte) {
	t.Helper()

	path := filepath.Join("testdata", name)
	if *Update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("wasmtest: create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("wasmtest: write golden file %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("wasmtest: read golden file %s: %v (run with -update to create it)", path, err)
	}

	if string(want) != string(got) {
		addr := 0
		for addr < len(want) && addr < len(got) && want[addr] == got[addr] {
			addr++
		}
		t.Errorf("golden file %s does not match; first difference at byte 0x%06x", path, addr)
	}
}
