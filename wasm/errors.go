package wasm

import "errors"

// Sentinel errors surfaced at the package boundary, named per spec.md §6.
var (
	ErrInvalidModule      = errors.New("wasm: invalid module")
	ErrInvalidSectionID   = errors.New("wasm: invalid section id")
	ErrInvalidImportKind  = errors.New("wasm: invalid import kind")
	ErrInvalidExportKind  = errors.New("wasm: invalid export kind")
	ErrUnexpectedLocalType = errors.New("wasm: unexpected local type")
	ErrInvalidState       = errors.New("wasm: invalid state")
	ErrInvalidOpcode      = errors.New("wasm: invalid opcode")
)
