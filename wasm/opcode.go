package wasm

import "fmt"

// OpCode is a Wasm instruction opcode.
type OpCode uint8

const (
	OpUnreachable OpCode = 0x00
	OpNop OpCode = 0x01
	OpBlock OpCode = 0x02
	OpLoop OpCode = 0x03
	OpIf OpCode = 0x04
	OpElse OpCode = 0x05
	OpEnd OpCode = 0x0B
	OpBr OpCode = 0x0C
	OpBrIf OpCode = 0x0D
	OpBrTable OpCode = 0x0E
	OpReturn OpCode = 0x0F
	OpCall OpCode = 0x10
	OpCallIndirect OpCode = 0x11
	OpDrop OpCode = 0x1A
	OpSelect OpCode = 0x1B
	OpGetLocal OpCode = 0x20
	OpSetLocal OpCode = 0x21
	OpTeeLocal OpCode = 0x22
	OpGetGlobal OpCode = 0x23
	OpSetGlobal OpCode = 0x24
	OpI32Load OpCode = 0x28
	OpI64Load OpCode = 0x29
	OpF32Load OpCode = 0x2A
	OpF64Load OpCode = 0x2B
	OpI32Load8S OpCode = 0x2C
	OpI32Load8U OpCode = 0x2D
	OpI32Load16S OpCode = 0x2E
	OpI32Load16U OpCode = 0x2F
	OpI64Load8S OpCode = 0x30
	OpI64Load8U OpCode = 0x31
	OpI64Load16S OpCode = 0x32
	OpI64Load16U OpCode = 0x33
	OpI64Load32S OpCode = 0x34
	OpI64Load32U OpCode = 0x35
	OpI32Store OpCode = 0x36
	OpI64Store OpCode = 0x37
	OpF32Store OpCode = 0x38
	OpF64Store OpCode = 0x39
	OpI32Store8 OpCode = 0x3A
	OpI32Store16 OpCode = 0x3B
	OpI64Store8 OpCode = 0x3C
	OpI64Store16 OpCode = 0x3D
	OpI64Store32 OpCode = 0x3E
	OpCurrentMemory OpCode = 0x3F
	OpGrowMemory OpCode = 0x40
	OpI32Const OpCode = 0x41
	OpI64Const OpCode = 0x42
	OpF32Const OpCode = 0x43
	OpF64Const OpCode = 0x44
	OpI32Eqz OpCode = 0x45
	OpI32Eq OpCode = 0x46
	OpI32Ne OpCode = 0x47
	OpI32LtS OpCode = 0x48
	OpI32LtU OpCode = 0x49
	OpI32GtS OpCode = 0x4A
	OpI32GtU OpCode = 0x4B
	OpI32LeS OpCode = 0x4C
	OpI32LeU OpCode = 0x4D
	OpI32GeS OpCode = 0x4E
	OpI32GeU OpCode = 0x4F
	OpI64Eqz OpCode = 0x50
	OpI64Eq OpCode = 0x51
	OpI64Ne OpCode = 0x52
	OpI64LtS OpCode = 0x53
	OpI64LtU OpCode = 0x54
	OpI64GtS OpCode = 0x55
	OpI64GtU OpCode = 0x56
	OpI64LeS OpCode = 0x57
	OpI64LeU OpCode = 0x58
	OpI64GeS OpCode = 0x59
	OpI64GeU OpCode = 0x5A
	OpF32Eq OpCode = 0x5B
	OpF32Ne OpCode = 0x5C
	OpF32Lt OpCode = 0x5D
	OpF32Gt OpCode = 0x5E
	OpF32Le OpCode = 0x5F
	OpF32Ge OpCode = 0x60
	OpF64Eq OpCode = 0x61
	OpF64Ne OpCode = 0x62
	OpF64Lt OpCode = 0x63
	OpF64Gt OpCode = 0x64
	OpF64Le OpCode = 0x65
	OpF64Ge OpCode = 0x66
	OpI32Clz OpCode = 0x67
	OpI32Ctz OpCode = 0x68
	OpI32Popcnt OpCode = 0x69
	OpI32Add OpCode = 0x6A
	OpI32Sub OpCode = 0x6B
	OpI32Mul OpCode = 0x6C
	OpI32DivS OpCode = 0x6D
	OpI32DivU OpCode = 0x6E
	OpI32RemS OpCode = 0x6F
	OpI32RemU OpCode = 0x70
	OpI32And OpCode = 0x71
	OpI32Or OpCode = 0x72
	OpI32Xor OpCode = 0x73
	OpI32Shl OpCode = 0x74
	OpI32ShrS OpCode = 0x75
	OpI32ShrU OpCode = 0x76
	OpI32Rotl OpCode = 0x77
	OpI32Rotr OpCode = 0x78
	OpI64Clz OpCode = 0x79
	OpI64Ctz OpCode = 0x7A
	OpI64Popcnt OpCode = 0x7B
	OpI64Add OpCode = 0x7C
	OpI64Sub OpCode = 0x7D
	OpI64Mul OpCode = 0x7E
	OpI64DivS OpCode = 0x7F
	OpI64DivU OpCode = 0x80
	OpI64RemS OpCode = 0x81
	OpI64RemU OpCode = 0x82
	OpI64And OpCode = 0x83
	OpI64Or OpCode = 0x84
	OpI64Xor OpCode = 0x85
	OpI64Shl OpCode = 0x86
	OpI64ShrS OpCode = 0x87
	OpI64ShrU OpCode = 0x88
	OpI64Rotl OpCode = 0x89
	OpI64Rotr OpCode = 0x8A
	OpF32Abs OpCode = 0x8B
	OpF32Neg OpCode = 0x8C
	OpF32Ceil OpCode = 0x8D
	OpF32Floor OpCode = 0x8E
	OpF32Trunc OpCode = 0x8F
	OpF32Nearest OpCode = 0x90
	OpF32Sqrt OpCode = 0x91
	OpF32Add OpCode = 0x92
	OpF32Sub OpCode = 0x93
	OpF32Mul OpCode = 0x94
	OpF32Div OpCode = 0x95
	OpF32Min OpCode = 0x96
	OpF32Max OpCode = 0x97
	OpF32Copysign OpCode = 0x98
	OpF64Abs OpCode = 0x99
	OpF64Neg OpCode = 0x9A
	OpF64Ceil OpCode = 0x9B
	OpF64Floor OpCode = 0x9C
	OpF64Trunc OpCode = 0x9D
	OpF64Nearest OpCode = 0x9E
	OpF64Sqrt OpCode = 0x9F
	OpF64Add OpCode = 0xA0
	OpF64Sub OpCode = 0xA1
	OpF64Mul OpCode = 0xA2
	OpF64Div OpCode = 0xA3
	OpF64Min OpCode = 0xA4
	OpF64Max OpCode = 0xA5
	OpF64Copysign OpCode = 0xA6
	OpI32WrapI64 OpCode = 0xA7
	OpI32TruncSF32 OpCode = 0xA8
	OpI32TruncUF32 OpCode = 0xA9
	OpI32TruncSF64 OpCode = 0xAA
	OpI32TruncUF64 OpCode = 0xAB
	OpI64ExtendSI32 OpCode = 0xAC
	OpI64ExtendUI32 OpCode = 0xAD
	OpI64TruncSF32 OpCode = 0xAE
	OpI64TruncUF32 OpCode = 0xAF
	OpI64TruncSF64 OpCode = 0xB0
	OpI64TruncUF64 OpCode = 0xB1
	OpF32ConvertSI32 OpCode = 0xB2
	OpF32ConvertUI32 OpCode = 0xB3
	OpF32ConvertSI64 OpCode = 0xB4
	OpF32ConvertUI64 OpCode = 0xB5
	OpF32DemoteF64 OpCode = 0xB6
	OpF64ConvertSI32 OpCode = 0xB7
	OpF64ConvertUI32 OpCode = 0xB8
	OpF64ConvertSI64 OpCode = 0xB9
	OpF64ConvertUI64 OpCode = 0xBA
	OpF64PromoteF32 OpCode = 0xBB
	OpI32ReinterpretF32 OpCode = 0xBC
	OpI64ReinterpretF64 OpCode = 0xBD
	OpF32ReinterpretI32 OpCode = 0xBE
	OpF64ReinterpretI64 OpCode = 0xBF
	OpTruncSatPrefix OpCode = 0xFC
)

var opcodeMnemonics = map[OpCode]string{
	OpUnreachable: "unreachable",
	OpNop: "nop",
	OpBlock: "block",
	OpLoop: "loop",
	OpIf: "if",
	OpElse: "else",
	OpEnd: "end",
	OpBr: "br",
	OpBrIf: "br_if",
	OpBrTable: "br_table",
	OpReturn: "return",
	OpCall: "call",
	OpCallIndirect: "call_indirect",
	OpDrop: "drop",
	OpSelect: "select",
	OpGetLocal: "getlocal",
	OpSetLocal: "setlocal",
	OpTeeLocal: "teelocal",
	OpGetGlobal: "getglobal",
	OpSetGlobal: "setglobal",
	OpI32Load: "i32_load",
	OpI64Load: "i64_load",
	OpF32Load: "f32_load",
	OpF64Load: "f64_load",
	OpI32Load8S: "i32_load8_s",
	OpI32Load8U: "i32_load8_u",
	OpI32Load16S: "i32_load16_s",
	OpI32Load16U: "i32_load16_u",
	OpI64Load8S: "i64_load8_s",
	OpI64Load8U: "i64_load8_u",
	OpI64Load16S: "i64_load16_s",
	OpI64Load16U: "i64_load16_u",
	OpI64Load32S: "i64_load32_s",
	OpI64Load32U: "i64_load32_u",
	OpI32Store: "i32_store",
	OpI64Store: "i64_store",
	OpF32Store: "f32_store",
	OpF64Store: "f64_store",
	OpI32Store8: "i32_store8",
	OpI32Store16: "i32_store16",
	OpI64Store8: "i64_store8",
	OpI64Store16: "i64_store16",
	OpI64Store32: "i64_store32",
	OpCurrentMemory: "current_memory",
	OpGrowMemory: "grow_memory",
	OpI32Const: "i32_const",
	OpI64Const: "i64_const",
	OpF32Const: "f32_const",
	OpF64Const: "f64_const",
	OpI32Eqz: "i32_eqz",
	OpI32Eq: "i32_eq",
	OpI32Ne: "i32_ne",
	OpI32LtS: "i32_lt_s",
	OpI32LtU: "i32_lt_u",
	OpI32GtS: "i32_gt_s",
	OpI32GtU: "i32_gt_u",
	OpI32LeS: "i32_le_s",
	OpI32LeU: "i32_le_u",
	OpI32GeS: "i32_ge_s",
	OpI32GeU: "i32_ge_u",
	OpI64Eqz: "i64_eqz",
	OpI64Eq: "i64_eq",
	OpI64Ne: "i64_ne",
	OpI64LtS: "i64_lt_s",
	OpI64LtU: "i64_lt_u",
	OpI64GtS: "i64_gt_s",
	OpI64GtU: "i64_gt_u",
	OpI64LeS: "i64_le_s",
	OpI64LeU: "i64_le_u",
	OpI64GeS: "i64_ge_s",
	OpI64GeU: "i64_ge_u",
	OpF32Eq: "f32_eq",
	OpF32Ne: "f32_ne",
	OpF32Lt: "f32_lt",
	OpF32Gt: "f32_gt",
	OpF32Le: "f32_le",
	OpF32Ge: "f32_ge",
	OpF64Eq: "f64_eq",
	OpF64Ne: "f64_ne",
	OpF64Lt: "f64_lt",
	OpF64Gt: "f64_gt",
	OpF64Le: "f64_le",
	OpF64Ge: "f64_ge",
	OpI32Clz: "i32_clz",
	OpI32Ctz: "i32_ctz",
	OpI32Popcnt: "i32_popcnt",
	OpI32Add: "i32_add",
	OpI32Sub: "i32_sub",
	OpI32Mul: "i32_mul",
	OpI32DivS: "i32_div_s",
	OpI32DivU: "i32_div_u",
	OpI32RemS: "i32_rem_s",
	OpI32RemU: "i32_rem_u",
	OpI32And: "i32_and",
	OpI32Or: "i32_or",
	OpI32Xor: "i32_xor",
	OpI32Shl: "i32_shl",
	OpI32ShrS: "i32_shr_s",
	OpI32ShrU: "i32_shr_u",
	OpI32Rotl: "i32_rotl",
	OpI32Rotr: "i32_rotr",
	OpI64Clz: "i64_clz",
	OpI64Ctz: "i64_ctz",
	OpI64Popcnt: "i64_popcnt",
	OpI64Add: "i64_add",
	OpI64Sub: "i64_sub",
	OpI64Mul: "i64_mul",
	OpI64DivS: "i64_div_s",
	OpI64DivU: "i64_div_u",
	OpI64RemS: "i64_rem_s",
	OpI64RemU: "i64_rem_u",
	OpI64And: "i64_and",
	OpI64Or: "i64_or",
	OpI64Xor: "i64_xor",
	OpI64Shl: "i64_shl",
	OpI64ShrS: "i64_shr_s",
	OpI64ShrU: "i64_shr_u",
	OpI64Rotl: "i64_rotl",
	OpI64Rotr: "i64_rotr",
	OpF32Abs: "f32_abs",
	OpF32Neg: "f32_neg",
	OpF32Ceil: "f32_ceil",
	OpF32Floor: "f32_floor",
	OpF32Trunc: "f32_trunc",
	OpF32Nearest: "f32_nearest",
	OpF32Sqrt: "f32_sqrt",
	OpF32Add: "f32_add",
	OpF32Sub: "f32_sub",
	OpF32Mul: "f32_mul",
	OpF32Div: "f32_div",
	OpF32Min: "f32_min",
	OpF32Max: "f32_max",
	OpF32Copysign: "f32_copysign",
	OpF64Abs: "f64_abs",
	OpF64Neg: "f64_neg",
	OpF64Ceil: "f64_ceil",
	OpF64Floor: "f64_floor",
	OpF64Trunc: "f64_trunc",
	OpF64Nearest: "f64_nearest",
	OpF64Sqrt: "f64_sqrt",
	OpF64Add: "f64_add",
	OpF64Sub: "f64_sub",
	OpF64Mul: "f64_mul",
	OpF64Div: "f64_div",
	OpF64Min: "f64_min",
	OpF64Max: "f64_max",
	OpF64Copysign: "f64_copysign",
	OpI32WrapI64: "i32_wrap_i64",
	OpI32TruncSF32: "i32_trunc_s_f32",
	OpI32TruncUF32: "i32_trunc_u_f32",
	OpI32TruncSF64: "i32_trunc_s_f64",
	OpI32TruncUF64: "i32_trunc_u_f64",
	OpI64ExtendSI32: "i64_extend_s_i32",
	OpI64ExtendUI32: "i64_extend_u_i32",
	OpI64TruncSF32: "i64_trunc_s_f32",
	OpI64TruncUF32: "i64_trunc_u_f32",
	OpI64TruncSF64: "i64_trunc_s_f64",
	OpI64TruncUF64: "i64_trunc_u_f64",
	OpF32ConvertSI32: "f32_convert_s_i32",
	OpF32ConvertUI32: "f32_convert_u_i32",
	OpF32ConvertSI64: "f32_convert_s_i64",
	OpF32ConvertUI64: "f32_convert_u_i64",
	OpF32DemoteF64: "f32_demote_f64",
	OpF64ConvertSI32: "f64_convert_s_i32",
	OpF64ConvertUI32: "f64_convert_u_i32",
	OpF64ConvertSI64: "f64_convert_s_i64",
	OpF64ConvertUI64: "f64_convert_u_i64",
	OpF64PromoteF32: "f64_promote_f32",
	OpI32ReinterpretF32: "i32_reinterpret_f32",
	OpI64ReinterpretF64: "i64_reinterpret_f64",
	OpF32ReinterpretI32: "f32_reinterpret_i32",
	OpF64ReinterpretI64: "f64_reinterpret_i64",
	OpTruncSatPrefix: "trunc_sat_prefix",
}

// Mnemonic returns the flat-renderer mnemonic text for op.
func (o OpCode) Mnemonic() string {
	if m, ok := opcodeMnemonics[o]; ok {
		return m
	}
	return fmt.Sprintf("op_%02x", byte(o))
}

// IsValid reports whether op is a recognized MVP opcode.
func (o OpCode) IsValid() bool {
	_, ok := opcodeMnemonics[o]
	return ok
}

// String renders the opcode using its mnemonic, for debug output.
func (o OpCode) String() string {
	return o.Mnemonic()
}

// TruncSatOp is the secondary selector byte following the 0xFC prefix,
// spec.md's "ixx_trunc_sat_fyy_p" saturating truncation group.
type TruncSatOp uint8

const (
	OpI32TruncSatF32S TruncSatOp = iota
	OpI32TruncSatF32U
	OpI32TruncSatF64S
	OpI32TruncSatF64U
	OpI64TruncSatF32S
	OpI64TruncSatF32U
	OpI64TruncSatF64S
	OpI64TruncSatF64U
)

var truncSatMnemonics = [...]string{
	"i32_trunc_sat_f32_s",
	"i32_trunc_sat_f32_u",
	"i32_trunc_sat_f64_s",
	"i32_trunc_sat_f64_u",
	"i64_trunc_sat_f32_s",
	"i64_trunc_sat_f32_u",
	"i64_trunc_sat_f64_s",
	"i64_trunc_sat_f64_u",
}

// Mnemonic returns the flat-renderer mnemonic text for the selector.
func (o TruncSatOp) Mnemonic() string {
	if int(o) < len(truncSatMnemonics) {
		return truncSatMnemonics[o]
	}
	return fmt.Sprintf("trunc_sat_%02x", byte(o))
}
