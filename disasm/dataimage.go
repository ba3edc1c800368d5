package disasm

import (
	"fmt"

	"github.com/akupila/gowasm/leb128"
	"github.com/akupila/gowasm/wasm"
)

// CreateDataStream builds the merged data image from the module's Data
// segments: a growable buffer, zero-filled between segments, with each
// segment's payload written at its decoded offset. Returns the address
// range of each segment, in file order. See spec.md §4.3.
func (d *Disassembler) CreateDataStream() ([]AddressRange, error) {
	segs := dataSection(d.Module)

	var buf []byte
	ranges := make([]AddressRange, 0, len(segs))
	for i, seg := range segs {
		offset, err := decodeDataOffset(seg.OffsetExpr)
		if err != nil {
			return nil, fmt.Errorf("disasm: data segment %d: %w", i, err)
		}
		end := offset + uint32(len(seg.Payload))
		if uint32(len(buf)) < end {
			grown := make([]byte, end)
			copy(grown, buf)
			buf = grown
		}
		copy(buf[offset:end], seg.Payload)
		ranges = append(ranges, AddressRange{Start: offset, End: end})
	}

	d.dataImage = buf
	d.dataRanges = ranges
	d.haveData = true
	return ranges, nil
}

// DataImage returns the merged data image built by CreateDataStream.
func (d *Disassembler) DataImage() []byte { return d.dataImage }

// DataRanges returns the address ranges built by CreateDataStream.
func (d *Disassembler) DataRanges() []AddressRange { return d.dataRanges }

// InDataRange reports whether offset falls within any known data segment,
// used by the Flat renderer to decide whether to annotate a load/store
// operand with string-probe info.
func (d *Disassembler) InDataRange(offset uint32) bool {
	for _, r := range d.dataRanges {
		if offset >= r.Start && offset < r.End {
			return true
		}
	}
	return false
}

func decodeDataOffset(expr []byte) (uint32, error) {
	if len(expr) < 1 {
		return 0, fmt.Errorf("empty offset expression")
	}
	r := leb128.NewReader(expr[1:]) // skip the leading i32.const opcode byte
	return r.ReadULEB32()
}

// ReadableDataInfo implements the data probe: given an offset into the
// merged data image, it guesses an ANSI C-string, then a UTF-16 string,
// then falls back to a hex-rendered 32-bit integer. Requires an active
// data stream (CreateDataStream must have run).
func (d *Disassembler) ReadableDataInfo(offset uint32) (string, error) {
	if !d.haveData {
		return "", wasm.ErrInvalidState
	}
	if s, ok := tryAnsiString(d.dataImage, offset); ok {
		return s, nil
	}
	if s, ok := tryWideString(d.dataImage, offset); ok {
		return s, nil
	}
	return tryHexInt(d.dataImage, offset)
}

func tryAnsiString(buf []byte, offset uint32) (string, bool) {
	var out []byte
	for i := offset; ; i++ {
		if int(i) >= len(buf) {
			return "", false
		}
		b := buf[i]
		if b == 0 {
			return string(out), true
		}
		if b < 32 || b > 126 {
			return "", false
		}
		out = append(out, b)
	}
}

func tryWideString(buf []byte, offset uint32) (string, bool) {
	var out []rune
	for i := offset; ; i += 2 {
		if int(i)+2 > len(buf) {
			return "", false
		}
		u := uint16(buf[i])<<8 | uint16(buf[i+1]) // big-endian half-word
		if u == 0 {
			return string(out), true
		}
		if u < 32 || u > 126 {
			return "", false
		}
		out = append(out, rune(u))
	}
}

func tryHexInt(buf []byte, offset uint32) (string, error) {
	if int(offset)+4 > len(buf) {
		return "", fmt.Errorf("disasm: data probe at %#x: %w", offset, wasm.ErrInvalidState)
	}
	v := uint32(buf[offset]) | uint32(buf[offset+1])<<8 | uint32(buf[offset+2])<<16 | uint32(buf[offset+3])<<24
	return fmt.Sprintf("%xh", v), nil
}
