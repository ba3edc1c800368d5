package leb128

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeULEB32(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			break
		}
	}
	return out
}

func encodeSLEB32(v int32) []byte {
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

func TestULEB32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 300, 0x7FFFFFFF, 0xFFFFFFFF}
	for _, v := range values {
		r := NewReader(encodeULEB32(v))
		got, err := r.ReadULEB32()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.True(t, r.AtEnd())
	}
}

func TestSLEB32RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 63, -63, 64, -64, 1 << 20, -(1 << 20), 0x7FFFFFFF, -0x7FFFFFFF - 1}
	for _, v := range values {
		r := NewReader(encodeSLEB32(v))
		got, err := r.ReadSLEB32()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestSLEB64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1 << 40, -(1 << 40)}
	for _, v := range values {
		// Encode by running the same algorithm at 64-bit width.
		var out []byte
		x := v
		more := true
		for more {
			b := byte(x & 0x7F)
			x >>= 7
			if (x == 0 && b&0x40 == 0) || (x == -1 && b&0x40 != 0) {
				more = false
			} else {
				b |= 0x80
			}
			out = append(out, b)
		}
		r := NewReader(out)
		got, err := r.ReadSLEB64()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestReadCStringAligned(t *testing.T) {
	buf := []byte("hi\x00\x00")
	r := NewReader(buf)
	s, err := r.ReadCString(true)
	require.NoError(t, err)
	require.Equal(t, "hi", s)
	require.Equal(t, uint64(4), r.Pos())
}

func TestReadCStringUnaligned(t *testing.T) {
	r := NewReader([]byte("hello\x00"))
	s, err := r.ReadCString(false)
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestSeekBounds(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	_, err := r.Seek(2, SeekBegin)
	require.NoError(t, err)
	require.Equal(t, uint64(2), r.Pos())

	_, err = r.Seek(10, SeekCurrent)
	require.ErrorIs(t, err, ErrUnexpectedEndOfStream)

	_, err = r.Seek(-1, SeekBegin)
	require.ErrorIs(t, err, ErrUnexpectedEndOfStream)

	_, err = r.Seek(0, SeekEnd)
	require.NoError(t, err)
	require.Equal(t, uint64(4), r.Pos())
}

func TestReadUnexpectedEOF(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadU32()
	require.ErrorIs(t, err, ErrUnexpectedEndOfStream)
}

func TestReadULEB32TooLong(t *testing.T) {
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
	r := NewReader(buf)
	_, err := r.ReadULEB32()
	require.ErrorIs(t, err, ErrInvalidLEB128)
}
