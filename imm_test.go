package emei

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeImmWidths(t *testing.T) {
	for _, w := range []Width{Bit8, Bit16, Bit32, Bit64} {
		b := EncodeImm(w, 0x1122334455667788)
		require.Len(t, b, int(w), "width %v", w)
	}
}

func TestEncodeImmNativeOrder(t *testing.T) {
	b := EncodeImm(Bit32, 0xdeadbeef)
	assert.Equal(t, uint32(0xdeadbeef), binary.NativeEndian.Uint32(b))

	b = EncodeImm(Bit64, 0x0102030405060708)
	assert.Equal(t, uint64(0x0102030405060708), binary.NativeEndian.Uint64(b))
}

func TestEncodeImmTruncates(t *testing.T) {
	assert.Equal(t, []byte{0x88}, EncodeImm(Bit8, 0x1122334455667788))
	assert.Equal(t, EncodeImm(Bit16, 0x7788), EncodeImm(Bit16, 0xffff7788))

	// -1 truncated to any width is all ones
	for _, w := range []Width{Bit8, Bit16, Bit32, Bit64} {
		for _, v := range EncodeImm(w, ^uint64(0)) {
			assert.Equal(t, byte(0xff), v)
		}
	}
}

func TestAppendImmLittleEndian(t *testing.T) {
	b := AppendImm([]byte{0xe9}, Bit32, 0x11223344)
	assert.Equal(t, []byte{0xe9, 0x44, 0x33, 0x22, 0x11}, b)

	b = AppendImm(nil, Bit16, 0xfffe)
	assert.Equal(t, []byte{0xfe, 0xff}, b)

	dst := make([]byte, 8)
	PutImm(dst[2:], Bit32, 0xaabbccdd)
	assert.Equal(t, []byte{0, 0, 0xdd, 0xcc, 0xbb, 0xaa, 0, 0}, dst)
}

func TestWidthRanges(t *testing.T) {
	assert.True(t, Bit8.FitsSigned(-128))
	assert.True(t, Bit8.FitsSigned(127))
	assert.False(t, Bit8.FitsSigned(128))
	assert.False(t, Bit32.FitsSigned(1<<31))
	assert.True(t, Bit32.FitsSigned(-(1 << 31)))
	assert.True(t, Bit64.FitsSigned(-1<<63))

	assert.True(t, Bit8.FitsUnsigned(255))
	assert.False(t, Bit8.FitsUnsigned(256))
	assert.True(t, Bit64.FitsUnsigned(^uint64(0)))

	w, err := WidthOf(4)
	require.NoError(t, err)
	assert.Equal(t, Bit32, w)
	_, err = WidthOf(3)
	assert.Error(t, err)
	assert.Equal(t, "imm16", Bit16.String())
}
