package emei

import (
	"encoding/binary"
	"fmt"
)

// Width is the byte width of an immediate or patched field.
type Width uint8

const (
	Bit8  Width = 1
	Bit16 Width = 2
	Bit32 Width = 4
	Bit64 Width = 8
)

// Get the width for a byte count of 1, 2, 4 or 8.
func WidthOf(n int) (Width, error) {
	switch n {
	case 1, 2, 4, 8:
		return Width(n), nil
	}
	return 0, fmt.Errorf("Invalid immediate width: %d bytes", n)
}

// Get the width in bits.
func (w Width) Bits() uint { return uint(w) * 8 }

// Get the all-ones mask for the width.
func (w Width) Mask() uint64 {
	if w >= Bit64 {
		return ^uint64(0)
	}
	return 1<<w.Bits() - 1
}

func (w Width) String() string {
	switch w {
	case Bit8, Bit16, Bit32, Bit64:
		return fmt.Sprintf("imm%d", w.Bits())
	}
	return fmt.Sprintf("Width(%d)", uint8(w))
}

// Check if the signed value v can be represented in w bytes.
func (w Width) FitsSigned(v int64) bool {
	if w >= Bit64 {
		return true
	}
	bits := w.Bits()
	return v >= -(1<<(bits-1)) && v < 1<<(bits-1)
}

// Check if the unsigned value v can be represented in w bytes.
func (w Width) FitsUnsigned(v uint64) bool { return v&^w.Mask() == 0 }

// Imm is an immediate value paired with its encoded width. A zero Width means no immediate.
type Imm struct {
	Width Width
	Value uint64
}

// Get the bytes of the immediate in native byte order.
func (i Imm) Bytes() []byte { return EncodeImm(i.Width, i.Value) }

// Encode v into exactly w bytes in the host's native byte order. v is truncated to w bytes.
func EncodeImm(w Width, v uint64) []byte {
	b := make([]byte, w)
	putImm(binary.NativeEndian, b, w, v)
	return b
}

// Append v truncated to w bytes in little-endian order, which is the byte order of
// every supported instruction set.
func AppendImm(dst []byte, w Width, v uint64) []byte {
	switch w {
	case Bit8:
		return append(dst, byte(v))
	case Bit16:
		return binary.LittleEndian.AppendUint16(dst, uint16(v))
	case Bit32:
		return binary.LittleEndian.AppendUint32(dst, uint32(v))
	case Bit64:
		return binary.LittleEndian.AppendUint64(dst, v)
	}
	return dst
}

// Overwrite the first w bytes of dst with v in little-endian order.
func PutImm(dst []byte, w Width, v uint64) { putImm(binary.LittleEndian, dst, w, v) }

func putImm(order binary.ByteOrder, dst []byte, w Width, v uint64) {
	switch w {
	case Bit8:
		dst[0] = byte(v)
	case Bit16:
		order.PutUint16(dst, uint16(v))
	case Bit32:
		order.PutUint32(dst, uint32(v))
	case Bit64:
		order.PutUint64(dst, v)
	}
}
