package x64

import "fmt"

// Arg represents an instruction argument: a Reg, a Mem, an immediate or a relative displacement.
type Arg interface {
	isArg()
}

// Mem is a memory-reference argument.
//
//	Mem{Base: RBX}                          register-indirect
//	Mem{Base: RBX, Disp: 8}                 register-indirect with displacement
//	Mem{Base: RBX, Index: RCX, Scale: 8}    base + scaled index (+ displacement)
//	Mem{Index: RCX, Scale: 4, Disp: 0x100}  scaled index with a 32-bit displacement
//	Mem{Disp: 0x1000}                       absolute 32-bit address
//	Mem{Base: RIP, Disp: 16}                RIP-relative
//
// Disp is the raw displacement field. Unless DispSize is set, it is encoded in the smallest
// width which holds the raw value: 0 takes no bytes, up to 0xff takes one byte and up to
// 0xffffffff takes four bytes. Larger values are rejected with ErrDisplacementRange. The
// processor sign-extends the field, so a one-byte 0x80-0xff (or a four-byte value with bit 31
// set) addresses below the base. Use Offset to build a signed displacement.
//
// Width is the operand size in bytes. It may be left as 0 when another argument determines
// the operand size.
//
// Mem implements Arg.
type Mem struct {
	Base     Reg
	Index    Reg
	Scale    uint8 // 1, 2, 4 or 8; 0 is treated as 1
	DispSize uint8 // 0 (smallest), 1 or 4
	Width    uint8
	Disp     uint64
}

func (m Mem) isArg() {}

// Return m with a signed displacement, encoded in one byte when it fits and four otherwise.
func (m Mem) Offset(off int32) Mem {
	switch {
	case off == 0:
		m.Disp, m.DispSize = 0, 0
	case off >= -128 && off <= 127:
		m.Disp, m.DispSize = uint64(uint8(int8(off))), 1
	default:
		m.Disp, m.DispSize = uint64(uint32(off)), 4
	}
	return m
}

// Return m with an explicit operand size in bytes.
func (m Mem) Sized(width uint8) Mem {
	m.Width = width
	return m
}

func (m Mem) String() string {
	s := "["
	if m.Base != 0 {
		s += m.Base.String()
	}
	if m.Index != 0 {
		if m.Base != 0 {
			s += "+"
		}
		scale := m.Scale
		if scale == 0 {
			scale = 1
		}
		s += fmt.Sprintf("%s*%d", m.Index, scale)
	}
	if m.Disp != 0 || (m.Base == 0 && m.Index == 0) {
		if m.Base != 0 || m.Index != 0 {
			s += "+"
		}
		s += fmt.Sprintf("%#x", m.Disp)
	}
	return s + "]"
}

// ImmArg represents an immediate argument.
//
// Any Imm8, Imm16, Imm32, or Imm64 value implements ImmArg.
type ImmArg interface {
	Arg
	isImm()
	width() uint8
	Int64() int64
}

// Imm8 is an 8-bit immediate argument.
//
// Imm8 implements ImmArg.
type Imm8 int8

// Imm16 is a 16-bit immediate argument.
//
// Imm16 implements ImmArg.
type Imm16 int16

// Imm32 is a 32-bit immediate argument.
//
// Imm32 implements ImmArg.
type Imm32 int32

// Imm64 is a 64-bit immediate argument.
//
// Imm64 implements ImmArg.
type Imm64 int64

func (i Imm8) isArg()  {}
func (i Imm16) isArg() {}
func (i Imm32) isArg() {}
func (i Imm64) isArg() {}

func (i Imm8) isImm()  {}
func (i Imm16) isImm() {}
func (i Imm32) isImm() {}
func (i Imm64) isImm() {}

func (i Imm8) width() uint8  { return 1 }
func (i Imm16) width() uint8 { return 2 }
func (i Imm32) width() uint8 { return 4 }
func (i Imm64) width() uint8 { return 8 }

func (i Imm8) Int64() int64  { return int64(i) }
func (i Imm16) Int64() int64 { return int64(i) }
func (i Imm32) Int64() int64 { return int64(i) }
func (i Imm64) Int64() int64 { return int64(i) }

// RelArg represents a displacement relative to the end of the instruction.
//
// Any Rel8 or Rel32 value implements RelArg.
type RelArg interface {
	Arg
	isRel()
	width() uint8
	Int32() int32
}

// Rel8 is an 8-bit displacement argument.
//
// Rel8 implements RelArg.
type Rel8 int8

// Rel32 is a 32-bit displacement argument.
//
// Rel32 implements RelArg.
type Rel32 int32

func (r Rel8) isArg()  {}
func (r Rel32) isArg() {}

func (r Rel8) isRel()  {}
func (r Rel32) isRel() {}

func (r Rel8) width() uint8  { return 1 }
func (r Rel32) width() uint8 { return 4 }

func (r Rel8) Int32() int32  { return int32(r) }
func (r Rel32) Int32() int32 { return int32(r) }
