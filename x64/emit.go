package x64

import (
	"fmt"
	"math/bits"
)

const (
	modDirect uint8 = 3
	modNoDisp uint8 = 0
	modDisp8  uint8 = 1
	modDisp32 uint8 = 2

	rmSIB    uint8 = 4 // ModRM.rm selecting a SIB byte
	rmDisp32 uint8 = 5 // ModRM.rm selecting disp32 (or RIP+disp32 in 64-bit mode) with mod 0

	sibNoIndex uint8 = 4 // SIB.index for "no index"
	sibNoBase  uint8 = 5 // SIB.base for "no base, disp32" with mod 0
)

// The ModRM.mod/rm, SIB and displacement of a memory (or register) operand. ModRM.reg is filled in
// by the instruction.
type address struct {
	modrm    byte
	sib      byte
	hasSIB   bool
	disp     uint64
	dispSize uint8
	rexX     bool
	rexB     bool
	small    bool // 32-bit registers in 64-bit mode, needs the address-size prefix
}

// Pick the displacement width for m: 0, 1 or 4 bytes.
func (m Mem) dispWidth() (uint8, error) {
	switch m.DispSize {
	case 0:
		switch {
		case m.Disp == 0:
			return 0, nil
		case m.Disp <= 0xff:
			return 1, nil
		case m.Disp <= 0xffffffff:
			return 4, nil
		}
		return 0, fmt.Errorf("%w: %#x", ErrDisplacementRange, m.Disp)
	case 1:
		if m.Disp > 0xff {
			return 0, fmt.Errorf("%w: %#x does not fit in 1 byte", ErrDisplacementRange, m.Disp)
		}
		return 1, nil
	case 4:
		if m.Disp > 0xffffffff {
			return 0, fmt.Errorf("%w: %#x", ErrDisplacementRange, m.Disp)
		}
		return 4, nil
	}
	return 0, fmt.Errorf("Invalid displacement size %d", m.DispSize)
}

// Get the displacement widened to 32 bits, for forms which only take disp32. An explicit one-byte
// displacement is a signed offset, so it is sign-extended.
func (m Mem) disp32() uint64 {
	if m.DispSize == 1 {
		return uint64(uint32(int32(int8(m.Disp))))
	}
	return m.Disp
}

// Check the registers of m and get the width of the address they form (0 for an absolute address).
func (m Mem) addrWidth(mode Mode) (uint8, error) {
	var width uint8
	if m.Base != 0 {
		switch m.Base.Family() {
		case REG_RIP:
			if mode == Mode32 {
				return 0, fmt.Errorf("%w: %s-relative addressing", ErrMode, m.Base)
			}
		case REG_LEGACY:
		default:
			return 0, fmt.Errorf("Invalid base register %s", m.Base)
		}
		width = m.Base.Width()
	}
	if m.Index != 0 {
		if m.Index.Family() != REG_LEGACY {
			return 0, fmt.Errorf("Invalid index register %s", m.Index)
		}
		if width != 0 && width != m.Index.Width() {
			return 0, fmt.Errorf("Mismatched base and index registers %s, %s", m.Base, m.Index)
		}
		width = m.Index.Width()
	}
	switch width {
	case 0:
	case 4:
	case 8:
		if mode == Mode32 {
			return 0, fmt.Errorf("%w: 64-bit address %s", ErrMode, m)
		}
	default:
		return 0, fmt.Errorf("Unsupported %d-bit address %s", width*8, m)
	}
	return width, nil
}

// Compute ModRM.mod/rm, SIB and displacement bytes for m.
func (m Mem) address(mode Mode) (address, error) {
	var a address
	scale := m.Scale
	if scale == 0 {
		scale = 1
	}
	if scale&(scale-1) != 0 || scale > 8 {
		return a, fmt.Errorf("%w: %d", ErrScale, m.Scale)
	}
	width, err := m.addrWidth(mode)
	if err != nil {
		return a, err
	}
	a.small = width == 4 && mode == Mode64
	dispSize, err := m.dispWidth()
	if err != nil {
		return a, err
	}
	ss := uint8(bits.TrailingZeros8(scale))

	switch {
	case m.Base != 0 && m.Base.Family() == REG_RIP:
		if m.Index != 0 {
			return a, fmt.Errorf("%s-relative address %s cannot be indexed", m.Base, m)
		}
		a.modrm = modNoDisp<<6 | rmDisp32
		a.disp, a.dispSize = m.disp32(), 4

	case m.Base == 0 && m.Index == 0:
		if mode == Mode64 {
			// rm=101 is RIP-relative in 64-bit mode, absolute addresses go through SIB
			a.modrm = modNoDisp<<6 | rmSIB
			a.sib, a.hasSIB = sibNoIndex<<3|sibNoBase, true
		} else {
			a.modrm = modNoDisp<<6 | rmDisp32
		}
		a.disp, a.dispSize = m.disp32(), 4

	case m.Base == 0:
		if m.Index.Num() == RSP.Num() {
			return a, fmt.Errorf("%w: %s", ErrSIBIndex, m)
		}
		a.modrm = modNoDisp<<6 | rmSIB
		a.sib, a.hasSIB = ss<<6|(m.Index.Num()&7)<<3|sibNoBase, true
		a.disp, a.dispSize = m.disp32(), 4
		a.rexX = m.Index.IsExtended()

	case m.Index == 0:
		base := m.Base.Num() & 7
		if base == rmDisp32 && dispSize == 0 {
			// mod 0 with RBP/R13 means disp32 (or RIP), use a zero disp8
			dispSize = 1
		}
		a.modrm = dispMod(dispSize)<<6 | base
		if base == rmSIB {
			a.sib, a.hasSIB = sibNoIndex<<3|rmSIB, true
		}
		a.disp, a.dispSize = m.Disp, dispSize
		a.rexB = m.Base.IsExtended()

	default:
		if m.Index.Num() == RSP.Num() {
			return a, fmt.Errorf("%w: %s", ErrSIBIndex, m)
		}
		if m.Base.Num()&7 == sibNoBase && dispSize == 0 {
			return a, fmt.Errorf("%w: %s", ErrSIBBase, m)
		}
		a.modrm = dispMod(dispSize)<<6 | rmSIB
		a.sib, a.hasSIB = ss<<6|(m.Index.Num()&7)<<3|m.Base.Num()&7, true
		a.disp, a.dispSize = m.Disp, dispSize
		a.rexX = m.Index.IsExtended()
		a.rexB = m.Base.IsExtended()
	}
	return a, nil
}

func dispMod(size uint8) uint8 {
	switch size {
	case 0:
		return modNoDisp
	case 1:
		return modDisp8
	}
	return modDisp32
}

// Compute the REX prefix for the instruction, or 0 if none is needed.
func (i *Inst) rex(mode Mode, a *address) (byte, error) {
	required := i.W
	highByte := false
	check := func(r Reg) {
		switch {
		case r == 0:
		case r.Family() == REG_HIGHBYTE:
			highByte = true
		case r.IsExtended() || r.IsUniformByte():
			required = true
		}
	}
	check(i.Reg)
	check(i.OpReg)
	if r, ok := i.RM.(Reg); ok {
		check(r)
	}
	required = required || a.rexX || a.rexB

	if !required {
		return 0, nil
	}
	if mode == Mode32 {
		if i.W {
			return 0, fmt.Errorf("%w: 64-bit operand size", ErrMode)
		}
		return 0, fmt.Errorf("%w: register requires a REX prefix", ErrMode)
	}
	if highByte {
		return 0, ErrRex
	}

	rex := byte(0x40)
	if i.W {
		rex |= 1 << 3
	}
	if i.Reg.IsExtended() {
		rex |= 1 << 2
	}
	if a.rexX {
		rex |= 1 << 1
	}
	if a.rexB || i.OpReg.IsExtended() {
		rex |= 1
	}
	return rex, nil
}
