package x64

import (
	"fmt"

	"github.com/imlyzh/emei"
)

const (
	lockPrefix   byte = 0xf0
	addrPrefix   byte = 0x67
	opsizePrefix byte = 0x66
	repPrefix    byte = 0xf3
	repnePrefix  byte = 0xf2
)

// Inst is a fully composed instruction. Match builds one from a mnemonic and its arguments; one may
// also be filled in by hand for opcodes which have no definition.
//
// The encoding is laid out as
//
//	[LOCK] [0x67] [0x66] [mandatory prefix] [REX] opcode [ModRM [SIB] [disp]] [imm]
//
// The address-size prefix (0x67) is derived from the registers of a Mem operand, and REX is derived
// from W and the registers in use.
type Inst struct {
	Lock   bool     // LOCK prefix
	OpSize bool     // operand-size override prefix (0x66)
	Prefix byte     // mandatory or repeat prefix (0x66, 0xf2 or 0xf3), or 0
	W      bool     // REX.W
	Op     [3]byte  // opcode bytes
	OpLen  uint8    // number of opcode bytes in use, 1 to 3
	OpReg  Reg      // register added to the last opcode byte, or 0
	Reg    Reg      // register in ModRM.reg, or 0 to use Digit
	Digit  uint8    // opcode extension in ModRM.reg
	RM     Arg      // Reg or Mem operand in ModRM.rm, or nil when there is no ModRM byte
	Imm    emei.Imm // immediate, omitted when Imm.Width is 0
}

// Encode the instruction for a processor mode.
func (i *Inst) Encode(mode Mode) ([]byte, error) { return i.AppendTo(nil, mode) }

// Encode the instruction for a processor mode, appending it to dst. If the instruction cannot be
// encoded, dst is returned unmodified along with the error.
func (i *Inst) AppendTo(dst []byte, mode Mode) ([]byte, error) {
	if i.OpLen < 1 || i.OpLen > 3 {
		return dst, fmt.Errorf("Invalid opcode length %d", i.OpLen)
	}
	if i.OpReg != 0 && i.RM != nil {
		return dst, fmt.Errorf("Opcode register %s cannot be combined with a ModRM operand", i.OpReg)
	}
	if mode == Mode64 && i.OpLen == 1 && i.Op[0]&0xf0 == 0x40 {
		return dst, fmt.Errorf("%w: opcode %#02x is a REX prefix in 64-bit mode", ErrMode, i.Op[0])
	}
	switch i.Imm.Width {
	case 0, emei.Bit8, emei.Bit16, emei.Bit32, emei.Bit64:
	default:
		return dst, fmt.Errorf("Invalid immediate width %d", i.Imm.Width)
	}

	var a address
	switch rm := i.RM.(type) {
	case nil:
	case Reg:
		if rm == 0 || rm.Family() == REG_RIP {
			return dst, fmt.Errorf("Invalid ModRM register %s", rm)
		}
		a = address{modrm: modDirect<<6 | rm.Num()&7, rexB: rm.IsExtended()}
	case Mem:
		var err error
		if a, err = rm.address(mode); err != nil {
			return dst, err
		}
	default:
		return dst, fmt.Errorf("Invalid ModRM operand %T", rm)
	}

	rex, err := i.rex(mode, &a)
	if err != nil {
		return dst, err
	}

	if i.Lock {
		dst = append(dst, lockPrefix)
	}
	if a.small {
		dst = append(dst, addrPrefix)
	}
	if i.OpSize {
		dst = append(dst, opsizePrefix)
	}
	if i.Prefix != 0 {
		dst = append(dst, i.Prefix)
	}
	if rex != 0 {
		dst = append(dst, rex)
	}

	op := i.Op[:i.OpLen]
	if i.OpReg != 0 {
		dst = append(dst, op[:len(op)-1]...)
		dst = append(dst, op[len(op)-1]+i.OpReg.Num()&7)
	} else {
		dst = append(dst, op...)
	}

	if i.RM != nil {
		reg := i.Digit & 7
		if i.Reg != 0 {
			reg = i.Reg.Num() & 7
		}
		dst = append(dst, a.modrm|reg<<3)
		if a.hasSIB {
			dst = append(dst, a.sib)
		}
		if a.dispSize != 0 {
			dst = emei.AppendImm(dst, emei.Width(a.dispSize), a.disp)
		}
	}

	if i.Imm.Width != 0 {
		dst = emei.AppendImm(dst, i.Imm.Width, i.Imm.Value)
	}
	return dst, nil
}

func (i *Inst) String() string {
	s := fmt.Sprintf("op=% x", i.Op[:i.OpLen])
	if i.OpReg != 0 {
		s += "+" + i.OpReg.String()
	}
	if i.RM != nil {
		if i.Reg != 0 {
			s += " reg=" + i.Reg.String()
		} else {
			s += fmt.Sprintf(" /%d", i.Digit)
		}
		s += fmt.Sprintf(" rm=%v", i.RM)
	}
	if i.Imm.Width != 0 {
		s += fmt.Sprintf(" imm%d=%#x", i.Imm.Width.Bits(), i.Imm.Value)
	}
	return s
}
