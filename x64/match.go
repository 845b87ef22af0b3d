package x64

import (
	"fmt"
	"strings"

	"github.com/imlyzh/emei"
	"github.com/imlyzh/emei/feats"
	. "github.com/imlyzh/emei/internal/flags"
)

// Find the first definition of m which accepts args in mode with the enabled features, and compose
// the instruction it describes.
//
// A memory operand without a Width takes the size of the other operands, so MOV AL, [RAX] is a
// byte load. When nothing else fixes the size, a *-sized memory operand is 8 bytes in Mode64 and
// 4 bytes in Mode32. Other fixed-size memory operands must be Sized, except alongside an XMM
// operand where the mnemonic implies the size.
//
// When no definition fits, the error wraps ErrMode or ErrFeature if a definition fit the
// arguments but was unavailable, and ErrNoMatch otherwise.
func Match(mode Mode, enabled feats.Feature, m Mnemonic, args ...Arg) (Inst, Def, error) {
	defs := Defs(m)
	if len(defs) == 0 {
		return Inst{}, Def{}, fmt.Errorf("%w: unknown mnemonic %s", ErrNoMatch, m)
	}
	var rejected error
SEARCH:
	for _, d := range defs {
		opSize, ok := matchArgs(d.Args, args)
		if !ok {
			continue SEARCH
		}
		switch {
		case d.Flags&X86_ONLY != 0 && mode != Mode32, d.Flags&X64_ONLY != 0 && mode != Mode64:
			if rejected == nil {
				rejected = fmt.Errorf("%w: %s %s is not available in %s mode", ErrMode, m, d.Args, mode)
			}
			continue SEARCH
		case d.Feats&enabled != d.Feats:
			if rejected == nil {
				rejected = fmt.Errorf("%w: %s %s requires %s", ErrFeature, m, d.Args, d.Feats&^enabled)
			}
			continue SEARCH
		}
		inst, err := d.compose(mode, opSize, args)
		if err != nil {
			if rejected == nil {
				rejected = err
			}
			continue SEARCH
		}
		return inst, d, nil
	}
	if rejected != nil {
		return Inst{}, Def{}, rejected
	}
	return Inst{}, Def{}, fmt.Errorf("%w: %s %s", ErrNoMatch, m, formatArgs(args))
}

func formatArgs(args []Arg) string {
	s := make([]string, len(args))
	for i, arg := range args {
		s[i] = fmt.Sprint(arg)
	}
	return strings.Join(s, ", ")
}

func sizeOf(sz byte) uint8 {
	switch sz {
	case 'b':
		return 1
	case 'w':
		return 2
	case 'd':
		return 4
	case 'q':
		return 8
	case 'o':
		return 16
	}
	return 0
}

// Check args against an operand pattern and get the operand size of the *-sized operands, or 0
// when it is unknown.
func matchArgs(p string, args []Arg) (opSize uint8, ok bool) {
	if len(p) != 2*len(args) {
		return 0, false
	}
	// fixed sizes of general-purpose register arguments, which an unsized memory argument may take
	// on; a fixed register such as the CL shift count does not size the other operands
	xmm, regSizes := false, ""
	for i, arg := range args {
		t, sz := p[2*i], p[2*i+1]
		if t == 'y' || t == 'w' {
			xmm = true
		}
		if _, ok := arg.(Reg); ok && (t == 'r' || t == 'v') && sz != '*' {
			regSizes += string(sz)
		}
	}

	// scan arg-pattern, leaving immediates for later:
	for i, arg := range args {
		t, sz := p[2*i], p[2*i+1]
		var argsz uint8
		isMem := false

		// check type
		switch t {
		case 'i':
			if _, ok := arg.(ImmArg); !ok {
				return 0, false
			}
			continue
		case 'o':
			rel, ok := arg.(RelArg)
			if !ok || rel.width() != sizeOf(sz) {
				return 0, false
			}
			continue
		case 'r', 'v', 'm', 'y', 'w':
			switch a := arg.(type) {
			case Reg:
				switch t {
				case 'r', 'v':
					if a.Family() != REG_LEGACY && a.Family() != REG_HIGHBYTE {
						return 0, false
					}
				case 'y', 'w':
					if a.Family() != REG_XMM {
						return 0, false
					}
				default:
					return 0, false
				}
				argsz = a.Width()
			case Mem:
				if t == 'r' || t == 'y' {
					return 0, false
				}
				argsz, isMem = a.Width, true
			default:
				return 0, false
			}
		default:
			if t < 'A' || t > 'P' {
				return 0, false
			}
			r, ok := arg.(Reg)
			if !ok || r.Family() != REG_LEGACY || r.Num() != t-'A' {
				return 0, false
			}
			argsz = r.Width()
		}

		// check size
		switch sz {
		case '*':
			if argsz == 0 {
				continue
			}
			if argsz != 2 && argsz != 4 && argsz != 8 {
				return 0, false
			}
			if opSize != 0 && opSize != argsz {
				return 0, false
			}
			opSize = argsz
		case '_':
			if !isMem {
				return 0, false
			}
		default:
			if argsz == 0 && isMem && (xmm || strings.IndexByte(regSizes, sz) >= 0) {
				continue
			}
			if argsz != sizeOf(sz) {
				return 0, false
			}
		}
	}

	// immediates must fit the operand they are encoded in
	for i, arg := range args {
		if p[2*i] != 'i' {
			continue
		}
		limit := immSize(p[2*i+1], opSize)
		if p[2*i+1] == '*' && opSize == 0 {
			limit = 4
		}
		if arg.(ImmArg).width() > limit {
			return 0, false
		}
	}
	return opSize, true
}

// Get the encoded width of an immediate operand.
func immSize(sz byte, opSize uint8) uint8 {
	if sz == '*' {
		return min(opSize, 4)
	}
	return sizeOf(sz)
}

// Compose an instruction from a matching definition.
//
// Operand order: the memory/reg operand goes into ModRM.rm and the other register into ModRM.reg.
// With ENC_MR, or when the first operand is memory, the order is (rm, reg); otherwise it is
// (reg, rm). SHORT_ARG puts the only register operand into the opcode.
func (d *Def) compose(mode Mode, opSize uint8, args []Arg) (Inst, error) {
	inst := Inst{Op: d.Op, OpLen: d.OpLen}
	flags := d.Flags

	if opSize == 0 && strings.Contains(d.Args, "*") {
		opSize = mode.AddrSize()
	}

	switch {
	case flags&AUTO_SIZE != 0:
		switch opSize {
		case 2:
			inst.OpSize = true
		case 8:
			inst.W = true
		}
	case flags&AUTO_NO32 != 0:
		switch {
		case opSize == 2:
			inst.OpSize = true
		case opSize != mode.AddrSize():
			return inst, fmt.Errorf("%w: %d-bit %s", ErrMode, int(opSize)*8, d.Mnemonic)
		}
	case flags&AUTO_REXW != 0:
		switch opSize {
		case 2:
			return inst, fmt.Errorf("%w: 16-bit arguments are not supported for %s", ErrNoMatch, d.Mnemonic)
		case 8:
			inst.W = true
		}
	}
	if flags&WORD_SIZE != 0 {
		inst.OpSize = true
	}
	if flags&WITH_REXW != 0 {
		inst.W = true
	}
	switch {
	case flags&PREF_66 != 0:
		inst.Prefix = opsizePrefix
	case flags&PREF_F2 != 0:
		inst.Prefix = repnePrefix
	case flags&PREF_F3 != 0:
		inst.Prefix = repPrefix
	}

	var regs [2]Arg
	regc, memArg := 0, -1
	for i, arg := range args {
		switch t := d.Args[2*i]; t {
		case 'r', 'y', 'v', 'm', 'w':
			if regc == len(regs) {
				return inst, fmt.Errorf("Too many register arguments for %s", d.Mnemonic)
			}
			if _, ok := arg.(Mem); ok {
				memArg = regc
			}
			regs[regc] = arg
			regc++
		case 'i':
			w, err := emei.WidthOf(int(immSize(d.Args[2*i+1], opSize)))
			if err != nil {
				return inst, err
			}
			inst.Imm = emei.Imm{Width: w, Value: uint64(arg.(ImmArg).Int64())}
		case 'o':
			rel := arg.(RelArg)
			w, err := emei.WidthOf(int(rel.width()))
			if err != nil {
				return inst, err
			}
			inst.Imm = emei.Imm{Width: w, Value: uint64(int64(rel.Int32()))}
		}
	}

	switch {
	case flags&SHORT_ARG != 0:
		r, ok := regs[0].(Reg)
		if regc != 1 || !ok {
			return inst, fmt.Errorf("Invalid opcode-register argument for %s", d.Mnemonic)
		}
		inst.OpReg = r
	case regc == 1:
		inst.RM = regs[0]
	case regc == 2:
		rm, reg := regs[1], regs[0]
		if flags&ENC_MR != 0 || memArg == 0 {
			rm, reg = regs[0], regs[1]
		}
		r, ok := reg.(Reg)
		if !ok {
			return inst, fmt.Errorf("Invalid ModRM.reg argument %v for %s", reg, d.Mnemonic)
		}
		inst.RM, inst.Reg = rm, r
	}
	if regc > 0 && d.Digit >= 0 {
		inst.Digit = uint8(d.Digit)
	}
	return inst, nil
}
