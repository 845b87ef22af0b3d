package x64

import (
	"fmt"

	"github.com/imlyzh/emei/feats"
	. "github.com/imlyzh/emei/internal/flags"
)

// noDigit marks a definition whose ModRM.reg field holds a register operand.
const noDigit int8 = -1

// Def is one encoding of a mnemonic.
//
// Args is the operand pattern, two characters per operand. The first character is the operand
// type:
//
//	r    general-purpose register
//	v    general-purpose register or memory
//	m    memory
//	y    XMM register
//	w    XMM register or memory
//	i    immediate
//	o    relative displacement
//	A-P  the general-purpose register with number 0-15, which is implied by the opcode
//
// The second character is the operand size: b, w, d, q and o for 1, 2, 4, 8 and 16 bytes, * for
// the operand size of the instruction (2, 4 or 8 bytes, with immediates capped at 4 bytes), and
// _ for memory of any size.
type Def struct {
	Mnemonic Mnemonic
	Args     string
	Op       [3]byte
	OpLen    uint8
	Digit    int8 // opcode extension in ModRM.reg, or -1
	Flags    uint32
	Feats    feats.Feature
}

// Get the opcode bytes of the definition.
func (d *Def) Opcode() []byte { return d.Op[:d.OpLen] }

func (d Def) String() string {
	s := fmt.Sprintf("%s %s [% x]", d.Mnemonic, d.Args, d.Opcode())
	if d.Digit >= 0 {
		s += fmt.Sprintf(" /%d", d.Digit)
	}
	if d.Flags != DEFAULT {
		s += " " + String(d.Flags)
	}
	if d.Feats != feats.X64_IMPLICIT {
		s += " " + d.Feats.String()
	}
	return s
}

// Get the definitions of a mnemonic, in the order Match tries them. The result must not be modified.
func Defs(m Mnemonic) []Def {
	if m >= mnemonicCount {
		return nil
	}
	return defsByMnemonic[m]
}

var defsByMnemonic = indexDefs(buildDefs())

func indexDefs(defs []Def) (index [mnemonicCount][]Def) {
	for _, d := range defs {
		index[d.Mnemonic] = append(index[d.Mnemonic], d)
	}
	return index
}

type defTable []Def

func (t *defTable) add(m Mnemonic, args string, flags uint32, digit int8, op ...byte) {
	t.addF(feats.X64_IMPLICIT, m, args, flags, digit, op...)
}

func (t *defTable) addF(f feats.Feature, m Mnemonic, args string, flags uint32, digit int8, op ...byte) {
	d := Def{Mnemonic: m, Args: args, OpLen: uint8(len(op)), Digit: digit, Flags: flags, Feats: f}
	copy(d.Op[:], op)
	*t = append(*t, d)
}

func buildDefs() []Def {
	var t defTable

	// Moves
	t.add(MOV, "v*r*", AUTO_SIZE|ENC_MR, noDigit, 0x89)
	t.add(MOV, "vbrb", ENC_MR, noDigit, 0x88)
	t.add(MOV, "r*v*", AUTO_SIZE, noDigit, 0x8b)
	t.add(MOV, "rbvb", DEFAULT, noDigit, 0x8a)
	t.add(MOV, "rbib", SHORT_ARG, noDigit, 0xb0)
	t.add(MOV, "rwiw", WORD_SIZE|SHORT_ARG, noDigit, 0xb8)
	t.add(MOV, "rdid", SHORT_ARG, noDigit, 0xb8)
	t.add(MOV, "vbib", DEFAULT, 0, 0xc6)
	t.add(MOV, "v*i*", AUTO_SIZE, 0, 0xc7)
	t.add(MOV, "rqiq", WITH_REXW|SHORT_ARG, noDigit, 0xb8)

	t.add(MOVZX, "r*vb", AUTO_SIZE, noDigit, 0x0f, 0xb6)
	t.add(MOVZX, "r*vw", AUTO_SIZE, noDigit, 0x0f, 0xb7)
	t.add(MOVSX, "r*vb", AUTO_SIZE, noDigit, 0x0f, 0xbe)
	t.add(MOVSX, "r*vw", AUTO_SIZE, noDigit, 0x0f, 0xbf)
	t.add(MOVSXD, "rqvd", WITH_REXW|X64_ONLY, noDigit, 0x63)
	t.add(LEA, "r*m_", AUTO_SIZE, noDigit, 0x8d)

	t.add(XCHG, "v*r*", AUTO_SIZE|ENC_MR|LOCK, noDigit, 0x87)
	t.add(XCHG, "vbrb", ENC_MR|LOCK, noDigit, 0x86)
	t.add(XCHG, "r*v*", AUTO_SIZE|LOCK, noDigit, 0x87)
	t.add(XCHG, "rbvb", LOCK, noDigit, 0x86)
	t.add(CMPXCHG, "v*r*", AUTO_SIZE|ENC_MR|LOCK, noDigit, 0x0f, 0xb1)
	t.add(CMPXCHG, "vbrb", ENC_MR|LOCK, noDigit, 0x0f, 0xb0)
	t.add(XADD, "v*r*", AUTO_SIZE|ENC_MR|LOCK, noDigit, 0x0f, 0xc1)
	t.add(XADD, "vbrb", ENC_MR|LOCK, noDigit, 0x0f, 0xc0)

	// String moves from [RSI] to [RDI]. MOVSD without arguments is the string form; with XMM
	// arguments it is the scalar double move.
	t.add(MOVSB, "", DEFAULT, noDigit, 0xa4)
	t.add(MOVSW, "", WORD_SIZE, noDigit, 0xa5)
	t.add(MOVSD, "", DEFAULT, noDigit, 0xa5)
	t.add(MOVSQ, "", WITH_REXW|X64_ONLY, noDigit, 0xa5)

	t.add(CDQ, "", DEFAULT, noDigit, 0x99)
	t.add(CQO, "", WITH_REXW|X64_ONLY, noDigit, 0x99)

	// Integer arithmetic: the opcode column of group 1 is 8*digit.
	for k, m := range [...]Mnemonic{ADD, OR, ADC, SBB, AND, SUB, XOR, CMP} {
		col, digit := byte(k)*8, int8(k)
		lock := LOCK
		if m == CMP {
			lock = DEFAULT
		}
		t.add(m, "v*r*", AUTO_SIZE|ENC_MR|lock, noDigit, col+1)
		t.add(m, "vbrb", ENC_MR|lock, noDigit, col)
		t.add(m, "r*v*", AUTO_SIZE, noDigit, col+3)
		t.add(m, "rbvb", DEFAULT, noDigit, col+2)
		t.add(m, "v*ib", AUTO_SIZE|lock, digit, 0x83)
		t.add(m, "Abib", DEFAULT, noDigit, col+4)
		t.add(m, "vbib", lock, digit, 0x80)
		t.add(m, "A*i*", AUTO_SIZE, noDigit, col+5)
		t.add(m, "v*i*", AUTO_SIZE|lock, digit, 0x81)
	}

	t.add(TEST, "v*r*", AUTO_SIZE|ENC_MR, noDigit, 0x85)
	t.add(TEST, "vbrb", ENC_MR, noDigit, 0x84)
	t.add(TEST, "Abib", DEFAULT, noDigit, 0xa8)
	t.add(TEST, "A*i*", AUTO_SIZE, noDigit, 0xa9)
	t.add(TEST, "vbib", DEFAULT, 0, 0xf6)
	t.add(TEST, "v*i*", AUTO_SIZE, 0, 0xf7)

	t.add(INC, "rw", WORD_SIZE|SHORT_ARG|X86_ONLY, noDigit, 0x40)
	t.add(INC, "rd", SHORT_ARG|X86_ONLY, noDigit, 0x40)
	t.add(INC, "vb", LOCK, 0, 0xfe)
	t.add(INC, "v*", AUTO_SIZE|LOCK, 0, 0xff)
	t.add(DEC, "rw", WORD_SIZE|SHORT_ARG|X86_ONLY, noDigit, 0x48)
	t.add(DEC, "rd", SHORT_ARG|X86_ONLY, noDigit, 0x48)
	t.add(DEC, "vb", LOCK, 1, 0xfe)
	t.add(DEC, "v*", AUTO_SIZE|LOCK, 1, 0xff)

	// Group 3
	for _, g := range [...]struct {
		m     Mnemonic
		digit int8
		flags uint32
	}{
		{NOT, 2, LOCK},
		{NEG, 3, LOCK},
		{MUL, 4, DEFAULT},
		{IMUL, 5, DEFAULT},
		{DIV, 6, DEFAULT},
		{IDIV, 7, DEFAULT},
	} {
		t.add(g.m, "vb", g.flags, g.digit, 0xf6)
		t.add(g.m, "v*", AUTO_SIZE|g.flags, g.digit, 0xf7)
	}
	t.add(IMUL, "r*v*", AUTO_SIZE, noDigit, 0x0f, 0xaf)
	t.add(IMUL, "r*v*ib", AUTO_SIZE, noDigit, 0x6b)
	t.add(IMUL, "r*v*i*", AUTO_SIZE, noDigit, 0x69)

	// Group 2
	for _, s := range [...]struct {
		m     Mnemonic
		digit int8
	}{
		{ROL, 0},
		{ROR, 1},
		{SHL, 4},
		{SHR, 5},
		{SAR, 7},
	} {
		t.add(s.m, "vb", DEFAULT, s.digit, 0xd0)
		t.add(s.m, "v*", AUTO_SIZE, s.digit, 0xd1)
		t.add(s.m, "vbBb", DEFAULT, s.digit, 0xd2)
		t.add(s.m, "v*Bb", AUTO_SIZE, s.digit, 0xd3)
		t.add(s.m, "vbib", DEFAULT, s.digit, 0xc0)
		t.add(s.m, "v*ib", AUTO_SIZE, s.digit, 0xc1)
	}

	t.addF(feats.POPCNT, POPCNT, "r*v*", AUTO_SIZE|PREF_F3, noDigit, 0x0f, 0xb8)
	t.addF(feats.BMI1, TZCNT, "r*v*", AUTO_SIZE|PREF_F3, noDigit, 0x0f, 0xbc)

	// Control flow
	t.add(JMP, "ob", DEFAULT, noDigit, 0xeb)
	t.add(JMP, "od", DEFAULT, noDigit, 0xe9)
	t.add(JMP, "v*", AUTO_NO32, 4, 0xff)
	t.add(CALL, "od", DEFAULT, noDigit, 0xe8)
	t.add(CALL, "v*", AUTO_NO32, 2, 0xff)
	t.add(RET, "", DEFAULT, noDigit, 0xc3)
	t.add(RET, "iw", DEFAULT, noDigit, 0xc2)
	t.add(RETF, "", DEFAULT, noDigit, 0xcb)
	t.add(RETF, "iw", DEFAULT, noDigit, 0xca)
	for cc := byte(0); cc < 16; cc++ {
		t.add(JO+Mnemonic(cc), "ob", DEFAULT, noDigit, 0x70+cc)
		t.add(JO+Mnemonic(cc), "od", DEFAULT, noDigit, 0x0f, 0x80+cc)
		t.add(SETO+Mnemonic(cc), "vb", DEFAULT, 0, 0x0f, 0x90+cc)
		t.add(CMOVO+Mnemonic(cc), "r*v*", AUTO_SIZE, noDigit, 0x0f, 0x40+cc)
	}

	t.add(PUSH, "r*", AUTO_NO32|SHORT_ARG, noDigit, 0x50)
	t.add(PUSH, "ib", DEFAULT, noDigit, 0x6a)
	t.add(PUSH, "id", DEFAULT, noDigit, 0x68)
	t.add(PUSH, "v*", AUTO_NO32, 6, 0xff)
	t.add(POP, "r*", AUTO_NO32|SHORT_ARG, noDigit, 0x58)
	t.add(POP, "v*", AUTO_NO32, 0, 0x8f)
	t.add(PUSHA, "", X86_ONLY, noDigit, 0x60)

	// System and padding
	t.add(NOP, "", DEFAULT, noDigit, 0x90)
	t.add(NOP, "v*", AUTO_SIZE, 0, 0x0f, 0x1f)
	t.add(PAUSE, "", PREF_F3, noDigit, 0x90)
	t.add(INT3, "", DEFAULT, noDigit, 0xcc)
	t.add(INT, "ib", DEFAULT, noDigit, 0xcd)
	t.add(UD2, "", DEFAULT, noDigit, 0x0f, 0x0b)
	t.add(HLT, "", DEFAULT, noDigit, 0xf4)
	t.add(SYSCALL, "", X64_ONLY, noDigit, 0x0f, 0x05)
	t.add(CPUID, "", DEFAULT, noDigit, 0x0f, 0xa2)
	t.add(RDTSC, "", DEFAULT, noDigit, 0x0f, 0x31)
	t.addF(feats.SSE2, MFENCE, "", DEFAULT, noDigit, 0x0f, 0xae, 0xf0)
	t.addF(feats.SSE2, LFENCE, "", DEFAULT, noDigit, 0x0f, 0xae, 0xe8)
	t.addF(feats.SSE, SFENCE, "", DEFAULT, noDigit, 0x0f, 0xae, 0xf8)

	// Scalar SSE
	for _, s := range [...]struct {
		single, double Mnemonic
		op             byte
	}{
		{SQRTSS, SQRTSD, 0x51},
		{ADDSS, ADDSD, 0x58},
		{MULSS, MULSD, 0x59},
		{SUBSS, SUBSD, 0x5c},
		{MINSS, MINSD, 0x5d},
		{DIVSS, DIVSD, 0x5e},
		{MAXSS, MAXSD, 0x5f},
	} {
		t.addF(feats.SSE, s.single, "yoyo", PREF_F3, noDigit, 0x0f, s.op)
		t.addF(feats.SSE, s.single, "yomd", PREF_F3, noDigit, 0x0f, s.op)
		t.addF(feats.SSE2, s.double, "yoyo", PREF_F2, noDigit, 0x0f, s.op)
		t.addF(feats.SSE2, s.double, "yomq", PREF_F2, noDigit, 0x0f, s.op)
	}

	t.addF(feats.SSE, MOVSS, "yoyo", PREF_F3, noDigit, 0x0f, 0x10)
	t.addF(feats.SSE, MOVSS, "yomd", PREF_F3, noDigit, 0x0f, 0x10)
	t.addF(feats.SSE, MOVSS, "mdyo", PREF_F3|ENC_MR, noDigit, 0x0f, 0x11)
	t.addF(feats.SSE2, MOVSD, "yoyo", PREF_F2, noDigit, 0x0f, 0x10)
	t.addF(feats.SSE2, MOVSD, "yomq", PREF_F2, noDigit, 0x0f, 0x10)
	t.addF(feats.SSE2, MOVSD, "mqyo", PREF_F2|ENC_MR, noDigit, 0x0f, 0x11)

	t.addF(feats.SSE, UCOMISS, "yoyo", DEFAULT, noDigit, 0x0f, 0x2e)
	t.addF(feats.SSE, UCOMISS, "yomd", DEFAULT, noDigit, 0x0f, 0x2e)
	t.addF(feats.SSE2, UCOMISD, "yoyo", PREF_66, noDigit, 0x0f, 0x2e)
	t.addF(feats.SSE2, UCOMISD, "yomq", PREF_66, noDigit, 0x0f, 0x2e)

	t.addF(feats.SSE, CVTSI2SS, "yov*", PREF_F3|AUTO_REXW, noDigit, 0x0f, 0x2a)
	t.addF(feats.SSE2, CVTSI2SD, "yov*", PREF_F2|AUTO_REXW, noDigit, 0x0f, 0x2a)
	t.addF(feats.SSE, CVTTSS2SI, "r*yo", PREF_F3|AUTO_REXW, noDigit, 0x0f, 0x2c)
	t.addF(feats.SSE, CVTTSS2SI, "r*md", PREF_F3|AUTO_REXW, noDigit, 0x0f, 0x2c)
	t.addF(feats.SSE2, CVTTSD2SI, "r*yo", PREF_F2|AUTO_REXW, noDigit, 0x0f, 0x2c)
	t.addF(feats.SSE2, CVTTSD2SI, "r*mq", PREF_F2|AUTO_REXW, noDigit, 0x0f, 0x2c)
	t.addF(feats.SSE2, CVTSS2SD, "yoyo", PREF_F3, noDigit, 0x0f, 0x5a)
	t.addF(feats.SSE2, CVTSS2SD, "yomd", PREF_F3, noDigit, 0x0f, 0x5a)
	t.addF(feats.SSE2, CVTSD2SS, "yoyo", PREF_F2, noDigit, 0x0f, 0x5a)
	t.addF(feats.SSE2, CVTSD2SS, "yomq", PREF_F2, noDigit, 0x0f, 0x5a)

	t.addF(feats.SSE2, MOVD, "yovd", PREF_66, noDigit, 0x0f, 0x6e)
	t.addF(feats.SSE2, MOVD, "vdyo", PREF_66|ENC_MR, noDigit, 0x0f, 0x7e)
	t.addF(feats.SSE2, MOVQ, "yoyo", PREF_F3, noDigit, 0x0f, 0x7e)
	t.addF(feats.SSE2, MOVQ, "yomq", PREF_F3, noDigit, 0x0f, 0x7e)
	t.addF(feats.SSE2, MOVQ, "mqyo", PREF_66|ENC_MR, noDigit, 0x0f, 0xd6)
	t.addF(feats.SSE2, MOVQ, "yorq", PREF_66|WITH_REXW|X64_ONLY, noDigit, 0x0f, 0x6e)
	t.addF(feats.SSE2, MOVQ, "rqyo", PREF_66|WITH_REXW|ENC_MR|X64_ONLY, noDigit, 0x0f, 0x7e)

	return t
}
