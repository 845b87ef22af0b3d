package x64

import "fmt"

// Mnemonic identifies an instruction independently of its operands. Each mnemonic has one or more
// definitions (see Defs), which are tried in order by Match.
type Mnemonic uint16

// Get the name of the mnemonic, in upper case.
func (m Mnemonic) Name() string {
	if int(m) < len(mnemonicNames) && mnemonicNames[m] != "" {
		return mnemonicNames[m]
	}
	return fmt.Sprintf("Mnemonic(%d)", uint16(m))
}

func (m Mnemonic) String() string { return m.Name() }

// Mnemonics. The conditional families (CMOVcc, Jcc and SETcc) are ordered by condition code.
const (
	_ Mnemonic = iota
	ADC
	ADD
	ADDSD
	ADDSS
	AND
	CALL
	CDQ
	CMOVO
	CMOVNO
	CMOVB
	CMOVNB
	CMOVZ
	CMOVNZ
	CMOVBE
	CMOVNBE
	CMOVS
	CMOVNS
	CMOVP
	CMOVNP
	CMOVL
	CMOVNL
	CMOVLE
	CMOVNLE
	CMP
	CMPXCHG
	CPUID
	CQO
	CVTSD2SS
	CVTSI2SD
	CVTSI2SS
	CVTSS2SD
	CVTTSD2SI
	CVTTSS2SI
	DEC
	DIV
	DIVSD
	DIVSS
	HLT
	IDIV
	IMUL
	INC
	INT
	INT3
	JO
	JNO
	JB
	JNB
	JZ
	JNZ
	JBE
	JNBE
	JS
	JNS
	JP
	JNP
	JL
	JNL
	JLE
	JNLE
	JMP
	LEA
	LFENCE
	MAXSD
	MAXSS
	MFENCE
	MINSD
	MINSS
	MOV
	MOVD
	MOVQ
	MOVSB
	MOVSD
	MOVSQ
	MOVSS
	MOVSW
	MOVSX
	MOVSXD
	MOVZX
	MUL
	MULSD
	MULSS
	NEG
	NOP
	NOT
	OR
	PAUSE
	POP
	POPCNT
	PUSH
	PUSHA
	RDTSC
	RET
	RETF
	ROL
	ROR
	SAR
	SBB
	SETO
	SETNO
	SETB
	SETNB
	SETZ
	SETNZ
	SETBE
	SETNBE
	SETS
	SETNS
	SETP
	SETNP
	SETL
	SETNL
	SETLE
	SETNLE
	SFENCE
	SHL
	SHR
	SQRTSD
	SQRTSS
	SUB
	SUBSD
	SUBSS
	SYSCALL
	TEST
	TZCNT
	UCOMISD
	UCOMISS
	UD2
	XADD
	XCHG
	XOR

	mnemonicCount
)

// Aliases for conditional mnemonics.
const (
	CMOVC   = CMOVB
	CMOVNAE = CMOVB
	CMOVAE  = CMOVNB
	CMOVNC  = CMOVNB
	CMOVE   = CMOVZ
	CMOVNE  = CMOVNZ
	CMOVNA  = CMOVBE
	CMOVA   = CMOVNBE
	CMOVPE  = CMOVP
	CMOVPO  = CMOVNP
	CMOVNGE = CMOVL
	CMOVGE  = CMOVNL
	CMOVNG  = CMOVLE
	CMOVG   = CMOVNLE

	JC   = JB
	JNAE = JB
	JAE  = JNB
	JNC  = JNB
	JE   = JZ
	JNE  = JNZ
	JNA  = JBE
	JA   = JNBE
	JPE  = JP
	JPO  = JNP
	JNGE = JL
	JGE  = JNL
	JNG  = JLE
	JG   = JNLE

	SETC   = SETB
	SETNAE = SETB
	SETAE  = SETNB
	SETNC  = SETNB
	SETE   = SETZ
	SETNE  = SETNZ
	SETNA  = SETBE
	SETA   = SETNBE
	SETPE  = SETP
	SETPO  = SETNP
	SETNGE = SETL
	SETGE  = SETNL
	SETNG  = SETLE
	SETG   = SETNLE
)

var mnemonicNames = [...]string{
	"", // invalid
	"ADC", "ADD", "ADDSD", "ADDSS", "AND", "CALL", "CDQ", "CMOVO", "CMOVNO", "CMOVB", "CMOVNB",
	"CMOVZ", "CMOVNZ", "CMOVBE", "CMOVNBE", "CMOVS", "CMOVNS", "CMOVP", "CMOVNP", "CMOVL", "CMOVNL",
	"CMOVLE", "CMOVNLE", "CMP", "CMPXCHG", "CPUID", "CQO", "CVTSD2SS", "CVTSI2SD", "CVTSI2SS",
	"CVTSS2SD", "CVTTSD2SI", "CVTTSS2SI", "DEC", "DIV", "DIVSD", "DIVSS", "HLT", "IDIV", "IMUL",
	"INC", "INT", "INT3", "JO", "JNO", "JB", "JNB", "JZ", "JNZ", "JBE", "JNBE", "JS", "JNS", "JP",
	"JNP", "JL", "JNL", "JLE", "JNLE", "JMP", "LEA", "LFENCE", "MAXSD", "MAXSS", "MFENCE", "MINSD",
	"MINSS", "MOV", "MOVD", "MOVQ", "MOVSB", "MOVSD", "MOVSQ", "MOVSS", "MOVSW", "MOVSX", "MOVSXD",
	"MOVZX", "MUL", "MULSD", "MULSS", "NEG", "NOP", "NOT", "OR", "PAUSE", "POP", "POPCNT", "PUSH",
	"PUSHA", "RDTSC", "RET", "RETF", "ROL", "ROR", "SAR", "SBB", "SETO", "SETNO", "SETB", "SETNB",
	"SETZ", "SETNZ", "SETBE", "SETNBE", "SETS", "SETNS", "SETP", "SETNP", "SETL", "SETNL", "SETLE",
	"SETNLE", "SFENCE", "SHL", "SHR", "SQRTSD", "SQRTSS", "SUB", "SUBSD", "SUBSS", "SYSCALL", "TEST",
	"TZCNT", "UCOMISD", "UCOMISS", "UD2", "XADD", "XCHG", "XOR",
}

// Get every mnemonic, in order.
func AllMnemonics() []Mnemonic {
	all := make([]Mnemonic, 0, mnemonicCount-1)
	for m := Mnemonic(1); m < mnemonicCount; m++ {
		all = append(all, m)
	}
	return all
}
