package riscv

import "fmt"

// Reg is an integer register number, x0 through x31.
type Reg uint8

// FReg is a floating-point register number, f0 through f31.
type FReg uint8

// Integer registers.
const (
	X0 Reg = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
	X9
	X10
	X11
	X12
	X13
	X14
	X15
	X16
	X17
	X18
	X19
	X20
	X21
	X22
	X23
	X24
	X25
	X26
	X27
	X28
	X29
	X30
	X31
)

// ABI names for the integer registers.
const (
	ZERO = X0
	RA   = X1
	SP   = X2
	GP   = X3
	TP   = X4
	T0   = X5
	T1   = X6
	T2   = X7
	S0   = X8
	FP   = X8
	S1   = X9
	A0   = X10
	A1   = X11
	A2   = X12
	A3   = X13
	A4   = X14
	A5   = X15
	A6   = X16
	A7   = X17
	S2   = X18
	S3   = X19
	S4   = X20
	S5   = X21
	S6   = X22
	S7   = X23
	S8   = X24
	S9   = X25
	S10  = X26
	S11  = X27
	T3   = X28
	T4   = X29
	T5   = X30
	T6   = X31
)

// Floating-point registers.
const (
	F0 FReg = iota
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24
	F25
	F26
	F27
	F28
	F29
	F30
	F31
)

// ABI names for the floating-point registers.
const (
	FT0  = F0
	FT1  = F1
	FT2  = F2
	FT3  = F3
	FT4  = F4
	FT5  = F5
	FT6  = F6
	FT7  = F7
	FS0  = F8
	FS1  = F9
	FA0  = F10
	FA1  = F11
	FA2  = F12
	FA3  = F13
	FA4  = F14
	FA5  = F15
	FA6  = F16
	FA7  = F17
	FS2  = F18
	FS3  = F19
	FS4  = F20
	FS5  = F21
	FS6  = F22
	FS7  = F23
	FS8  = F24
	FS9  = F25
	FS10 = F26
	FS11 = F27
	FT8  = F28
	FT9  = F29
	FT10 = F30
	FT11 = F31
)

var abiNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// Get the 5-bit encoding of the register.
func (r Reg) Num() uint32 { return uint32(r) & 0x1f }

// Get the 3-bit encoding used by compressed instructions. Only x8 through x15 have one.
func (r Reg) Compressed() (uint16, bool) {
	if r < X8 || r > X15 {
		return 0, false
	}
	return uint16(r - X8), true
}

func (r Reg) String() string {
	if r < 32 {
		return abiNames[r]
	}
	return fmt.Sprintf("Reg(%d)", uint8(r))
}

// Get the 5-bit encoding of the register.
func (f FReg) Num() uint32 { return uint32(f) & 0x1f }

// Get the 3-bit encoding used by compressed instructions. Only f8 through f15 have one.
func (f FReg) Compressed() (uint16, bool) { return Reg(f).Compressed() }

func (f FReg) String() string { return fmt.Sprintf("f%d", uint8(f)) }

// creg is the 3-bit compressed encoding of r, truncated when r has none.
func creg(r Reg) uint16 { return uint16(r-X8) & 7 }
