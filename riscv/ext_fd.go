package riscv

// F and D extensions: single- and double-precision floating point.

// Precision selects the operand format of a floating-point instruction.
type Precision uint8

const (
	Single Precision = 0b00
	Double Precision = 0b01
)

// RoundingMode is the rm field of a floating-point instruction.
type RoundingMode uint8

const (
	RNE RoundingMode = 0b000 // to nearest, ties to even
	RTZ RoundingMode = 0b001 // towards zero
	RDN RoundingMode = 0b010 // down
	RUP RoundingMode = 0b011 // up
	RMM RoundingMode = 0b100 // to nearest, ties to max magnitude
	DYN RoundingMode = 0b111 // dynamic, from frm
)

// IntFormat is the integer side of a conversion.
type IntFormat uint8

const (
	W  IntFormat = 0 // int32
	WU IntFormat = 1 // uint32
	L  IntFormat = 2 // int64
	LU IntFormat = 3 // uint64
)

func fop(funct5 uint8, p Precision, funct3 uint8, rd, rs1, rs2 Reg) Inst {
	return R(OpOpFP, rd, funct3, rs1, rs2, funct5<<2|uint8(p&3))
}

func FLW(rd FReg, rs1 Reg, offset int32) Inst { return I(OpLoadFP, Reg(rd), 0b010, rs1, offset) }
func FLD(rd FReg, rs1 Reg, offset int32) Inst { return I(OpLoadFP, Reg(rd), 0b011, rs1, offset) }
func FSW(rs1 Reg, rs2 FReg, offset int32) Inst {
	return S(OpStoreFP, 0b010, rs1, Reg(rs2), offset)
}
func FSD(rs1 Reg, rs2 FReg, offset int32) Inst {
	return S(OpStoreFP, 0b011, rs1, Reg(rs2), offset)
}

// rd = rs1*rs2 + rs3
func FMADD(p Precision, rm RoundingMode, rd, rs1, rs2, rs3 FReg) Inst {
	return R4(OpMadd, Reg(rd), uint8(rm), Reg(rs1), Reg(rs2), Reg(rs3), uint8(p))
}

// rd = rs1*rs2 - rs3
func FMSUB(p Precision, rm RoundingMode, rd, rs1, rs2, rs3 FReg) Inst {
	return R4(OpMsub, Reg(rd), uint8(rm), Reg(rs1), Reg(rs2), Reg(rs3), uint8(p))
}

// rd = -(rs1*rs2) + rs3
func FNMSUB(p Precision, rm RoundingMode, rd, rs1, rs2, rs3 FReg) Inst {
	return R4(OpNmsub, Reg(rd), uint8(rm), Reg(rs1), Reg(rs2), Reg(rs3), uint8(p))
}

// rd = -(rs1*rs2) - rs3
func FNMADD(p Precision, rm RoundingMode, rd, rs1, rs2, rs3 FReg) Inst {
	return R4(OpNmadd, Reg(rd), uint8(rm), Reg(rs1), Reg(rs2), Reg(rs3), uint8(p))
}

func FADD(p Precision, rm RoundingMode, rd, rs1, rs2 FReg) Inst {
	return fop(0b00000, p, uint8(rm), Reg(rd), Reg(rs1), Reg(rs2))
}
func FSUB(p Precision, rm RoundingMode, rd, rs1, rs2 FReg) Inst {
	return fop(0b00001, p, uint8(rm), Reg(rd), Reg(rs1), Reg(rs2))
}
func FMUL(p Precision, rm RoundingMode, rd, rs1, rs2 FReg) Inst {
	return fop(0b00010, p, uint8(rm), Reg(rd), Reg(rs1), Reg(rs2))
}
func FDIV(p Precision, rm RoundingMode, rd, rs1, rs2 FReg) Inst {
	return fop(0b00011, p, uint8(rm), Reg(rd), Reg(rs1), Reg(rs2))
}
func FSQRT(p Precision, rm RoundingMode, rd, rs1 FReg) Inst {
	return fop(0b01011, p, uint8(rm), Reg(rd), Reg(rs1), 0)
}

func FSGNJ(p Precision, rd, rs1, rs2 FReg) Inst  { return fop(0b00100, p, 0b000, Reg(rd), Reg(rs1), Reg(rs2)) }
func FSGNJN(p Precision, rd, rs1, rs2 FReg) Inst { return fop(0b00100, p, 0b001, Reg(rd), Reg(rs1), Reg(rs2)) }
func FSGNJX(p Precision, rd, rs1, rs2 FReg) Inst { return fop(0b00100, p, 0b010, Reg(rd), Reg(rs1), Reg(rs2)) }
func FMIN(p Precision, rd, rs1, rs2 FReg) Inst   { return fop(0b00101, p, 0b000, Reg(rd), Reg(rs1), Reg(rs2)) }
func FMAX(p Precision, rd, rs1, rs2 FReg) Inst   { return fop(0b00101, p, 0b001, Reg(rd), Reg(rs1), Reg(rs2)) }

// Comparisons write 1 or 0 to an integer register.
func FEQ(p Precision, rd Reg, rs1, rs2 FReg) Inst { return fop(0b10100, p, 0b010, rd, Reg(rs1), Reg(rs2)) }
func FLT(p Precision, rd Reg, rs1, rs2 FReg) Inst { return fop(0b10100, p, 0b001, rd, Reg(rs1), Reg(rs2)) }
func FLE(p Precision, rd Reg, rs1, rs2 FReg) Inst { return fop(0b10100, p, 0b000, rd, Reg(rs1), Reg(rs2)) }

func FCLASS(p Precision, rd Reg, rs1 FReg) Inst { return fop(0b11100, p, 0b001, rd, Reg(rs1), 0) }

// Convert a float to an integer of format t.
func FCVT_X_F(p Precision, t IntFormat, rm RoundingMode, rd Reg, rs1 FReg) Inst {
	return fop(0b11000, p, uint8(rm), rd, Reg(rs1), Reg(t))
}

// Convert an integer of format t to a float.
func FCVT_F_X(p Precision, t IntFormat, rm RoundingMode, rd FReg, rs1 Reg) Inst {
	return fop(0b11010, p, uint8(rm), Reg(rd), rs1, Reg(t))
}

// Narrow a double to a single.
func FCVT_S_D(rm RoundingMode, rd, rs1 FReg) Inst {
	return fop(0b01000, Single, uint8(rm), Reg(rd), Reg(rs1), Reg(Double))
}

// Widen a single to a double. The conversion is exact, so rm has no effect.
func FCVT_D_S(rm RoundingMode, rd, rs1 FReg) Inst {
	return fop(0b01000, Double, uint8(rm), Reg(rd), Reg(rs1), Reg(Single))
}

// Bit-preserving moves between the integer and floating-point register files.
func FMV_X_W(rd Reg, rs1 FReg) Inst { return fop(0b11100, Single, 0b000, rd, Reg(rs1), 0) }
func FMV_W_X(rd FReg, rs1 Reg) Inst { return fop(0b11110, Single, 0b000, Reg(rd), rs1, 0) }
func FMV_X_D(rd Reg, rs1 FReg) Inst { return fop(0b11100, Double, 0b000, rd, Reg(rs1), 0) }
func FMV_D_X(rd FReg, rs1 Reg) Inst { return fop(0b11110, Double, 0b000, Reg(rd), rs1, 0) }
