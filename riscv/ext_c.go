package riscv

// C extension: 16-bit compressed instructions for RV64C.
//
// Registers written with a prime in the ISA manual (rd', rs1', rs2') must be x8 through x15.
// Immediates are truncated to their field widths, and offsets whose low bits are implied by
// the access size drop those bits.

// Quadrant 0.

// rd' = sp + nzuimm, where nzuimm is a multiple of 4 below 1024.
func C_ADDI4SPN(rd Reg, nzuimm uint16) CInst {
	u := nzuimm
	imm := (u>>3&1)<<0 | (u>>2&1)<<1 | (u>>6&0xf)<<2 | (u>>4&3)<<6
	return CIW(C0, 0b000, rd, imm)
}

func C_FLD(rd FReg, rs1 Reg, offset uint16) CInst {
	return CL(C0, 0b001, Reg(rd), rs1, offset>>3&7, offset>>6&3)
}
func C_LW(rd, rs1 Reg, offset uint16) CInst {
	return CL(C0, 0b010, rd, rs1, offset>>3&7, (offset>>6&1)|(offset>>2&1)<<1)
}
func C_LD(rd, rs1 Reg, offset uint16) CInst {
	return CL(C0, 0b011, rd, rs1, offset>>3&7, offset>>6&3)
}
func C_FSD(rs1 Reg, rs2 FReg, offset uint16) CInst {
	return CS(C0, 0b101, rs1, Reg(rs2), offset>>3&7, offset>>6&3)
}
func C_SW(rs1, rs2 Reg, offset uint16) CInst {
	return CS(C0, 0b110, rs1, rs2, offset>>3&7, (offset>>6&1)|(offset>>2&1)<<1)
}
func C_SD(rs1, rs2 Reg, offset uint16) CInst {
	return CS(C0, 0b111, rs1, rs2, offset>>3&7, offset>>6&3)
}

// Quadrant 1.

func ci6(imm int32) (hi, lo uint16) { return uint16(imm>>5) & 1, uint16(imm) & 0x1f }

func C_NOP() CInst { return CI(C1, 0b000, 0, 0, 0) }

func C_ADDI(rd Reg, imm int32) CInst {
	hi, lo := ci6(imm)
	return CI(C1, 0b000, rd, hi, lo)
}

func C_ADDIW(rd Reg, imm int32) CInst {
	hi, lo := ci6(imm)
	return CI(C1, 0b001, rd, hi, lo)
}

func C_LI(rd Reg, imm int32) CInst {
	hi, lo := ci6(imm)
	return CI(C1, 0b010, rd, hi, lo)
}

// sp = sp + nzimm, where nzimm is a multiple of 16.
func C_ADDI16SP(nzimm int32) CInst {
	u := uint16(nzimm)
	lo := (u>>5&1)<<0 | (u>>7&3)<<1 | (u>>6&1)<<3 | (u>>4&1)<<4
	return CI(C1, 0b011, SP, u>>9&1, lo)
}

// rd = nzimm << 12, where nzimm is a signed 6-bit value.
func C_LUI(rd Reg, nzimm int32) CInst {
	hi, lo := ci6(nzimm)
	return CI(C1, 0b011, rd, hi, lo)
}

func C_SRLI(rd Reg, shamt uint8) CInst {
	return CB(C1, 0b100, rd, uint16(shamt>>5&1)<<2|0b00, uint16(shamt&0x1f))
}
func C_SRAI(rd Reg, shamt uint8) CInst {
	return CB(C1, 0b100, rd, uint16(shamt>>5&1)<<2|0b01, uint16(shamt&0x1f))
}
func C_ANDI(rd Reg, imm int32) CInst {
	hi, lo := ci6(imm)
	return CB(C1, 0b100, rd, hi<<2|0b10, lo)
}

func C_SUB(rd, rs2 Reg) CInst  { return CA(C1, 0b100011, rd, 0b00, rs2) }
func C_XOR(rd, rs2 Reg) CInst  { return CA(C1, 0b100011, rd, 0b01, rs2) }
func C_OR(rd, rs2 Reg) CInst   { return CA(C1, 0b100011, rd, 0b10, rs2) }
func C_AND(rd, rs2 Reg) CInst  { return CA(C1, 0b100011, rd, 0b11, rs2) }
func C_SUBW(rd, rs2 Reg) CInst { return CA(C1, 0b100111, rd, 0b00, rs2) }
func C_ADDW(rd, rs2 Reg) CInst { return CA(C1, 0b100111, rd, 0b01, rs2) }

func C_J(offset int32) CInst { return CJ(C1, 0b101, offset) }

func C_BEQZ(rs1 Reg, offset int32) CInst {
	hi, lo := CBOffset(offset)
	return CB(C1, 0b110, rs1, hi, lo)
}

func C_BNEZ(rs1 Reg, offset int32) CInst {
	hi, lo := CBOffset(offset)
	return CB(C1, 0b111, rs1, hi, lo)
}

// Quadrant 2.

func C_SLLI(rd Reg, shamt uint8) CInst {
	return CI(C2, 0b000, rd, uint16(shamt>>5&1), uint16(shamt&0x1f))
}

func C_FLDSP(rd FReg, offset uint16) CInst {
	return CI(C2, 0b001, Reg(rd), offset>>5&1, (offset>>6&7)|(offset>>3&3)<<3)
}
func C_LWSP(rd Reg, offset uint16) CInst {
	return CI(C2, 0b010, rd, offset>>5&1, (offset>>6&3)|(offset>>2&7)<<2)
}
func C_LDSP(rd Reg, offset uint16) CInst {
	return CI(C2, 0b011, rd, offset>>5&1, (offset>>6&7)|(offset>>3&3)<<3)
}

func C_JR(rs1 Reg) CInst      { return CR(C2, 0b1000, rs1, 0) }
func C_MV(rd, rs2 Reg) CInst  { return CR(C2, 0b1000, rd, rs2) }
func C_EBREAK() CInst         { return CR(C2, 0b1001, 0, 0) }
func C_JALR(rs1 Reg) CInst    { return CR(C2, 0b1001, rs1, 0) }
func C_ADD(rd, rs2 Reg) CInst { return CR(C2, 0b1001, rd, rs2) }

func C_FSDSP(rs2 FReg, offset uint16) CInst {
	return CSS(C2, 0b101, Reg(rs2), (offset>>6&7)|(offset>>3&7)<<3)
}
func C_SWSP(rs2 Reg, offset uint16) CInst {
	return CSS(C2, 0b110, rs2, (offset>>6&3)|(offset>>2&0xf)<<2)
}
func C_SDSP(rs2 Reg, offset uint16) CInst {
	return CSS(C2, 0b111, rs2, (offset>>6&7)|(offset>>3&7)<<3)
}
