package riscv

// Compressed quadrants, bits 1:0 of a 16-bit instruction.
const (
	C0 uint8 = 0b00
	C1 uint8 = 0b01
	C2 uint8 = 0b10
)

// Registers passed to the CIW, CL, CS, CA and CB packers must be x8 through x15;
// other registers are truncated to their low three bits after rebasing.

// Pack a compressed register instruction.
//
//	15     12 11      7 6   2 1  0
//	| funct4 | rd/rs1 | rs2 | op |
func CR(op, funct4 uint8, rdRs1, rs2 Reg) CInst {
	return CInst(uint16(op)&3 |
		uint16(rs2.Num())<<2 |
		uint16(rdRs1.Num())<<7 |
		(uint16(funct4)&0xf)<<12)
}

// Pack a compressed immediate instruction. hi is the single immediate bit at 12 and lo the
// five bits at 6:2; their meaning depends on the instruction.
//
//	15     13 12   11      7 6    2 1  0
//	| funct3 | hi | rd/rs1 |  lo  | op |
func CI(op, funct3 uint8, rdRs1 Reg, hi, lo uint16) CInst {
	return CInst(uint16(op)&3 |
		(lo&0x1f)<<2 |
		uint16(rdRs1.Num())<<7 |
		(hi&1)<<12 |
		(uint16(funct3)&7)<<13)
}

// Pack a compressed stack-relative store. imm is the six bits at 12:7.
//
//	15     13 12   7 6   2 1  0
//	| funct3 | imm | rs2 | op |
func CSS(op, funct3 uint8, rs2 Reg, imm uint16) CInst {
	return CInst(uint16(op)&3 |
		uint16(rs2.Num())<<2 |
		(imm&0x3f)<<7 |
		(uint16(funct3)&7)<<13)
}

// Pack a compressed wide-immediate instruction. imm is the eight bits at 12:5.
//
//	15     13 12   5 4   2 1  0
//	| funct3 | imm | rd' | op |
func CIW(op, funct3 uint8, rd Reg, imm uint16) CInst {
	return CInst(uint16(op)&3 |
		creg(rd)<<2 |
		(imm&0xff)<<5 |
		(uint16(funct3)&7)<<13)
}

// Pack a compressed load. hi is the three bits at 12:10 and lo the two bits at 6:5.
//
//	15     13 12  10 9    7 6  5 4   2 1  0
//	| funct3 |  hi  | rs1' | lo | rd' | op |
func CL(op, funct3 uint8, rd, rs1 Reg, hi, lo uint16) CInst {
	return CInst(uint16(op)&3 |
		creg(rd)<<2 |
		(lo&3)<<5 |
		creg(rs1)<<7 |
		(hi&7)<<10 |
		(uint16(funct3)&7)<<13)
}

// Pack a compressed store. The layout is CL with rs2' in place of rd'.
func CS(op, funct3 uint8, rs1, rs2 Reg, hi, lo uint16) CInst {
	return CL(op, funct3, rs2, rs1, hi, lo)
}

// Pack a compressed arithmetic instruction.
//
//	15     10 9       7 6      5 4    2 1  0
//	| funct6 | rd'/rs1' | funct2 | rs2' | op |
func CA(op, funct6 uint8, rdRs1 Reg, funct2 uint8, rs2 Reg) CInst {
	return CInst(uint16(op)&3 |
		creg(rs2)<<2 |
		(uint16(funct2)&3)<<5 |
		creg(rdRs1)<<7 |
		(uint16(funct6)&0x3f)<<10)
}

// Pack a compressed branch-format instruction. hi is the three bits at 12:10 and lo the
// five bits at 6:2. C.BEQZ and C.BNEZ scramble a displacement into them with CBOffset.
//
//	15     13 12  10 9    7 6  2 1  0
//	| funct3 |  hi  | rs1' | lo | op |
func CB(op, funct3 uint8, rs1 Reg, hi, lo uint16) CInst {
	return CInst(uint16(op)&3 |
		(lo&0x1f)<<2 |
		creg(rs1)<<7 |
		(hi&7)<<10 |
		(uint16(funct3)&7)<<13)
}

// Pack a compressed jump. offset is a signed, even 12-bit displacement.
//
//	15     13 12                        2 1  0
//	| funct3 | offset[11|4|9:8|10|6|7|3:1|5] | op |
func CJ(op, funct3 uint8, offset int32) CInst {
	u := uint16(offset)
	target := (u>>5&1)<<0 |
		(u>>1&7)<<1 |
		(u>>7&1)<<4 |
		(u>>6&1)<<5 |
		(u>>10&1)<<6 |
		(u>>8&3)<<7 |
		(u>>4&1)<<9 |
		(u>>11&1)<<10
	return CInst(uint16(op)&3 | target<<2 | (uint16(funct3)&7)<<13)
}

// Split a signed, even 9-bit branch displacement into the hi and lo fields of CB.
func CBOffset(offset int32) (hi, lo uint16) {
	u := uint16(offset)
	hi = (u>>3&3)<<0 | (u>>8&1)<<2
	lo = (u>>5&1)<<0 | (u>>1&3)<<1 | (u>>6&3)<<3
	return hi, lo
}

// Get the displacement encoded by a CJ word.
func CJumpOffset(c CInst) int32 {
	t := uint16(c) >> 2 & 0x7ff
	u := (t>>0&1)<<5 |
		(t>>1&7)<<1 |
		(t>>4&1)<<7 |
		(t>>5&1)<<6 |
		(t>>6&1)<<10 |
		(t>>7&3)<<8 |
		(t>>9&1)<<4 |
		(t>>10&1)<<11
	return int32(int16(u<<4) >> 4)
}

// Get the displacement encoded by a C.BEQZ or C.BNEZ word.
func CBranchOffset(c CInst) int32 {
	w := uint16(c)
	hi, lo := w>>10&7, w>>2&0x1f
	u := (hi&3)<<3 | (hi>>2&1)<<8 | (lo&1)<<5 | (lo>>1&3)<<1 | (lo>>3&3)<<6
	return int32(int16(u<<7) >> 7)
}
