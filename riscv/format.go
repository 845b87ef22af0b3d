package riscv

import "encoding/binary"

// Inst is a 32-bit instruction word.
type Inst uint32

// CInst is a 16-bit compressed instruction word.
type CInst uint16

// Major opcodes, bits 6:0 of a 32-bit instruction.
const (
	OpLoad    uint8 = 0b0000011
	OpLoadFP  uint8 = 0b0000111
	OpMiscMem uint8 = 0b0001111
	OpOpImm   uint8 = 0b0010011
	OpAUIPC   uint8 = 0b0010111
	OpOpImm32 uint8 = 0b0011011
	OpStore   uint8 = 0b0100011
	OpStoreFP uint8 = 0b0100111
	OpAMO     uint8 = 0b0101111
	OpOp      uint8 = 0b0110011
	OpLUI     uint8 = 0b0110111
	OpOp32    uint8 = 0b0111011
	OpMadd    uint8 = 0b1000011
	OpMsub    uint8 = 0b1000111
	OpNmsub   uint8 = 0b1001011
	OpNmadd   uint8 = 0b1001111
	OpOpFP    uint8 = 0b1010011
	OpBranch  uint8 = 0b1100011
	OpJALR    uint8 = 0b1100111
	OpJAL     uint8 = 0b1101111
	OpSystem  uint8 = 0b1110011
)

// Append the instruction to dst in little-endian order.
func (i Inst) Append(dst []byte) []byte { return binary.LittleEndian.AppendUint32(dst, uint32(i)) }

// Append the instruction to dst in little-endian order.
func (c CInst) Append(dst []byte) []byte { return binary.LittleEndian.AppendUint16(dst, uint16(c)) }

// Get the opcode field.
func (i Inst) Opcode() uint8 { return uint8(i) & 0x7f }

// Every packer below truncates its fields to their encoded width. Branch and jump
// displacements also drop bit 0, which is never encoded.

func enc(opcode uint8, rd Reg, funct3 uint8, rs1, rs2 Reg, funct7 uint8) Inst {
	return Inst(uint32(opcode)&0x7f |
		rd.Num()<<7 |
		(uint32(funct3)&7)<<12 |
		rs1.Num()<<15 |
		rs2.Num()<<20 |
		(uint32(funct7)&0x7f)<<25)
}

// Pack a register-register instruction.
//
//	31     25 24  20 19  15 14    12 11  7 6      0
//	| funct7 |  rs2 |  rs1 | funct3 |  rd | opcode |
func R(opcode uint8, rd Reg, funct3 uint8, rs1, rs2 Reg, funct7 uint8) Inst {
	return enc(opcode, rd, funct3, rs1, rs2, funct7)
}

// Pack a four-register instruction, used by the fused multiply-add family. fmt selects
// the operand precision.
//
//	31  27 26 25 24  20 19  15 14    12 11  7 6      0
//	| rs3 | fmt |  rs2 |  rs1 | funct3 |  rd | opcode |
func R4(opcode uint8, rd Reg, funct3 uint8, rs1, rs2, rs3 Reg, fmt uint8) Inst {
	return enc(opcode, rd, funct3, rs1, rs2, uint8(rs3.Num())<<2|fmt&3)
}

// Pack a register-immediate instruction. imm is a signed 12-bit value.
//
//	31        20 19  15 14    12 11  7 6      0
//	| imm[11:0] |  rs1 | funct3 |  rd | opcode |
func I(opcode uint8, rd Reg, funct3 uint8, rs1 Reg, imm int32) Inst {
	return enc(opcode, rd, funct3, rs1, 0, 0) | Inst(uint32(imm)&0xfff)<<20
}

// Pack a store instruction. imm is a signed 12-bit value.
//
//	31        25 24  20 19  15 14    12 11       7 6      0
//	| imm[11:5] |  rs2 |  rs1 | funct3 | imm[4:0] | opcode |
func S(opcode uint8, funct3 uint8, rs1, rs2 Reg, imm int32) Inst {
	u := uint32(imm)
	return enc(opcode, 0, funct3, rs1, rs2, 0) |
		Inst(u&0x1f)<<7 |
		Inst(u>>5&0x7f)<<25
}

// Pack a conditional branch. imm is a signed, even 13-bit displacement.
//
//	31           25 24  20 19  15 14    12 11          7 6      0
//	| imm[12|10:5] |  rs2 |  rs1 | funct3 | imm[4:1|11] | opcode |
func B(opcode uint8, funct3 uint8, rs1, rs2 Reg, imm int32) Inst {
	u := uint32(imm)
	return enc(opcode, 0, funct3, rs1, rs2, 0) |
		Inst(u>>11&1)<<7 |
		Inst(u>>1&0xf)<<8 |
		Inst(u>>5&0x3f)<<25 |
		Inst(u>>12&1)<<31
}

// Pack an upper-immediate instruction. imm is the 20-bit value placed in bits 31:12.
//
//	31         12 11  7 6      0
//	| imm[31:12] |  rd | opcode |
func U(opcode uint8, rd Reg, imm uint32) Inst {
	return enc(opcode, rd, 0, 0, 0, 0) | Inst(imm&0xfffff)<<12
}

// Pack a jump. imm is a signed, even 21-bit displacement.
//
//	31                    12 11  7 6      0
//	| imm[20|10:1|11|19:12] |  rd | opcode |
func J(opcode uint8, rd Reg, imm int32) Inst {
	u := uint32(imm)
	return enc(opcode, rd, 0, 0, 0, 0) |
		Inst(u>>12&0xff)<<12 |
		Inst(u>>11&1)<<20 |
		Inst(u>>1&0x3ff)<<21 |
		Inst(u>>20&1)<<31
}

// Get the displacement encoded by a B-type word.
func BranchOffset(i Inst) int32 {
	u := uint32(i)
	imm := (u>>31&1)<<12 | (u>>7&1)<<11 | (u>>25&0x3f)<<5 | (u>>8&0xf)<<1
	return int32(imm<<19) >> 19
}

// Get the displacement encoded by a J-type word.
func JumpOffset(i Inst) int32 {
	u := uint32(i)
	imm := (u>>31&1)<<20 | (u>>12&0xff)<<12 | (u>>20&1)<<11 | (u>>21&0x3ff)<<1
	return int32(imm<<11) >> 11
}
