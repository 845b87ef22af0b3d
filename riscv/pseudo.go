package riscv

import "math/bits"

// Common pseudo-instructions, expanded to their base encodings.

func NOP() Inst                      { return ADDI(X0, X0, 0) }
func MV(rd, rs Reg) Inst             { return ADDI(rd, rs, 0) }
func NOT(rd, rs Reg) Inst            { return XORI(rd, rs, -1) }
func NEG(rd, rs Reg) Inst            { return SUB(rd, X0, rs) }
func SEXT_W(rd, rs Reg) Inst         { return ADDIW(rd, rs, 0) }
func SEQZ(rd, rs Reg) Inst           { return SLTIU(rd, rs, 1) }
func SNEZ(rd, rs Reg) Inst           { return SLTU(rd, X0, rs) }
func RET() Inst                      { return JALR(X0, RA, 0) }
func JR(rs Reg) Inst                 { return JALR(X0, rs, 0) }
func JMP(offset int32) Inst          { return JAL(X0, offset) }
func BEQZ(rs Reg, offset int32) Inst { return BEQ(rs, X0, offset) }
func BNEZ(rs Reg, offset int32) Inst { return BNE(rs, X0, offset) }

// Load a 64-bit constant into rd. The sequence is one to eight instructions long and
// uses no register besides rd.
func LI(rd Reg, v int64) []Inst { return appendLI(nil, rd, v) }

func appendLI(out []Inst, rd Reg, v int64) []Inst {
	lo12 := int32(v<<52>>52)
	if v == int64(int32(v)) {
		hi20 := uint32((v+0x800)>>12) & 0xfffff
		if hi20 != 0 {
			out = append(out, LUI(rd, hi20))
			if lo12 != 0 {
				out = append(out, ADDIW(rd, rd, lo12))
			}
			return out
		}
		return append(out, ADDI(rd, X0, lo12))
	}

	hi52 := v>>12 + v>>11&1
	shift := bits.TrailingZeros64(uint64(hi52))
	out = appendLI(out, rd, hi52>>shift)
	out = append(out, SLLI(rd, rd, uint8(12+shift)))
	if lo12 != 0 {
		out = append(out, ADDI(rd, rd, lo12))
	}
	return out
}
