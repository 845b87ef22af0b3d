package riscv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Evaluate a sequence produced by LI. Only the instructions LI emits are understood.
func evalLI(t *testing.T, seq []Inst) int64 {
	t.Helper()
	var regs [32]int64
	for _, i := range seq {
		f := unpack(i)
		imm := int64(int32(i) >> 20)
		var v int64
		switch {
		case f.opcode == uint32(OpLUI):
			v = int64(int32(uint32(i) &^ 0xfff))
		case f.opcode == uint32(OpOpImm) && f.funct3 == 0b000:
			v = regs[f.rs1] + imm
		case f.opcode == uint32(OpOpImm) && f.funct3 == 0b001:
			v = regs[f.rs1] << (uint32(i) >> 20 & 0x3f)
		case f.opcode == uint32(OpOpImm32) && f.funct3 == 0b000:
			v = int64(int32(regs[f.rs1] + imm))
		default:
			t.Fatalf("unexpected instruction %#08x", uint32(i))
		}
		if f.rd != 0 {
			regs[f.rd] = v
		}
	}
	return regs[A0]
}

func TestLI(t *testing.T) {
	values := []int64{
		0, 1, -1, 2047, -2048, 2048, -2049, 0x800, 0xfff, 0x1000,
		0x12345678, -0x12345678, 0x7ffff7ff, 0x7ffff800, 0x7fffffff, math.MinInt32,
		0x80000000, 0xffffffff, 0x100000000, 0x123456789abcdef0, -0x123456789abcdef0,
		0x7ff, 0x7ff << 40, math.MaxInt64, math.MinInt64, 1 << 62, math.MinInt64 + 0x800,
		0x0000_0fff_ffff_f800,
	}
	for _, v := range values {
		seq := LI(A0, v)
		require.NotEmpty(t, seq)
		assert.LessOrEqual(t, len(seq), 8, "%#x", v)
		assert.Equal(t, v, evalLI(t, seq), "%#x", v)
	}
}

func TestLIShortForms(t *testing.T) {
	assert.Equal(t, []Inst{ADDI(A0, X0, 42)}, LI(A0, 42))
	assert.Equal(t, []Inst{LUI(A0, 1)}, LI(A0, 0x1000))
	assert.Equal(t, []Inst{LUI(A0, 0x12345), ADDIW(A0, A0, 0x678)}, LI(A0, 0x12345678))
}

func TestLISweep(t *testing.T) {
	for shift := 0; shift < 64; shift++ {
		for _, low := range []int64{1, 0x7ff, 0x800, 0xabc, -1} {
			v := low << shift
			require.Equal(t, v, evalLI(t, LI(A0, v)), "%#x", v)
			require.Equal(t, v+1, evalLI(t, LI(A0, v+1)), "%#x", v+1)
		}
	}
}

func TestPseudoInstructions(t *testing.T) {
	assert.Equal(t, ADDI(X0, X0, 0), NOP())
	assert.Equal(t, uint32(0x00008067), uint32(RET()))
	assert.Equal(t, XORI(A0, A1, -1), NOT(A0, A1))
	assert.Equal(t, SUB(A0, X0, A1), NEG(A0, A1))
	assert.Equal(t, BNE(A0, X0, -4), BNEZ(A0, -4))
	assert.Equal(t, JAL(X0, 8), JMP(8))
}
