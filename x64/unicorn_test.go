//go:build unicorn

package x64

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"
)

const (
	emuCode  = 0x10000
	emuData  = 0x20000
	emuStack = 0x30000
	emuSize  = 0x1000
)

func emulate(t *testing.T, code []byte, regs map[int]uint64) uc.Unicorn {
	t.Helper()
	mu, err := uc.NewUnicorn(uc.ARCH_X86, uc.MODE_64)
	require.NoError(t, err)
	t.Cleanup(func() { mu.Close() })
	for _, base := range []uint64{emuCode, emuData, emuStack} {
		require.NoError(t, mu.MemMap(base, emuSize))
	}
	require.NoError(t, mu.MemWrite(emuCode, code))
	require.NoError(t, mu.RegWrite(uc.X86_REG_RSP, emuStack+emuSize-8))
	for reg, v := range regs {
		require.NoError(t, mu.RegWrite(reg, v))
	}
	require.NoError(t, mu.Start(emuCode, emuCode+uint64(len(code))))
	return mu
}

func TestEmulatedLoop(t *testing.T) {
	asm := NewAssembler(Mode64)
	asm.Inst(XOR, ECX, ECX)
	asm.Label("loop")
	asm.Inst(ADD, RCX, RBX)
	asm.Inst(SUB, RAX, Imm8(1))
	asm.Jcc(CCNeq, "loop")
	asm.Inst(MOV, RAX, RCX)
	code, err := asm.Finalize(emuCode)
	require.NoError(t, err)

	mu := emulate(t, code, map[int]uint64{uc.X86_REG_RAX: 6, uc.X86_REG_RBX: 5})
	rax, err := mu.RegRead(uc.X86_REG_RAX)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), rax)
}

func TestEmulatedCallAndStore(t *testing.T) {
	asm := NewAssembler(Mode64)
	asm.MovLabel(R8, "table")
	asm.Call("double")
	asm.Inst(MOV, Mem{Base: R8, Index: RCX, Scale: 8}, RAX)
	asm.Jmp("end")
	asm.Align(16)
	asm.Label("double")
	asm.Inst(ADD, RAX, RAX)
	asm.Inst(RET)
	asm.Label("end")
	asm.RuntimeSymbol("table", emuData)
	code, err := asm.Finalize(emuCode)
	require.NoError(t, err)

	mu := emulate(t, code, map[int]uint64{uc.X86_REG_RAX: 15, uc.X86_REG_RCX: 3})
	stored, err := mu.MemRead(emuData+3*8, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), littleEndian(stored))
}
