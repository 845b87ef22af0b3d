package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/arch/x86/x86asm"

	"github.com/imlyzh/emei/riscv"
	"github.com/imlyzh/emei/x64"
)

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestX86Listing(t *testing.T) {
	asm := x64.NewAssembler(x64.Mode64)
	asm.Inst(x64.MOV, x64.RAX, x64.RBX)
	asm.Inst(x64.ADD, x64.RAX, x64.Imm8(5))
	asm.Inst(x64.RET)
	code, err := asm.Finalize(0)
	require.NoError(t, err)

	lines, err := X86(code, x64.Mode64, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"mov rax, rbx", "add rax, 0x5", "ret"}, texts(lines))
	assert.Equal(t, uint64(3), lines[1].Offset)
	assert.Equal(t, []byte{0x48, 0x83, 0xc0, 0x05}, lines[1].Bytes)
	assert.Equal(t, uint64(7), lines[2].Offset)
}

func TestX86Base(t *testing.T) {
	asm := x64.NewAssembler(x64.Mode64)
	asm.Label("top")
	asm.Inst(x64.ADD, x64.RBX, x64.Imm8(1))
	asm.JmpShort("top")
	code, err := asm.Finalize(0x1000)
	require.NoError(t, err)

	lines, err := X86(code, x64.Mode64, 0x1000)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, uint64(0x1004), lines[1].Offset)
	assert.Equal(t, "jmp 0x1000", lines[1].Text)
}

func TestX86Mode32(t *testing.T) {
	asm := x64.NewAssembler(x64.Mode32)
	asm.Inst(x64.INC, x64.EAX)
	code, err := asm.Finalize(0)
	require.NoError(t, err)
	require.Equal(t, []byte{0x40}, code)

	lines, err := X86(code, x64.Mode32, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"inc eax"}, texts(lines))
}

func TestX86Truncated(t *testing.T) {
	lines, err := X86([]byte{0x90, 0x0f}, x64.Mode64, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset 0x1")
	assert.Equal(t, []string{"nop"}, texts(lines))
}

func TestRISCV64Listing(t *testing.T) {
	b := riscv.NewBuffer()
	b.Emit(riscv.ADDI(riscv.A0, riscv.A0, 4))
	b.EmitC(riscv.C_NOP())
	b.Emit(riscv.RET())
	code, err := b.Finalize()
	require.NoError(t, err)

	lines, err := RISCV64(code, 0x80000000)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, uint64(0x80000000), lines[0].Offset)
	assert.Len(t, lines[0].Bytes, 4)
	assert.Contains(t, lines[0].Text, "addi")
	assert.Equal(t, uint64(0x80000004), lines[1].Offset)
	assert.Len(t, lines[1].Bytes, 2)
	assert.Equal(t, uint64(0x80000006), lines[2].Offset)
	assert.Len(t, lines[2].Bytes, 4)
}

func TestFormat(t *testing.T) {
	lines, err := X86([]byte{0x48, 0x89, 0xd8, 0xc3}, x64.Mode64, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, lines))
	out := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, out, 2)
	assert.True(t, strings.HasPrefix(out[0], "00000000  48 89 d8 "), out[0])
	assert.True(t, strings.HasSuffix(out[0], " mov rax, rbx"), out[0])
	assert.True(t, strings.HasPrefix(out[1], "00000003  c3 "), out[1])
}

func TestFuncRejectsNonFunc(t *testing.T) {
	var f func()
	assert.Error(t, Func(f, func(x86asm.Inst) bool { return true }))
	assert.Error(t, Func(42, func(x86asm.Inst) bool { return true }))
}
