//go:build amd64

package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imlyzh/emei"
	"github.com/imlyzh/emei/page"
	. "github.com/imlyzh/emei/x64"
)

func load(t *testing.T, asm *Assembler, fn any) *page.Page {
	t.Helper()
	require.NoError(t, asm.Err())
	code, err := asm.Finalize(0)
	require.NoError(t, err)
	p, err := page.New(code)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	require.NoError(t, page.SetFunctionCode(fn, p))
	return p
}

func TestReturnConstant(t *testing.T) {
	asm := NewAssembler(Mode64)
	asm.Inst(MOV, EAX, Imm32(42))
	asm.Inst(RET)

	var f func() int
	load(t, asm, &f)
	assert.Equal(t, 42, f())
}

func TestAddImmediate(t *testing.T) {
	asm := NewAssembler(Mode64)
	asm.Inst(ADD, RAX, Imm8(4))
	asm.Inst(RET)

	var f func(int) int
	load(t, asm, &f)
	assert.Equal(t, 5, f(1))
}

func TestSum(t *testing.T) {
	asm := NewAssembler(Mode64)
	asm.Inst(ADD, RAX, RBX)
	asm.Inst(RET)

	var sum func(a, b int) int
	load(t, asm, &sum)
	assert.Equal(t, 3, sum(1, 2))
	assert.Equal(t, -7, sum(-10, 3))
}

func TestCountdownLoop(t *testing.T) {
	asm := NewAssembler(Mode64)
	asm.Inst(XOR, ECX, ECX)
	asm.Label("top")
	asm.Inst(ADD, RCX, RAX)
	asm.Inst(SUB, RAX, Imm8(1))
	asm.Jcc(CCNeq, "top")
	asm.Inst(MOV, RAX, RCX)
	asm.Inst(RET)

	var triangle func(n int) int
	load(t, asm, &triangle)
	assert.Equal(t, 55, triangle(10))
	assert.Equal(t, 1, triangle(1))
}

func TestRipRelativeData(t *testing.T) {
	asm := NewAssembler(Mode64)
	asm.LeaLabel(RAX, "data")
	asm.Inst(MOV, RAX, Mem{Base: RAX})
	asm.Inst(RET)
	asm.Align(8)
	asm.Label("data")
	asm.Data(emei.Bit64, 0x1122334455667788)

	var f func() uint64
	load(t, asm, &f)
	assert.Equal(t, uint64(0x1122334455667788), f())
}
