//go:build riscv64

package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imlyzh/emei/page"
	. "github.com/imlyzh/emei/riscv"
)

func load(t *testing.T, b *Buffer, fn any) *page.Page {
	t.Helper()
	code, err := b.Finalize()
	require.NoError(t, err)
	p, err := page.New(code)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	require.NoError(t, page.SetFunctionCode(fn, p))
	return p
}

func TestReturnConstant(t *testing.T) {
	b := NewBuffer()
	b.LI(A0, 42)
	b.Emit(RET())

	var f func() int
	load(t, b, &f)
	assert.Equal(t, 42, f())
}

func TestAddImmediate(t *testing.T) {
	b := NewBuffer()
	b.Emit(ADDI(A0, A0, 4), RET())

	var f func(int) int
	load(t, b, &f)
	assert.Equal(t, 5, f(1))
}

func TestSum(t *testing.T) {
	b := NewBuffer()
	b.Emit(ADD(A0, A0, A1), RET())

	var sum func(a, b int) int
	load(t, b, &sum)
	assert.Equal(t, 3, sum(1, 2))
}

func TestCountdownLoop(t *testing.T) {
	b := NewBuffer()
	b.LI(A1, 0)
	b.Label("top")
	b.Emit(ADD(A1, A1, A0))
	b.Emit(ADDI(A0, A0, -1))
	b.BNEZ(A0, "top")
	b.Emit(ADDI(A0, A1, 0), RET())

	var triangle func(n int) int
	load(t, b, &triangle)
	assert.Equal(t, 55, triangle(10))
}
