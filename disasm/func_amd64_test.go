//go:build amd64

package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/arch/x86/x86asm"

	"github.com/imlyzh/emei/page"
	"github.com/imlyzh/emei/x64"
)

func TestFunc(t *testing.T) {
	asm := x64.NewAssembler(x64.Mode64)
	asm.Inst(x64.ADD, x64.RAX, x64.RBX)
	asm.Inst(x64.RET)
	code, err := asm.Finalize(0)
	require.NoError(t, err)

	p, err := page.New(code)
	require.NoError(t, err)
	defer p.Close()

	var sum func(a, b int) int
	require.NoError(t, page.SetFunctionCode(&sum, p))
	require.Equal(t, 3, sum(1, 2))

	var insts []string
	takeWhile := func(inst x86asm.Inst) bool {
		insts = append(insts, x86asm.IntelSyntax(inst, 0, nil))
		return true // RET + padding should be automatically detected
	}
	require.NoError(t, Func(sum, takeWhile))
	assert.Equal(t, []string{"add rax, rbx", "ret"}, insts)

	lines, err := X86(p.Bytes(), x64.Mode64, uint64(p.Addr()))
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, uint64(p.Addr()), lines[0].Offset)
}
