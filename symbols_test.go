package emei

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTableRebind(t *testing.T) {
	var syms SymbolTable
	syms.Bind("loop", 4)
	syms.Bind("loop", 12)

	addr, err := syms.Resolve("loop", 0x1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x100c), addr)
	assert.Equal(t, 1, syms.Len())
}

func TestSymbolTableAbsolute(t *testing.T) {
	var syms SymbolTable
	syms.BindAbsolute("memcpy", 0x7fff0000)

	addr, err := syms.Resolve("memcpy", 0x1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x7fff0000), addr)

	v, abs, ok := syms.Lookup("memcpy")
	assert.True(t, ok)
	assert.True(t, abs)
	assert.Equal(t, uint64(0x7fff0000), v)
}

func TestSymbolTableUnresolved(t *testing.T) {
	var syms SymbolTable
	_, err := syms.Resolve("missing", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedLabel))

	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "missing", le.Label)
	assert.Contains(t, err.Error(), `"missing"`)

	syms.Bind("x", 1)
	syms.Reset()
	assert.Equal(t, 0, syms.Len())
}
