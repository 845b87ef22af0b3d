package x64lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imlyzh/emei/x64"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"mov", "MOV", "Mov"} {
		m, ok := Mnemonic(name)
		require.True(t, ok, "failed to find %s", name)
		assert.Equal(t, x64.MOV, m)
	}

	m, ok := Mnemonic("cvttsd2si")
	require.True(t, ok)
	assert.Equal(t, x64.CVTTSD2SI, m)

	m, ok = Mnemonic("je")
	require.True(t, ok)
	assert.Equal(t, x64.JZ, m)
	m, ok = Mnemonic("cmovg")
	require.True(t, ok)
	assert.Equal(t, x64.CMOVNLE, m)

	for _, name := range []string{"", "movx", "vzeroupper", "abcdefghijklmnopq"} {
		_, ok := Mnemonic(name)
		assert.False(t, ok, name)
	}
}

func TestLookupEveryMnemonic(t *testing.T) {
	for _, m := range x64.AllMnemonics() {
		found, ok := Mnemonic(m.Name())
		require.True(t, ok, m.Name())
		assert.Equal(t, m, found)
	}
}

func TestDefs(t *testing.T) {
	defs := Defs("push")
	require.NotEmpty(t, defs)
	assert.Equal(t, x64.PUSH, defs[0].Mnemonic)
	assert.Equal(t, "r*", defs[0].Args)
	assert.Nil(t, Defs("nope"))
}

func TestUpperCase(t *testing.T) {
	assert.Equal(t, "INT3", upperCase("int3"))
	assert.Equal(t, "CVTSI2SD", upperCase("cvtSI2sd"))
	assert.Equal(t, "ADD", upperCase("ADD"))
}
