package main

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemoAMD64(t *testing.T) {
	out, err := execute(t, "demo", "--arch", "amd64")
	require.NoError(t, err)
	assert.Contains(t, out, "const (amd64, 6 bytes):")
	assert.Contains(t, out, "mov eax, 0x2a")
	assert.Contains(t, out, "addi (amd64, 5 bytes):")
	assert.Contains(t, out, "countdown (amd64,")
}

func TestDemoRISCV64(t *testing.T) {
	out, err := execute(t, "demo", "--arch", "riscv64", "--base", "0x10000")
	require.NoError(t, err)
	assert.Contains(t, out, "const (riscv64,")
	assert.Contains(t, out, "00010000  ")
	assert.Contains(t, out, "countdown (riscv64,")
}

func TestDemoRun(t *testing.T) {
	if runtime.GOARCH != archAMD64 && runtime.GOARCH != archRISCV64 {
		t.Skip("host cannot run the demos")
	}
	out, err := execute(t, "demo", "--run")
	require.NoError(t, err)
	assert.Contains(t, out, "const(0) = 42")
	assert.Contains(t, out, "addi(38) = 42")
	assert.Contains(t, out, "countdown(7) = 28")
}

func TestDemoErrors(t *testing.T) {
	_, err := execute(t, "demo", "--arch", "mips")
	assert.ErrorContains(t, err, "Unsupported architecture")

	_, err = execute(t, "demo", "--base", "nowhere")
	assert.ErrorContains(t, err, "Invalid base address")

	_, err = execute(t, "--log-level", "loud", "demo")
	assert.ErrorContains(t, err, "Invalid log level")
}

func TestParseBase(t *testing.T) {
	for s, want := range map[string]uint64{"": 0, "4096": 4096, "0x10000": 0x10000, "0o17": 15} {
		got, err := parseBase(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
}

func TestLookup(t *testing.T) {
	out, err := execute(t, "lookup", "add", "je")
	require.NoError(t, err)
	assert.Contains(t, out, "ADD:\n")
	assert.Contains(t, out, "JZ:\n")

	_, err = execute(t, "lookup", "frobnicate")
	assert.ErrorContains(t, err, "Unknown mnemonic")

	_, err = execute(t, "lookup")
	assert.Error(t, err)
}
