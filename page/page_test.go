package page

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocRounding(t *testing.T) {
	size := Size()
	require.Positive(t, size)

	for _, tc := range []struct{ n, cap int }{
		{0, size},
		{1, size},
		{size, size},
		{size + 1, 2 * size},
	} {
		p, err := Alloc(tc.n)
		require.NoError(t, err)
		assert.Equal(t, tc.cap, p.Cap(), "Alloc(%d)", tc.n)
		assert.Zero(t, p.Len())
		assert.NotZero(t, p.Addr())
		assert.Zero(t, p.Addr()%uintptr(size), "page alignment")
		require.NoError(t, p.Close())
	}

	_, err := Alloc(-1)
	assert.Error(t, err)
}

func TestWriteProtectClose(t *testing.T) {
	p, err := Alloc(16)
	require.NoError(t, err)

	code := []byte{0xb8, 0x2a, 0x00, 0x00, 0x00, 0xc3}
	require.NoError(t, p.Write(code))
	assert.Equal(t, len(code), p.Len())
	if diff := cmp.Diff(code, p.Bytes()); diff != "" {
		t.Fatalf("page contents (-want +got):\n%s", diff)
	}

	// a later write replaces the contents
	require.NoError(t, p.Write(code[:1]))
	assert.Equal(t, 1, p.Len())

	assert.Error(t, p.Write(make([]byte, p.Cap()+1)))

	assert.False(t, p.Executable())
	require.NoError(t, p.Protect())
	assert.True(t, p.Executable())
	require.NoError(t, p.Protect())
	assert.ErrorIs(t, p.Write(code), ErrProtected)

	require.NoError(t, p.Close())
	assert.Zero(t, p.Addr())
	assert.ErrorIs(t, p.Close(), ErrClosed)
	assert.ErrorIs(t, p.Write(code), ErrClosed)
	assert.ErrorIs(t, p.Protect(), ErrClosed)
}

func TestNew(t *testing.T) {
	code := []byte{0x90, 0x90, 0xc3}
	p, err := New(code)
	require.NoError(t, err)
	defer p.Close()

	assert.True(t, p.Executable())
	assert.Equal(t, code, p.Bytes())

	big, err := New(make([]byte, 3*Size()))
	require.NoError(t, err)
	assert.Equal(t, 3*Size(), big.Cap())
	require.NoError(t, big.Close())
}

func TestSetFunctionCodeErrors(t *testing.T) {
	p, err := Alloc(1)
	require.NoError(t, err)

	var f func() int
	assert.Error(t, SetFunctionCode(f, p), "not a pointer")
	assert.Error(t, SetFunctionCode(new(int), p), "not a function")
	assert.Error(t, SetFunctionCode(&f, nil))
	assert.Error(t, SetFunctionCode(&f, p), "writable page")

	require.NoError(t, p.Close())
	assert.ErrorIs(t, SetFunctionCode(&f, p), ErrClosed)
	assert.Nil(t, f)
}

func TestCloseRetry(t *testing.T) {
	p, err := Alloc(1)
	require.NoError(t, err)
	addr := p.Addr()

	failure := errors.New("unmap failed")
	unmap = func([]byte) error { return failure }
	t.Cleanup(func() { unmap = unmapPages })
	assert.ErrorIs(t, p.Close(), failure)
	unmap = unmapPages

	// the mapping is still owned by the page
	assert.Equal(t, addr, p.Addr())
	assert.Equal(t, Size(), p.Cap())
	require.NoError(t, p.Write([]byte{0xc3}))

	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.Close(), ErrClosed)
}
