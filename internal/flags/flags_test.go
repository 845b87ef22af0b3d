package x64flags

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagNames(t *testing.T) {
	assert.Equal(t, "DEFAULT", FlagName(DEFAULT))
	assert.Equal(t, "ENC_MR", FlagName(ENC_MR))
	assert.Equal(t, "", FlagName(LOCK|ENC_MR))

	assert.Equal(t, "DEFAULT", String(DEFAULT))
	assert.Equal(t, "AUTO_SIZE|LOCK", String(LOCK|AUTO_SIZE))
	assert.Equal(t, "WITH_REXW|SHORT_ARG", String(WITH_REXW|SHORT_ARG))
}

func TestFlagsDistinct(t *testing.T) {
	var seen uint32
	for _, n := range flagNames {
		assert.Equal(t, 1, bits.OnesCount32(n.f), n.name)
		assert.Zero(t, seen&n.f, n.name)
		seen |= n.f
		assert.Equal(t, n.name, FlagName(n.f))
	}
}
