package feats

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatNames(t *testing.T) {
	assert.Equal(t, "X64_IMPLICIT", FeatName(X64_IMPLICIT))
	assert.Equal(t, "SSE41", FeatName(SSE41))
	assert.Equal(t, "AVX2", FeatName(AVX2))
	assert.Equal(t, "", FeatName(SSE|SSE2))

	assert.Equal(t, "SSE|SSE2|POPCNT", (SSE | SSE2 | POPCNT).String())
	assert.Equal(t, "X64_IMPLICIT", X64_IMPLICIT.String())
}

func TestParse(t *testing.T) {
	for i, name := range featNames {
		f, ok := Parse(name)
		assert.True(t, ok, name)
		assert.Equal(t, Feature(1)<<i, f, name)
		assert.Equal(t, name, FeatName(f))
	}
	f, ok := Parse("popcnt")
	assert.True(t, ok)
	assert.Equal(t, POPCNT, f)

	_, ok = Parse("MMX")
	assert.False(t, ok)
}

func TestAllFeatures(t *testing.T) {
	for i := range featNames {
		assert.NotZero(t, AllFeatures&(1<<i))
	}
	assert.Zero(t, AllFeatures&(AVX2<<1))
}

func TestHost(t *testing.T) {
	host := Host()
	assert.Zero(t, host&^AllFeatures)
	if runtime.GOARCH == "amd64" {
		// SSE2 is part of the x86-64 baseline
		assert.Equal(t, SSE|SSE2, host&(SSE|SSE2))
	} else {
		assert.Equal(t, X64_IMPLICIT, host)
	}
}
