// Package feats lists the CPU features which gate x64 instruction definitions.
package feats

import (
	"strings"

	"golang.org/x/sys/cpu"
)

type Feature uint32

// CPU Features
const (
	X64_IMPLICIT Feature = 0
	SSE          Feature = 1 << (iota - 1)
	SSE2
	SSE3
	SSSE3
	SSE41
	SSE42
	POPCNT
	BMI1
	BMI2
	AVX
	AVX2
)

const AllFeatures Feature = AVX2<<1 - 1

var featNames = [...]string{
	"SSE",
	"SSE2",
	"SSE3",
	"SSSE3",
	"SSE41",
	"SSE42",
	"POPCNT",
	"BMI1",
	"BMI2",
	"AVX",
	"AVX2",
}

// Get the name of a single feature.
func FeatName(f Feature) string {
	for i, name := range featNames {
		if f == 1<<i {
			return name
		}
	}
	if f == X64_IMPLICIT {
		return "X64_IMPLICIT"
	}
	return ""
}

func (f Feature) String() string {
	if f == X64_IMPLICIT {
		return "X64_IMPLICIT"
	}
	var names []string
	for i, name := range featNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// Parse a feature name, as returned by FeatName. Case is ignored.
func Parse(name string) (Feature, bool) {
	for i, n := range featNames {
		if strings.EqualFold(n, name) {
			return 1 << i, true
		}
	}
	return 0, false
}

// Get the features supported by the host CPU. On non-x86 hosts the result is X64_IMPLICIT.
func Host() Feature {
	var f Feature
	for _, c := range [...]struct {
		has  bool
		feat Feature
	}{
		{cpu.X86.HasSSE2, SSE | SSE2},
		{cpu.X86.HasSSE3, SSE3},
		{cpu.X86.HasSSSE3, SSSE3},
		{cpu.X86.HasSSE41, SSE41},
		{cpu.X86.HasSSE42, SSE42},
		{cpu.X86.HasPOPCNT, POPCNT},
		{cpu.X86.HasBMI1, BMI1},
		{cpu.X86.HasBMI2, BMI2},
		{cpu.X86.HasAVX, AVX},
		{cpu.X86.HasAVX2, AVX2},
	} {
		if c.has {
			f |= c.feat
		}
	}
	return f
}
