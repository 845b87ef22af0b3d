// Package x64flags holds the encoding flags of the x64 instruction definitions.
package x64flags

import "strings"

// Flags
const (
	DEFAULT uint32 = 0 // this instruction has default encoding

	// note: the first 3 in this block are mutually exclusive
	AUTO_SIZE uint32 = 1 << iota // 16 bit -> OPSIZE , 32-bit -> None     , 64-bit -> REX.W
	AUTO_NO32                    // 16 bit -> OPSIZE , 32-bit -> None(x86), 64-bit -> None(x64)
	AUTO_REXW                    // 16 bit -> illegal, 32-bit -> None     , 64-bit -> REX.W
	WORD_SIZE                    // implies opsize prefix
	WITH_REXW                    // implies REX.W

	PREF_66 // mandatory prefix
	PREF_F2 // mandatory prefix (REPNE)
	PREF_F3 // mandatory prefix (REP)

	LOCK // user lock prefix is valid with this instruction

	SHORT_ARG // a register argument is encoded in the last byte of the opcode
	ENC_MR    // the first operand goes in ModRM.rm and the second in ModRM.reg
	X86_ONLY  // instructions available in protected mode, but not long mode
	X64_ONLY  // instructions available in long mode, but not protected mode
)

var flagNames = [...]struct {
	f    uint32
	name string
}{
	{AUTO_SIZE, "AUTO_SIZE"},
	{AUTO_NO32, "AUTO_NO32"},
	{AUTO_REXW, "AUTO_REXW"},
	{WORD_SIZE, "WORD_SIZE"},
	{WITH_REXW, "WITH_REXW"},
	{PREF_66, "PREF_66"},
	{PREF_F2, "PREF_F2"},
	{PREF_F3, "PREF_F3"},
	{LOCK, "LOCK"},
	{SHORT_ARG, "SHORT_ARG"},
	{ENC_MR, "ENC_MR"},
	{X86_ONLY, "X86_ONLY"},
	{X64_ONLY, "X64_ONLY"},
}

// Get the name of a single flag.
func FlagName(f uint32) string {
	if f == DEFAULT {
		return "DEFAULT"
	}
	for _, n := range flagNames {
		if n.f == f {
			return n.name
		}
	}
	return ""
}

// Format a set of flags as names joined with "|".
func String(f uint32) string {
	if f == DEFAULT {
		return "DEFAULT"
	}
	var names []string
	for _, n := range flagNames {
		if f&n.f != 0 {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}
