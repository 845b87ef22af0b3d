package x64

// Mode selects the processor mode instructions are encoded for.
//
// In Mode32 there is no REX prefix: 64-bit operand sizes, registers numbered 8 and above,
// SPL/BPL/SIL/DIL and RIP-relative addressing are rejected with ErrMode, an absolute address
// is encoded with ModRM alone, and the one-byte INC/DEC forms 0x40-0x4f are available.
type Mode uint8

const (
	Mode64 Mode = iota
	Mode32
)

// Get the default operand and address size of the mode in bytes.
func (m Mode) AddrSize() uint8 {
	if m == Mode32 {
		return 4
	}
	return 8
}

func (m Mode) String() string {
	if m == Mode32 {
		return "x86"
	}
	return "x64"
}
