package x64

// ConditionCode is the 4-bit condition field of Jcc, SETcc and CMOVcc. Inverting the low bit
// inverts the condition.
type ConditionCode byte

const (
	CCOverflow    ConditionCode = 0
	CCNoOverflow  ConditionCode = 1
	CCUnsignedLT  ConditionCode = 2
	CCUnsignedGTE ConditionCode = 3
	CCEq          ConditionCode = 4
	CCNeq         ConditionCode = 5
	CCUnsignedLTE ConditionCode = 6
	CCUnsignedGT  ConditionCode = 7
	CCSign        ConditionCode = 8
	CCNoSign      ConditionCode = 9
	CCParity      ConditionCode = 0xA
	CCNoParity    ConditionCode = 0xB
	CCSignedLT    ConditionCode = 0xC
	CCSignedGTE   ConditionCode = 0xD
	CCSignedLTE   ConditionCode = 0xE
	CCSignedGT    ConditionCode = 0xF
)

// Get the conditional-jump mnemonic for a condition code.
func Jcc(cc ConditionCode) Mnemonic { return JO + Mnemonic(cc&0xf) }

// Get the conditional-set mnemonic for a condition code.
func Setcc(cc ConditionCode) Mnemonic { return SETO + Mnemonic(cc&0xf) }

// Get the conditional-move mnemonic for a condition code.
func Cmovcc(cc ConditionCode) Mnemonic { return CMOVO + Mnemonic(cc&0xf) }

// Invert a condition code.
func Invcc(cc ConditionCode) ConditionCode { return (cc ^ 1) & 0xf }

func (cc ConditionCode) String() string { return Jcc(cc).Name()[1:] }
