package x64

import "errors"

var (
	ErrNoMatch           = errors.New("No matching instruction-encoding")
	ErrDisplacementRange = errors.New("Displacement exceeds 32 bits")
	ErrSIBIndex          = errors.New("RSP cannot be used as an index register")
	ErrSIBBase           = errors.New("RBP/R13 base with an index requires a displacement")
	ErrScale             = errors.New("Scale must be 1, 2, 4 or 8")
	ErrMode              = errors.New("Unsupported in the current processor mode")
	ErrRex               = errors.New("High-byte register combined with a REX prefix")
	ErrFeature           = errors.New("CPU feature is disabled")
	ErrLabelRange        = errors.New("Label address exceeds placeholder range")
)
