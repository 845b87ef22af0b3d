package emei

import (
	"errors"
	"fmt"
)

// ErrUnresolvedLabel is matched by every *LinkError.
var ErrUnresolvedLabel = errors.New("Unresolved label")

// LinkError reports a jump whose target label was never bound.
type LinkError struct {
	Label string
}

func (e *LinkError) Error() string { return fmt.Sprintf("Unresolved label %q", e.Label) }

func (e *LinkError) Is(target error) bool { return target == ErrUnresolvedLabel }

type symbol struct {
	value    uint64
	absolute bool
}

// SymbolTable maps label names to offsets within emitted code, or to absolute addresses for
// runtime symbols. Binding a name again overwrites the previous binding.
//
// The zero value is ready to use. A SymbolTable is not safe for concurrent use.
type SymbolTable struct {
	syms map[string]symbol
}

func (t *SymbolTable) set(name string, s symbol) {
	if t.syms == nil {
		t.syms = make(map[string]symbol)
	}
	t.syms[name] = s
}

// Bind name to an offset relative to the start of the emitted code.
func (t *SymbolTable) Bind(name string, offset uint64) { t.set(name, symbol{value: offset}) }

// Bind name to an absolute address outside the emitted code.
func (t *SymbolTable) BindAbsolute(name string, addr uint64) {
	t.set(name, symbol{value: addr, absolute: true})
}

// Get the raw binding for name. abs reports whether the value is an absolute address.
func (t *SymbolTable) Lookup(name string) (value uint64, abs, ok bool) {
	s, ok := t.syms[name]
	return s.value, s.absolute, ok
}

// Resolve name to an address, given the address where the code will be placed. Offsets are
// added to base; absolute symbols are returned unchanged.
func (t *SymbolTable) Resolve(name string, base uint64) (uint64, error) {
	s, ok := t.syms[name]
	if !ok {
		return 0, &LinkError{Label: name}
	}
	if s.absolute {
		return s.value, nil
	}
	return base + s.value, nil
}

// Get the number of bound names.
func (t *SymbolTable) Len() int { return len(t.syms) }

// Remove every binding.
func (t *SymbolTable) Reset() { clear(t.syms) }
