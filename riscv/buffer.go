package riscv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/imlyzh/emei"
)

// ErrBranchRange is returned by Finalize when a branch or jump cannot reach its label.
var ErrBranchRange = errors.New("Branch target out of range")

type relocKind uint8

const (
	relocBranch relocKind = iota // B-type, +-4 KiB
	relocJump                    // J-type, +-1 MiB
)

type reloc struct {
	loc    uint32 // offset of the instruction word
	label  string
	kind   relocKind
	funct3 uint8
	rs1    Reg // rd for jumps
	rs2    Reg
}

// A Buffer accumulates encoded instructions. Branches and jumps may name labels which are
// bound before or after them; Finalize re-encodes each one with the distance to its label.
//
// The first error which occurs while emitting is retained and returned by Err and Finalize.
// A Buffer is not safe for concurrent use.
type Buffer struct {
	code   []byte
	relocs []reloc
	syms   emei.SymbolTable
	log    *slog.Logger
	err    error
}

// Create an empty buffer.
func NewBuffer(opts ...emei.Option) *Buffer {
	cfg := emei.NewConfig(opts...)
	return &Buffer{log: cfg.Logger}
}

// Clear all code, labels and the error. Options are retained.
func (b *Buffer) Reset() {
	b.code = b.code[:0]
	b.relocs = b.relocs[:0]
	b.syms.Reset()
	b.err = nil
}

// Get the first error which occured while emitting, since the buffer was last reset.
func (b *Buffer) Err() error { return b.err }

// Get the current offset, i.e. the number of bytes emitted so far.
func (b *Buffer) PC() uint32 { return uint32(len(b.code)) }

// Append 32-bit instructions. Nothing is appended once an error has occured.
func (b *Buffer) Emit(insts ...Inst) {
	if b.err != nil {
		return
	}
	for _, i := range insts {
		b.code = i.Append(b.code)
	}
}

// Append compressed instructions.
func (b *Buffer) EmitC(insts ...CInst) {
	if b.err != nil {
		return
	}
	for _, c := range insts {
		b.code = c.Append(b.code)
	}
}

// Append raw bytes.
func (b *Buffer) Raw(data []byte) {
	if b.err == nil {
		b.code = append(b.code, data...)
	}
}

// Load a 64-bit constant into rd.
func (b *Buffer) LI(rd Reg, v int64) { b.Emit(LI(rd, v)...) }

// Pad with NOPs until the offset is a multiple of align, which must be a power of 2 no
// smaller than 2. A single compressed NOP is used when the offset is 2 bytes short of a
// word boundary.
func (b *Buffer) Align(align uint32) {
	if b.err != nil {
		return
	}
	if align < 2 || align&(align-1) != 0 {
		b.err = fmt.Errorf("Invalid alignment %d: must be a power of 2 no smaller than 2", align)
		return
	}
	if b.PC()&1 != 0 {
		b.err = fmt.Errorf("Cannot align odd offset %#x", b.PC())
		return
	}
	for b.PC()&(align-1) != 0 {
		if b.PC()&3 != 0 {
			b.EmitC(C_NOP())
		} else {
			b.Emit(NOP())
		}
	}
}

// Bind name to the current offset. Binding a name again replaces the previous offset.
func (b *Buffer) Label(name string) { b.syms.Bind(name, uint64(b.PC())) }

// Bind name to an absolute address outside the buffer, such as a runtime helper. Distances
// to runtime symbols are computed from the base address passed to FinalizeAt.
func (b *Buffer) RuntimeSymbol(name string, addr uint64) { b.syms.BindAbsolute(name, addr) }

// Get the offset (or absolute address, for runtime symbols) bound to name.
func (b *Buffer) LabelPC(name string) (uint64, bool) {
	v, _, ok := b.syms.Lookup(name)
	return v, ok
}

// Emit a conditional branch to label. funct3 selects the condition (see FunctBEQ and friends).
func (b *Buffer) Branch(funct3 uint8, rs1, rs2 Reg, label string) {
	if b.err != nil {
		return
	}
	switch funct3 {
	case FunctBEQ, FunctBNE, FunctBLT, FunctBGE, FunctBLTU, FunctBGEU:
	default:
		b.err = fmt.Errorf("Invalid branch condition %#03b for label %q", funct3, label)
		return
	}
	b.relocs = append(b.relocs, reloc{loc: b.PC(), label: label, kind: relocBranch, funct3: funct3, rs1: rs1, rs2: rs2})
	b.Emit(B(OpBranch, funct3, rs1, rs2, 0))
}

func (b *Buffer) BEQ(rs1, rs2 Reg, label string)  { b.Branch(FunctBEQ, rs1, rs2, label) }
func (b *Buffer) BNE(rs1, rs2 Reg, label string)  { b.Branch(FunctBNE, rs1, rs2, label) }
func (b *Buffer) BLT(rs1, rs2 Reg, label string)  { b.Branch(FunctBLT, rs1, rs2, label) }
func (b *Buffer) BGE(rs1, rs2 Reg, label string)  { b.Branch(FunctBGE, rs1, rs2, label) }
func (b *Buffer) BLTU(rs1, rs2 Reg, label string) { b.Branch(FunctBLTU, rs1, rs2, label) }
func (b *Buffer) BGEU(rs1, rs2 Reg, label string) { b.Branch(FunctBGEU, rs1, rs2, label) }
func (b *Buffer) BEQZ(rs Reg, label string)       { b.Branch(FunctBEQ, rs, X0, label) }
func (b *Buffer) BNEZ(rs Reg, label string)       { b.Branch(FunctBNE, rs, X0, label) }

// Emit a jump-and-link to label, writing the return address to rd.
func (b *Buffer) JAL(rd Reg, label string) {
	if b.err != nil {
		return
	}
	b.relocs = append(b.relocs, reloc{loc: b.PC(), label: label, kind: relocJump, rs1: rd})
	b.Emit(J(OpJAL, rd, 0))
}

// Emit an unconditional jump to label.
func (b *Buffer) J(label string) { b.JAL(X0, label) }

// Emit a call to label, linking through ra.
func (b *Buffer) Call(label string) { b.JAL(RA, label) }

// Resolve every branch and return the finished code, as if it were placed at address 0.
func (b *Buffer) Finalize() ([]byte, error) { return b.FinalizeAt(0) }

// Resolve every branch and return the finished code, as if it were placed at base. The
// buffer is not modified, so FinalizeAt may be called again after binding more labels.
func (b *Buffer) FinalizeAt(base uint64) ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make([]byte, len(b.code))
	copy(out, b.code)

	for _, r := range b.relocs {
		target, err := b.syms.Resolve(r.label, base)
		if err != nil {
			b.log.Warn("riscv: unresolved label", "label", r.label, "pc", r.loc)
			return nil, err
		}
		disp := int64(target - (base + uint64(r.loc)))

		var inst Inst
		switch r.kind {
		case relocBranch:
			if disp&1 != 0 || disp < -1<<12 || disp >= 1<<12 {
				return nil, fmt.Errorf("%w: branch at %#x to %q spans %d bytes", ErrBranchRange, r.loc, r.label, disp)
			}
			inst = B(OpBranch, r.funct3, r.rs1, r.rs2, int32(disp))
		case relocJump:
			if disp&1 != 0 || disp < -1<<20 || disp >= 1<<20 {
				return nil, fmt.Errorf("%w: jump at %#x to %q spans %d bytes", ErrBranchRange, r.loc, r.label, disp)
			}
			inst = J(OpJAL, r.rs1, int32(disp))
		}
		binary.LittleEndian.PutUint32(out[r.loc:], uint32(inst))
	}

	b.log.Debug("riscv: finalized", "bytes", len(out), "relocs", len(b.relocs), "labels", b.syms.Len(), "base", base)
	return out, nil
}
