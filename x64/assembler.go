package x64

import (
	"fmt"
	"log/slog"

	"github.com/imlyzh/emei"
	"github.com/imlyzh/emei/feats"
	. "github.com/imlyzh/emei/internal/flags"
)

// An assembler encodes instructions into a byte slice. Jumps and label-address loads may name labels
// which are bound before or after them; Finalize patches each one once every label is known.
//
// The first error which occurs while encoding is retained: later calls are ignored, and Err and
// Finalize return it. When re-using an assembler after encoding a set of instructions, the Reset
// method must be called beforehand. An assembler is not safe for concurrent use.
type Assembler struct {
	b      buffer
	relocs []reloc
	syms   emei.SymbolTable
	mode   Mode
	feats  feats.Feature
	log    *slog.Logger
	err    error
}

type relocKind uint8

const (
	relocAbs relocKind = iota // absolute address of the label
	relocRel                  // label - end of the jump
)

type reloc struct {
	loc   uint32 // offset of the placeholder
	end   uint32 // offset of the end of the jump
	label string
	width emei.Width
	kind  relocKind
}

// Create a new Assembler for mode.
//
// All CPU features will be enabled by default, for instruction-matching.
func NewAssembler(mode Mode, opts ...emei.Option) *Assembler {
	cfg := emei.NewConfig(opts...)
	return &Assembler{mode: mode, feats: feats.AllFeatures, log: cfg.Logger}
}

// Get the processor mode instructions are encoded for.
func (a *Assembler) Mode() Mode { return a.mode }

// Get the current, allowable CPU feature-set for instruction-matching.
//
// See package feats for all available CPU features.
func (a *Assembler) Features() feats.Feature { return a.feats }

// Restrict the allowable CPU feature-set for instruction-matching. This will not affect
// instructions which have already been encoded.
func (a *Assembler) SetFeatures(enabledFeatures feats.Feature) { a.feats = enabledFeatures }

// Control the allowable CPU feature-set for instruction-matching. This will not affect
// instructions which have already been encoded.
func (a *Assembler) DisableFeature(feature feats.Feature) { a.feats &^= feature }

// Control the allowable CPU feature-set for instruction-matching. This will not affect
// instructions which have already been encoded.
func (a *Assembler) EnableFeature(feature feats.Feature) { a.feats |= feature }

// Reset an assembler before encoding a new set of instructions. All existing labels and label
// references will be cleared, the error will be cleared if one exists, and the PC will be reset to 0.
// The mode and the current set of enabled CPU features will be retained.
func (a *Assembler) Reset() {
	a.b.Reset()
	a.relocs = a.relocs[:0]
	a.syms.Reset()
	a.err = nil
}

// Get the first error which occured while encoding instructions, since the assembler was last reset
// (or initialized, if the assembler has not been reset).
func (a *Assembler) Err() error { return a.err }

// Get the current encoded instructions, with label references not yet patched. This method may be
// called multiple times and does not affect the underlying code buffer.
func (a *Assembler) Code() []byte { return a.b.Get() }

// Get the current program counter (i.e. number of bytes written to the encoding buffer).
func (a *Assembler) PC() uint32 { return uint32(a.b.Len()) }

// Encode m with args to the encoding buffer. If no matching instruction-encoding is found,
// an error wrapping ErrNoMatch (or ErrMode or ErrFeature) will be returned.
func (a *Assembler) Inst(m Mnemonic, args ...Arg) error {
	if a.err != nil {
		return a.err
	}
	inst, _, err := Match(a.mode, a.feats, m, args...)
	if err != nil {
		a.err = err
		return a.err
	}
	return a.Emit(inst)
}

// Encode m with args to the encoding buffer, prefixed with LOCK. The instruction must allow a LOCK
// prefix and have a memory destination.
func (a *Assembler) Lock(m Mnemonic, args ...Arg) error {
	if a.err != nil {
		return a.err
	}
	inst, def, err := Match(a.mode, a.feats, m, args...)
	if err != nil {
		a.err = err
		return a.err
	}
	if _, mem := inst.RM.(Mem); def.Flags&LOCK == 0 || !mem {
		a.err = fmt.Errorf("LOCK prefix is not valid for %s %s", m, formatArgs(args))
		return a.err
	}
	inst.Lock = true
	return a.Emit(inst)
}

func (a *Assembler) withPrefix(prefix byte, m Mnemonic, args ...Arg) error {
	if a.err != nil {
		return a.err
	}
	inst, _, err := Match(a.mode, a.feats, m, args...)
	if err != nil {
		a.err = err
		return a.err
	}
	if inst.Prefix != 0 {
		a.err = fmt.Errorf("%s %s already has a mandatory prefix", m, formatArgs(args))
		return a.err
	}
	inst.Prefix = prefix
	return a.Emit(inst)
}

// Encode m with args to the encoding buffer, prefixed with REP. Forms with a mandatory prefix,
// such as the SSE scalar moves, are rejected.
func (a *Assembler) Rep(m Mnemonic, args ...Arg) error {
	return a.withPrefix(repPrefix, m, args...)
}

// Encode m with args to the encoding buffer, prefixed with REPE.
func (a *Assembler) Repe(m Mnemonic, args ...Arg) error { return a.Rep(m, args...) }

// Encode m with args to the encoding buffer, prefixed with REPZ.
func (a *Assembler) Repz(m Mnemonic, args ...Arg) error { return a.Rep(m, args...) }

// Encode m with args to the encoding buffer, prefixed with REPNE.
func (a *Assembler) Repne(m Mnemonic, args ...Arg) error {
	return a.withPrefix(repnePrefix, m, args...)
}

// Encode m with args to the encoding buffer, prefixed with REPNZ.
func (a *Assembler) Repnz(m Mnemonic, args ...Arg) error { return a.Repne(m, args...) }

// Encode a composed instruction to the encoding buffer.
func (a *Assembler) Emit(inst Inst) error {
	if a.err != nil {
		return a.err
	}
	a.err = a.b.Inst(&inst, a.mode)
	return a.err
}

// Write raw data to the encoding buffer.
func (a *Assembler) Raw(data []byte) {
	if a.err == nil {
		a.b.Bytes(data)
	}
}

// Write a little-endian value of width w to the encoding buffer.
func (a *Assembler) Data(w emei.Width, v uint64) {
	if a.err == nil {
		a.b.Imm(w, v)
	}
}

// Encode length bytes of NOP instructions to the encoding buffer.
func (a *Assembler) Nop(length int) {
	if a.err == nil {
		a.b.Nop(length)
	}
}

// Align the program counter to a power-of-2 offset. Intermediate space will be filled with NOPs.
func (a *Assembler) Align(pow2 uint32) {
	if a.err != nil {
		return
	}
	if pow2 == 0 || pow2&(pow2-1) != 0 {
		a.err = fmt.Errorf("Invalid alignment %d: must be a power of 2", pow2)
		return
	}
	a.b.Nop(int(-a.PC() & (pow2 - 1)))
}

// Bind name to the current PC. Binding a name again replaces the previous PC.
func (a *Assembler) Label(name string) { a.syms.Bind(name, uint64(a.PC())) }

// Bind name to an absolute address outside the code, such as a runtime helper.
func (a *Assembler) RuntimeSymbol(name string, addr uint64) { a.syms.BindAbsolute(name, addr) }

// Get the PC (or absolute address, for runtime symbols) bound to name.
func (a *Assembler) LabelPC(name string) (uint64, bool) {
	v, _, ok := a.syms.Lookup(name)
	return v, ok
}

func (a *Assembler) jump(tmpl []byte, w emei.Width, label string, kind relocKind) {
	if a.err != nil {
		return
	}
	if _, err := emei.WidthOf(int(w)); err != nil {
		a.err = fmt.Errorf("Invalid placeholder for label %q: %w", label, err)
		return
	}
	if len(tmpl) < int(w) {
		a.err = fmt.Errorf("Jump template of %d bytes cannot hold a %d-byte placeholder", len(tmpl), w)
		return
	}
	a.b.Bytes(tmpl)
	end := a.PC()
	a.relocs = append(a.relocs, reloc{loc: end - uint32(w), end: end, label: label, width: w, kind: kind})
}

// Write an instruction template whose last w bytes receive the absolute address of label.
func (a *Assembler) Jump(tmpl []byte, w emei.Width, label string) { a.jump(tmpl, w, label, relocAbs) }

// Write an instruction template whose last w bytes receive the distance from the end of the
// template to label.
func (a *Assembler) JumpRel(tmpl []byte, w emei.Width, label string) { a.jump(tmpl, w, label, relocRel) }

// Encode a relative branch to label, with a placeholder displacement.
func (a *Assembler) branch(m Mnemonic, rel RelArg, label string) {
	if a.err != nil {
		return
	}
	inst, _, err := Match(a.mode, a.feats, m, rel)
	if err != nil {
		a.err = err
		return
	}
	w, err := emei.WidthOf(int(rel.width()))
	if err != nil {
		a.err = err
		return
	}
	var code []byte
	if code, a.err = inst.Encode(a.mode); a.err != nil {
		return
	}
	a.JumpRel(code, w, label)
}

// Encode a 32-bit relative JMP to label.
func (a *Assembler) Jmp(label string) { a.branch(JMP, Rel32(0), label) }

// Encode a 32-bit relative conditional jump to label.
func (a *Assembler) Jcc(cc ConditionCode, label string) { a.branch(Jcc(cc), Rel32(0), label) }

// Encode an 8-bit relative JMP to label. Finalize fails if label is more than 127 bytes away.
func (a *Assembler) JmpShort(label string) { a.branch(JMP, Rel8(0), label) }

// Encode an 8-bit relative conditional jump to label. Finalize fails if label is more than 127
// bytes away.
func (a *Assembler) JccShort(cc ConditionCode, label string) { a.branch(Jcc(cc), Rel8(0), label) }

// Encode a 32-bit relative CALL to label.
func (a *Assembler) Call(label string) { a.branch(CALL, Rel32(0), label) }

// Load the RIP-relative address of label into r. Not available in Mode32.
func (a *Assembler) LeaLabel(r Reg, label string) {
	if a.err != nil {
		return
	}
	inst, _, err := Match(a.mode, a.feats, LEA, r, Mem{Base: RIP, DispSize: 4})
	if err != nil {
		a.err = err
		return
	}
	var code []byte
	if code, a.err = inst.Encode(a.mode); a.err != nil {
		return
	}
	a.JumpRel(code, emei.Bit32, label)
}

// Load the absolute address of label into r, with a MOV of a pointer-sized immediate.
func (a *Assembler) MovLabel(r Reg, label string) {
	if a.err != nil {
		return
	}
	var imm ImmArg = Imm64(0)
	if a.mode == Mode32 {
		imm = Imm32(0)
	}
	inst, _, err := Match(a.mode, a.feats, MOV, r, imm)
	if err != nil {
		a.err = err
		return
	}
	var code []byte
	if code, a.err = inst.Encode(a.mode); a.err != nil {
		return
	}
	a.Jump(code, inst.Imm.Width, label)
}

// Patch every label reference and return the finished code, as if it were placed at base. The
// assembler is not modified, so Finalize may be called again after binding more labels.
//
// Absolute references receive base plus the label's PC, or the address of a runtime symbol, and
// fail with ErrLabelRange if the placeholder is too narrow. Relative references receive the signed
// distance from the end of the jump to the label.
func (a *Assembler) Finalize(base uint64) ([]byte, error) {
	if a.err != nil {
		return nil, a.err
	}
	out := make([]byte, a.b.Len())
	copy(out, a.b.Get())

	for _, r := range a.relocs {
		target, err := a.syms.Resolve(r.label, base)
		if err != nil {
			a.log.Warn("x64: unresolved label", "label", r.label, "pc", r.loc)
			return nil, err
		}
		var v uint64
		switch r.kind {
		case relocAbs:
			if !r.width.FitsUnsigned(target) {
				return nil, fmt.Errorf("%w: %q at %#x does not fit %d bytes", ErrLabelRange, r.label, target, r.width)
			}
			v = target
		case relocRel:
			disp := int64(target - (base + uint64(r.end)))
			if !r.width.FitsSigned(disp) {
				return nil, fmt.Errorf("%w: jump at %#x to %q spans %d bytes", ErrLabelRange, r.loc, r.label, disp)
			}
			v = uint64(disp)
		}
		emei.PutImm(out[r.loc:], r.width, v)
	}

	a.log.Debug("x64: finalized", "mode", a.mode, "bytes", len(out), "relocs", len(a.relocs), "labels", a.syms.Len(), "base", base)
	return out, nil
}
