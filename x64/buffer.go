package x64

import "github.com/imlyzh/emei"

type buffer struct {
	b []byte
}

func (b *buffer) Len() int    { return len(b.b) }
func (b *buffer) Get() []byte { return b.b }
func (b *buffer) Reset()      { b.b = b.b[:0] }

func (b *buffer) Byte(v byte)    { b.b = append(b.b, v) }
func (b *buffer) Bytes(v []byte) { b.b = append(b.b, v...) }

func (b *buffer) Imm(w emei.Width, v uint64) { b.b = emei.AppendImm(b.b, w, v) }

// Encode an instruction. Nothing is written if encoding fails.
func (b *buffer) Inst(inst *Inst, mode Mode) error {
	out, err := inst.AppendTo(b.b, mode)
	if err != nil {
		return err
	}
	b.b = out
	return nil
}

func (b *buffer) Nop(length int) {
	maxNop := len(nops)
	for length > 0 {
		if length > maxNop {
			b.Bytes(nops[maxNop-1][:maxNop])
			length -= maxNop
		} else {
			b.Bytes(nops[length-1][:length])
			break
		}
	}
}

// Recommended multi-byte NOP sequences, indexed by length-1.
var nops = [...][9]byte{
	{0x90},
	{0x66, 0x90},
	{0x0f, 0x1f, 0x00},
	{0x0f, 0x1f, 0x40, 0x00},
	{0x0f, 0x1f, 0x44, 0x00, 0x00},
	{0x66, 0x0f, 0x1f, 0x44, 0x00, 0x00},
	{0x0f, 0x1f, 0x80, 0x00, 0x00, 0x00, 0x00},
	{0x0f, 0x1f, 0x84, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0x66, 0x0f, 0x1f, 0x84, 0x00, 0x00, 0x00, 0x00, 0x00},
}
