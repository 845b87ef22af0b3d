package disasm

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"unsafe"

	"golang.org/x/arch/riscv64/riscv64asm"
	"golang.org/x/arch/x86/x86asm"

	"github.com/imlyzh/emei/x64"
)

// Line is one decoded instruction of a listing.
type Line struct {
	Offset uint64 // address of the instruction, base included
	Bytes  []byte
	Text   string
}

func (l Line) String() string {
	return fmt.Sprintf("%08x  %-30s %s", l.Offset, fmt.Sprintf("% x", l.Bytes), l.Text)
}

// Decode code as x86 instructions for mode, printing Intel syntax. Relative targets are shown
// as absolute addresses when base is non-zero.
//
// Lines decoded before an error are returned along with the error.
func X86(code []byte, mode x64.Mode, base uint64) ([]Line, error) {
	bits := 64
	if mode == x64.Mode32 {
		bits = 32
	}
	var lines []Line
	for off := 0; off < len(code); {
		inst, err := x86asm.Decode(code[off:], bits)
		if err != nil {
			return lines, fmt.Errorf("Decoding x86 at offset %#x failed: %w", off, err)
		}
		pc := base + uint64(off)
		lines = append(lines, Line{
			Offset: pc,
			Bytes:  code[off : off+inst.Len],
			Text:   x86asm.IntelSyntax(inst, pc, nil),
		})
		off += inst.Len
	}
	return lines, nil
}

// Decode code as RISC-V RV64GC instructions, printing GNU syntax. Compressed instructions take
// 2 bytes.
//
// Lines decoded before an error are returned along with the error.
func RISCV64(code []byte, base uint64) ([]Line, error) {
	var lines []Line
	for off := 0; off < len(code); {
		inst, err := riscv64asm.Decode(code[off:])
		if err != nil {
			return lines, fmt.Errorf("Decoding riscv64 at offset %#x failed: %w", off, err)
		}
		lines = append(lines, Line{
			Offset: base + uint64(off),
			Bytes:  code[off : off+inst.Len],
			Text:   riscv64asm.GNUSyntax(inst),
		})
		off += inst.Len
	}
	return lines, nil
}

// Write one line per instruction to w.
func Format(w io.Writer, lines []Line) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l.String()); err != nil {
			return err
		}
	}
	return nil
}

// Disassemble x86-64 instructions from funcValue until while returns false. A maximum of 4096
// bytes may be decoded. This function is entirely unsafe.
//
// funcValue must be a non-nil Go function-value, typically one pointed at a page.Page with
// page.SetFunctionCode.
func Func(funcValue any, while func(x86asm.Inst) bool) error {
	// See "Go 1.1 Function Calls":
	// https://docs.google.com/document/d/1bMwCey-gmqZVTpRax-ESeVuZGmjwbocYs1iHplK-cjo/pub
	type interfaceHeader struct {
		typ  uintptr
		addr **[]byte
	}
	v := reflect.ValueOf(funcValue)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("Argument for Func must be a non-nil function-value")
	}
	header := *(*interfaceHeader)(unsafe.Pointer(&funcValue))
	code := (*[4096]byte)(unsafe.Pointer(*header.addr))
	n := 0
	for n < 4096 {
		end := n + 15
		if end > len(code) {
			end = len(code)
		}
		inst, err := x86asm.Decode(code[n:end], 64)
		if err != nil {
			return err
		}
		if !while(inst) {
			return nil
		}
		if code[n] == 0xc3 { // find RET + padding (end of function)
			next := n + 1
			if next&15 == 0 || next == len(code) {
				return nil
			}
			pad := 16 - (next & 15) // functions are typically aligned to a 16-byte boundary
			if bytes.Equal(code[next:next+pad], pad00[:pad]) || bytes.Equal(code[next:next+pad], padcc[:pad]) {
				return nil
			}
		}
		n += inst.Len
	}
	return nil
}

// Manually allocated memory is typically zeroed
var pad00 = [...]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// The Go compiler seems to pad functions with 0xCC bytes to a 16-byte alignment boundary
var padcc = [...]byte{0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0xcc}
