// package x64 provides an x86 and x86-64 instruction encoder in Go
//
// Instructions are selected by mnemonic and operands. Match finds the first definition which fits
// and composes an Inst, which encodes itself for a processor Mode. An Assembler strings
// instructions together, resolves labels and patches jumps when it is finalized.
//
// usage example:
//
//	package example
//
//	import (
//		"github.com/imlyzh/emei/page"
//
//		// Importing everything from the package into the current scope
//		// makes for less noise:
//		. "github.com/imlyzh/emei/x64"
//	)
//
//	func CompileCountdown() (func(n int) int, *page.Page, error) {
//		asm := NewAssembler(Mode64)
//
//		// Note: with the register ABI the argument and the result are in RAX
//
//		asm.Inst(MOV, RCX, RAX)         // RCX := n
//		asm.Inst(XOR, EAX, EAX)         // RAX := 0
//		asm.Label("loop")               //
//		asm.Inst(ADD, RAX, RCX)         // RAX += RCX
//		asm.Inst(DEC, RCX)              // RCX--
//		asm.Jcc(CCNeq, "loop")          // if RCX != 0 goto loop
//		asm.Inst(RET)                   // return
//
//		code, err := asm.Finalize(0)
//		if err != nil {
//			return nil, nil, err
//		}
//		p, err := page.New(code)
//		if err != nil {
//			return nil, nil, err
//		}
//
//		sum := (func(n int) int)(nil) // placeholder value
//
//		// Assign the address of the executable page to the code-pointer
//		// within the placeholder function-value:
//		if err := page.SetFunctionCode(&sum, p); err != nil {
//			p.Close()
//			return nil, nil, err
//		}
//		return sum, p, nil
//	}
package x64
