// Package emei is a machine-code assembler library for RV64 RISC-V and x86-64.
//
// The root package holds the pieces shared by both instruction sets: the
// immediate encoder, the symbol table used by the deferred-label buffers,
// and construction options. The encoders live in the x64 and riscv packages,
// and package page places finished code into executable memory.
//
// usage example:
//
//	a := x64.NewAssembler(x64.Mode64)
//	a.Inst(x64.MOV, x64.EAX, x64.Imm32(42))
//	a.Inst(x64.RET)
//	code, err := a.Finalize(0)
//	if err != nil {
//		return err
//	}
//
//	p, err := page.New(code)
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	answer := (func() int)(nil)
//	if err := page.SetFunctionCode(&answer, p); err != nil {
//		return err
//	}
//	fmt.Println(answer()) // 42
package emei
