// Package disasm prints listings of emitted machine code.
//
// X86 and RISCV64 decode a byte slice produced by the x64 and riscv packages, and Format writes
// the listing. Func decodes a live x86-64 function-value at runtime:
//
//	asm := x64.NewAssembler(x64.Mode64)
//	asm.Inst(x64.ADD, x64.RAX, x64.RBX)
//	asm.Inst(x64.RET)
//	code, err := asm.Finalize(0)
//	if err != nil {
//		return err
//	}
//	p, err := page.New(code)
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	var sum func(a, b int) int
//	if err := page.SetFunctionCode(&sum, p); err != nil {
//		return err
//	}
//
//	lines, err := disasm.X86(p.Bytes(), x64.Mode64, uint64(p.Addr()))
//	if err != nil {
//		return err
//	}
//	disasm.Format(os.Stdout, lines)
//
//	// RET followed by zeroed padding ends the function:
//	disasm.Func(sum, func(inst x86asm.Inst) bool {
//		fmt.Println(x86asm.IntelSyntax(inst, 0, nil))
//		return true
//	})
//	// Outputs:
//	//
//	// 	add rax, rbx
//	// 	ret
//
// Some instructions supported by the x64 encoder are not supported by the x86asm decoder.
package disasm
