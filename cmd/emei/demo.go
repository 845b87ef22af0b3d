package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/imlyzh/emei"
	"github.com/imlyzh/emei/disasm"
	"github.com/imlyzh/emei/page"
	"github.com/imlyzh/emei/riscv"
	"github.com/imlyzh/emei/x64"
)

const (
	archAMD64   = "amd64"
	archRISCV64 = "riscv64"
)

// demo is a program of type func(int) int, assembled for both architectures.
type demo struct {
	name  string
	arg   int
	want  int
	amd64 func(a *x64.Assembler)
	rv64  func(b *riscv.Buffer)
}

var demos = []demo{
	{
		name: "const",
		want: 42,
		amd64: func(a *x64.Assembler) {
			a.Inst(x64.MOV, x64.EAX, x64.Imm32(42))
			a.Inst(x64.RET)
		},
		rv64: func(b *riscv.Buffer) {
			b.LI(riscv.A0, 42)
			b.Emit(riscv.RET())
		},
	},
	{
		name: "addi",
		arg:  38,
		want: 42,
		amd64: func(a *x64.Assembler) {
			a.Inst(x64.ADD, x64.RAX, x64.Imm8(4))
			a.Inst(x64.RET)
		},
		rv64: func(b *riscv.Buffer) {
			b.Emit(riscv.ADDI(riscv.A0, riscv.A0, 4), riscv.RET())
		},
	},
	{
		// sum of n, n-1, ..., 1
		name: "countdown",
		arg:  7,
		want: 28,
		amd64: func(a *x64.Assembler) {
			a.Inst(x64.XOR, x64.ECX, x64.ECX)
			a.Label("loop")
			a.Inst(x64.ADD, x64.RCX, x64.RAX)
			a.Inst(x64.SUB, x64.RAX, x64.Imm8(1))
			a.Jcc(x64.CCNeq, "loop")
			a.Inst(x64.MOV, x64.RAX, x64.RCX)
			a.Inst(x64.RET)
		},
		rv64: func(b *riscv.Buffer) {
			b.Emit(riscv.ADDI(riscv.A1, riscv.X0, 0))
			b.Label("loop")
			b.Emit(riscv.ADD(riscv.A1, riscv.A1, riscv.A0), riscv.ADDI(riscv.A0, riscv.A0, -1))
			b.BNEZ(riscv.A0, "loop")
			b.Emit(riscv.ADDI(riscv.A0, riscv.A1, 0), riscv.RET())
		},
	},
}

// Assemble d for arch, linked at base.
func (d demo) assemble(arch string, base uint64, logger *slog.Logger) ([]byte, error) {
	switch arch {
	case archAMD64:
		a := x64.NewAssembler(x64.Mode64, emei.WithLogger(logger))
		d.amd64(a)
		return a.Finalize(base)
	case archRISCV64:
		b := riscv.NewBuffer(emei.WithLogger(logger))
		d.rv64(b)
		return b.FinalizeAt(base)
	}
	return nil, fmt.Errorf("Unsupported architecture %q", arch)
}

func listing(arch string, code []byte, base uint64) ([]disasm.Line, error) {
	if arch == archRISCV64 {
		return disasm.RISCV64(code, base)
	}
	return disasm.X86(code, x64.Mode64, base)
}

// Run code in an executable page. The caller checks that arch matches the host; the demos are
// position independent, so the link base does not matter.
func run(code []byte, arg int) (int, error) {
	p, err := page.New(code)
	if err != nil {
		return 0, err
	}
	defer p.Close()
	var fn func(int) int
	if err := page.SetFunctionCode(&fn, p); err != nil {
		return 0, err
	}
	return fn(arg), nil
}

func defaultArch() string {
	if runtime.GOARCH == archRISCV64 {
		return archRISCV64
	}
	return archAMD64
}

func parseBase(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	base, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("Invalid base address %q: %w", s, err)
	}
	return base, nil
}

func runDemos(out io.Writer, logger *slog.Logger, arch string, base uint64, execute bool) error {
	if execute && arch != runtime.GOARCH {
		logger.Warn("not running demos on a different host architecture", "arch", arch, "host", runtime.GOARCH)
		execute = false
	}
	for _, d := range demos {
		code, err := d.assemble(arch, base, logger)
		if err != nil {
			return fmt.Errorf("Assembling %s failed: %w", d.name, err)
		}
		lines, err := listing(arch, code, base)
		if err != nil {
			return fmt.Errorf("Listing %s failed: %w", d.name, err)
		}
		fmt.Fprintf(out, "%s (%s, %d bytes):\n", d.name, arch, len(code))
		if err := disasm.Format(out, lines); err != nil {
			return err
		}
		if execute {
			got, err := run(code, d.arg)
			if err != nil {
				return fmt.Errorf("Running %s failed: %w", d.name, err)
			}
			if got != d.want {
				return fmt.Errorf("%s(%d) returned %d, expected %d", d.name, d.arg, got, d.want)
			}
			fmt.Fprintf(out, "%s(%d) = %d\n", d.name, d.arg, got)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func newDemoCmd() *cobra.Command {
	var (
		arch    string
		baseStr string
		execute bool
	)
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Assemble the demo programs and print their listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := parseBase(baseStr)
			if err != nil {
				return err
			}
			return runDemos(cmd.OutOrStdout(), slog.Default(), arch, base, execute)
		},
	}
	demoCmd.Flags().StringVar(&arch, "arch", defaultArch(), "Target architecture: amd64 or riscv64")
	demoCmd.Flags().StringVar(&baseStr, "base", env.Str("EMEI_BASE"), "Base address the code is linked at")
	demoCmd.Flags().BoolVar(&execute, "run", env.Bool("EMEI_RUN"), "Execute the demos when the host architecture matches")
	return demoCmd
}
