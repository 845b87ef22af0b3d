// Command emei assembles demo programs for x86-64 and RISC-V, prints listings and looks up
// x86 instruction definitions.
//
// Environment:
//
//	EMEI_LOG_LEVEL  debug, info, warn or error (default info)
//	EMEI_BASE       base address for listings, e.g. 0x10000
//	EMEI_RUN        run demos on a matching host when set to a true value
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	rootCmd := &cobra.Command{
		Use:          "emei",
		Short:        "Runtime machine-code assembler for x86-64 and RISC-V",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd, logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", env.Str("EMEI_LOG_LEVEL", "info"), "Log level: debug, info, warn or error")

	rootCmd.AddCommand(newDemoCmd(), newLookupCmd())
	return rootCmd
}

func newLogger(cmd *cobra.Command, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("Invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})), nil
}
