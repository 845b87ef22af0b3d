package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imlyzh/emei/feats"
	x64lookup "github.com/imlyzh/emei/lookup"
)

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup MNEMONIC...",
		Short: "Print the x86 encoding definitions for mnemonics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			host := feats.Host()
			for _, name := range args {
				m, ok := x64lookup.Mnemonic(name)
				if !ok {
					return fmt.Errorf("Unknown mnemonic %q", name)
				}
				fmt.Fprintf(out, "%s:\n", m)
				for _, def := range x64lookup.Defs(name) {
					if def.Feats&^host != 0 {
						fmt.Fprintf(out, "  %s (not supported by this CPU)\n", def)
						continue
					}
					fmt.Fprintf(out, "  %s\n", def)
				}
			}
			return nil
		},
	}
}
