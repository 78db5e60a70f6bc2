package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/object"
	"github.com/simpleworld/swvm/internal/vm"
)

func newDisasmCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "disasm <image.swo>",
		Short: "Disassemble an object image into a readable instruction listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := isa.New()
			if err := vm.RegisterDefaults(reg); err != nil {
				return err
			}

			o := object.New(reg)
			if err := o.Load(args[0]); err != nil {
				return err
			}

			if output != "" {
				return o.Save(output)
			}
			return printListing(o.Lines())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the listing to this file instead of stdout")
	return cmd
}

// printListing writes one instruction per line to stdout, dimming raw
// undecoded-word fallbacks when stdout is a terminal.
func printListing(lines []string) error {
	color := cfg.Display.Color && term.IsTerminal(int(os.Stdout.Fd()))

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for i, l := range lines {
		raw := strings.HasPrefix(l, "0x")
		if color && raw {
			fmt.Fprintf(w, "%04d: \x1b[2m%s\x1b[0m\n", i, l)
			continue
		}
		fmt.Fprintf(w, "%04d: %s\n", i, l)
	}
	return nil
}
