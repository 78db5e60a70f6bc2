// Command swvm is the toolchain entry point: assemble, run, and
// disassemble programs for the 16-bit virtual machine implemented in
// internal/vm, internal/source and internal/object.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/simpleworld/swvm/internal/config"
)

var (
	verbose bool
	cfg     *config.Config
)

func main() {
	root := &cobra.Command{
		Use:           "swvm",
		Short:         "Assemble, run and disassemble programs for the swvm virtual machine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newAssembleCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newDisasmCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "swvm:", err)
		os.Exit(1)
	}
}
