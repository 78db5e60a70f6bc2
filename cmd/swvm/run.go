package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/simpleworld/swvm/internal/vm"
)

func newRunCmd() *cobra.Command {
	var (
		maxCycles  uint64
		entry      uint32
		memorySize int
	)

	cmd := &cobra.Command{
		Use:   "run <image.swo>",
		Short: "Load an object image into main memory and execute it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxCycles == 0 {
				maxCycles = cfg.Execution.MaxCycles
			}
			if memorySize == 0 {
				memorySize = cfg.Execution.MemorySize
			}

			data, err := os.ReadFile(args[0]) // #nosec G304 -- path supplied on the command line
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			if len(data)%4 != 0 {
				return fmt.Errorf("run: image length %d is not a multiple of 4", len(data))
			}

			c, err := vm.New(memorySize)
			if err != nil {
				return err
			}
			for off := 0; off < len(data); off += 4 {
				w := uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3])
				if err := c.SetMemWord(uint32(off), w); err != nil {
					return fmt.Errorf("load image at 0x%04x: %w", off, err)
				}
			}
			c.SetReg(vm.RegPC, entry)
			c.SetReg(vm.RegSP, cfg.Execution.StackBase)
			c.SetReg(vm.RegFP, cfg.Execution.StackBase)

			left, err := c.ExecuteN(int(maxCycles))
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			if left == 0 && c.Running() {
				slog.Warn("max cycles exhausted without halting", "max_cycles", maxCycles)
			}
			if fault := c.UnrecoverableFault(); fault != nil {
				return fmt.Errorf("run: unrecoverable fault: %w", fault)
			}

			fmt.Printf("halted after %d cycle(s)\n", int(maxCycles)-left)
			for r := byte(0); r < vm.NumRegisters; r++ {
				name, _ := c.ISA().RegisterName(r)
				fmt.Printf("  %-4s = 0x%08x\n", name, c.Reg(r))
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "cycle budget before forcing a stop (default: config execution.max_cycles)")
	cmd.Flags().Uint32Var(&entry, "entry", 0, "initial program counter")
	cmd.Flags().IntVar(&memorySize, "memory-size", 0, "main memory size in bytes (default: config execution.memory_size)")
	return cmd
}
