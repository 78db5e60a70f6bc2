package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/source"
	"github.com/simpleworld/swvm/internal/stdlib"
	"github.com/simpleworld/swvm/internal/vm"
)

func loadStdlibManifest(dir string) *stdlib.Manifest {
	manifest, err := stdlib.Load(dir)
	if err != nil {
		slog.Debug("stdlib manifest not loaded", "dir", dir, "err", err)
		return nil
	}
	return manifest
}

func newAssembleCmd() *cobra.Command {
	var (
		output       string
		includePaths []string
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "assemble <source.swa>",
		Short: "Assemble a source file into a big-endian object image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			out := output
			if out == "" {
				out = swapExt(src, ".swo")
			}
			paths := includePaths
			if len(paths) == 0 {
				paths = cfg.Assembler.IncludePaths
			}

			assembleOnce := func() error {
				reg := isa.New()
				if err := vm.RegisterDefaults(reg); err != nil {
					return err
				}
				s := source.NewSource(reg, paths).WithStdlib(loadStdlibManifest(cfg.Assembler.StdlibDir))
				if err := s.Load(src); err != nil {
					return err
				}
				if err := s.Preprocess(); err != nil {
					return err
				}
				if err := s.Compile(out); err != nil {
					return err
				}
				slog.Debug("assembled", "src", src, "out", out, "included", s.IncludedPaths())
				fmt.Printf("assembled %s -> %s\n", src, out)
				return nil
			}

			if !watch {
				return assembleOnce()
			}
			return watchAndAssemble(src, paths, assembleOnce)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output object file (default: <source> with .swo extension)")
	cmd.Flags().StringArrayVar(&includePaths, "include-path", nil, "directory to search for .include targets (repeatable)")
	cmd.Flags().BoolVar(&watch, "watch", false, "rebuild whenever the source or any included file changes")
	return cmd
}

func swapExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}

// watchAndAssemble runs build once, then re-runs it on every change to any
// watched file. After each build, successful or not, it preprocesses the
// source again and adds a watch for every file that pass included, since a
// program's .include set can change between builds; watches are never
// removed.
func watchAndAssemble(src string, paths []string, build func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	watched := map[string]bool{}
	rewatch := func() error {
		reg := isa.New()
		if err := vm.RegisterDefaults(reg); err != nil {
			return err
		}
		s := source.NewSource(reg, paths).WithStdlib(loadStdlibManifest(cfg.Assembler.StdlibDir))
		if err := s.Load(src); err != nil {
			return err
		}
		_ = s.Preprocess() // best-effort: even a broken build still watches its includes so far
		for _, p := range s.IncludedPaths() {
			if watched[p] {
				continue
			}
			if err := w.Add(p); err != nil {
				slog.Debug("watch: could not add", "path", p, "err", err)
				continue
			}
			watched[p] = true
		}
		return nil
	}

	if err := build(); err != nil {
		fmt.Fprintln(os.Stderr, "swvm:", err)
	}
	if err := rewatch(); err != nil {
		return err
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := build(); err != nil {
				fmt.Fprintln(os.Stderr, "swvm:", err)
			}
			if err := rewatch(); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Debug("watch error", "err", err)
		}
	}
}
