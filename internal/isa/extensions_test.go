package isa_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
)

func noop(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return isa.UpdatePC, nil
}

func TestLoadExtensionsRegistersRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ext.yaml")
	doc := "instructions:\n" +
		"  - code: 0xf0\n" +
		"    name: nop2\n" +
		"    nregs: 0\n" +
		"    has_immediate: false\n" +
		"registers:\n" +
		"  - code: 0\n" +
		"    name: zero\n" +
		"interrupts:\n" +
		"  - code: 0xe0\n" +
		"    name: custom\n" +
		"    thrown_by_inst: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	r := isa.New()
	require.NoError(t, isa.LoadExtensions(r, path, map[string]isa.OpFunc{"nop2": noop}))

	info, err := r.InstructionInfo(0xf0)
	require.NoError(t, err)
	require.Equal(t, "nop2", info.Name)

	name, err := r.RegisterName(0)
	require.NoError(t, err)
	require.Equal(t, "zero", name)

	ii, err := r.InterruptInfo(0xe0)
	require.NoError(t, err)
	require.True(t, ii.ThrownByInst)
}

func TestLoadExtensionsMissingFuncFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ext.yaml")
	doc := "instructions:\n  - code: 0xf0\n    name: mystery\n    nregs: 0\n    has_immediate: false\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	r := isa.New()
	err := isa.LoadExtensions(r, path, map[string]isa.OpFunc{})
	require.Error(t, err)
	var eerr *isa.ExtensionError
	require.ErrorAs(t, err, &eerr)
}
