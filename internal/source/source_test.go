package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/source"
	"github.com/simpleworld/swvm/internal/vm"
)

func newISA(t *testing.T) *isa.ISA {
	t.Helper()
	reg := isa.New()
	require.NoError(t, vm.RegisterDefaults(reg))
	return reg
}

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestPreprocessBlockExpandsToZeroWords(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "main.swa", ".block 0x0008\nstop\n")

	s := source.NewSource(newISA(t), []string{dir})
	require.NoError(t, s.Load(path))
	require.NoError(t, s.Preprocess())

	lines := s.Lines()
	require.Equal(t, []string{"0x00000000", "0x00000000", "stop"}, lines)
}

func TestPreprocessDefineSubstitutesInInstruction(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "main.swa", ".define ANSWER 0x002a\nloadi r0, ANSWER\n")

	s := source.NewSource(newISA(t), []string{dir})
	require.NoError(t, s.Load(path))
	require.NoError(t, s.Preprocess())

	require.Equal(t, []string{"loadi r0, 0x002a"}, s.Lines())
}

func TestPreprocessInclude(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "helper.swa", "stop\n")
	path := writeTempFile(t, dir, "main.swa", ".include \"helper.swa\"\nret\n")

	s := source.NewSource(newISA(t), []string{dir})
	require.NoError(t, s.Load(path))
	require.NoError(t, s.Preprocess())

	require.Equal(t, []string{"stop", "ret"}, s.Lines())
}

func TestPreprocessRejectsCircularInclude(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.swa", ".include \"main.swa\"\n")
	path := writeTempFile(t, dir, "main.swa", ".include \"a.swa\"\nstop\n")

	s := source.NewSource(newISA(t), []string{dir})
	require.NoError(t, s.Load(path))
	err := s.Preprocess()
	require.Error(t, err)
	var perr *source.ParserError
	require.ErrorAs(t, err, &perr)
}

func TestPreprocessIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "main.swa", ".define N 0x0001\n.label start\nloadi r0, N\nb start\n")

	s := source.NewSource(newISA(t), []string{dir})
	require.NoError(t, s.Load(path))
	require.NoError(t, s.Preprocess())
	first := s.Lines()

	require.NoError(t, s.Preprocess())
	require.Equal(t, first, s.Lines())
}

func TestPreprocessLabelAsDataAndBranchOffset(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "main.swa",
		"b target\nstop\n.label target\nloadi r0, 0x0001\nstop\ndata_word\n.label data_word\n")

	s := source.NewSource(newISA(t), []string{dir})
	require.NoError(t, s.Load(path))
	require.NoError(t, s.Preprocess())

	lines := s.Lines()
	// "b target": target is word index 2 -> byte address 8; current word
	// index 0 -> offset = 8 - 0 = 8.
	require.Equal(t, "b 0x0008", lines[0])
	// data_word label sits at word index 5 -> byte address 20 = 0x14.
	require.Equal(t, "0x00000014", lines[4])
}

func TestCompileProducesDecodableImage(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "main.swa", "loadi r0, 0x1010\nloadhi r0, 0x1010\nstop\n")

	reg := newISA(t)
	s := source.NewSource(reg, []string{dir})
	require.NoError(t, s.Load(path))
	require.NoError(t, s.Preprocess())

	outPath := filepath.Join(dir, "main.swo")
	require.NoError(t, s.Compile(outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Len(t, data, 12)

	w0 := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	i0 := inst.Decode(w0)
	require.Equal(t, byte(0x2c), i0.Opcode)
	require.Equal(t, uint16(0x1010), i0.Data)
}

func TestCompileRejectsArityMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "main.swa", "move r0\n")

	s := source.NewSource(newISA(t), []string{dir})
	require.NoError(t, s.Load(path))
	require.NoError(t, s.Preprocess())

	err := s.Compile(filepath.Join(dir, "main.swo"))
	require.Error(t, err)
	var perr *source.ParserError
	require.ErrorAs(t, err, &perr)
}
