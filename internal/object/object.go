// Package object implements the disassembler: given an ISA registry and a
// raw big-endian object image, reconstruct a readable instruction stream,
// falling back to a raw hex literal for any word that doesn't decode.
package object

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
)

// IOError reports a file open/read/write failure.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("object: %s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// SizeError reports an image whose length isn't a positive multiple of 4.
type SizeError struct {
	Path string
	Size int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("object: %s: length %d is not a positive multiple of 4", e.Path, e.Size)
}

// Object holds a decoded image: one line of text per 32-bit word, in the
// same order the bytes were read.
type Object struct {
	reg   *isa.ISA
	lines []string
}

// New returns an empty Object that will resolve opcodes/registers against reg.
func New(reg *isa.ISA) *Object {
	return &Object{reg: reg}
}

// Lines returns a snapshot of the decoded text, one entry per word.
func (o *Object) Lines() []string {
	out := make([]string, len(o.lines))
	copy(out, o.lines)
	return out
}

// Decompile reads srcPath as a raw big-endian object image and writes its
// disassembly to dstPath, one instruction (or raw literal) per line.
func Decompile(reg *isa.ISA, srcPath, dstPath string) error {
	o := New(reg)
	if err := o.Load(srcPath); err != nil {
		return err
	}
	return o.Save(dstPath)
}

// Load reads path and decodes every word, falling back to a raw 0x%08x
// literal for any opcode or register isa doesn't recognize. This matches
// the original disassembler's refusal to abort on a single bad word.
func (o *Object) Load(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by CLI caller
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	if len(data) == 0 || len(data)%4 != 0 {
		return &SizeError{Path: path, Size: len(data)}
	}

	lines := make([]string, 0, len(data)/4)
	for off := 0; off < len(data); off += 4 {
		w := uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3])
		lines = append(lines, o.decodeWord(w))
	}
	o.lines = lines
	return nil
}

// decodeWord renders one word as a mnemonic line, or as a raw literal if
// the opcode or any of its register operands is unrecognized.
func (o *Object) decodeWord(w uint32) string {
	i := inst.Decode(w)

	info, err := o.reg.InstructionInfo(i.Opcode)
	if err != nil {
		return fmt.Sprintf("0x%08x", w)
	}

	regs := [3]byte{i.First, i.Second, i.Third}
	names := make([]string, 0, info.NRegs+1)
	for r := 0; r < info.NRegs; r++ {
		name, err := o.reg.RegisterName(regs[r])
		if err != nil {
			return fmt.Sprintf("0x%08x", w)
		}
		names = append(names, name)
	}
	if info.HasImmediate {
		names = append(names, fmt.Sprintf("0x%04x", uint16(i.Data)))
	}

	if len(names) == 0 {
		return info.Name
	}
	return info.Name + " " + strings.Join(names, ", ")
}

// Save writes the decoded lines to path, one per line.
func (o *Object) Save(path string) error {
	out, err := os.Create(path) // #nosec G304 -- path supplied by CLI caller
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, l := range o.lines {
		if _, err := w.WriteString(l); err != nil {
			return &IOError{Path: path, Err: err}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return &IOError{Path: path, Err: err}
		}
	}
	return w.Flush()
}
