// Package source implements the assembler: an ordered line buffer (File),
// the preprocessor built on top of it (Source), and the final per-line
// encoding pass that emits a big-endian object image.
package source

import (
	"bufio"
	"os"
	"strings"
)

// File is an ordered, mutable sequence of text lines. No line contains a
// newline; Load strips them on read and Save re-adds them on write.
type File struct {
	lines []string
}

// NewFile returns an empty File.
func NewFile() *File {
	return &File{}
}

// Size returns the number of lines.
func (f *File) Size() int { return len(f.lines) }

// Line returns the line at i.
func (f *File) Line(i int) (string, error) {
	if i < 0 || i >= len(f.lines) {
		return "", &OutOfRange{Index: i, Size: len(f.lines)}
	}
	return f.lines[i], nil
}

// SetLine replaces the line at i in place.
func (f *File) SetLine(i int, text string) error {
	if i < 0 || i >= len(f.lines) {
		return &OutOfRange{Index: i, Size: len(f.lines)}
	}
	f.lines[i] = text
	return nil
}

// Lines returns a snapshot of all lines.
func (f *File) Lines() []string {
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out
}

// Insert splices text in starting at pos, pushing existing lines right.
func (f *File) Insert(pos int, text []string) error {
	if pos < 0 || pos > len(f.lines) {
		return &OutOfRange{Index: pos, Size: len(f.lines)}
	}
	next := make([]string, 0, len(f.lines)+len(text))
	next = append(next, f.lines[:pos]...)
	next = append(next, text...)
	next = append(next, f.lines[pos:]...)
	f.lines = next
	return nil
}

// InsertFile splices other's lines in starting at pos.
func (f *File) InsertFile(pos int, other *File) error {
	return f.Insert(pos, other.lines)
}

// Remove deletes the line at pos.
func (f *File) Remove(pos int) error {
	if pos < 0 || pos >= len(f.lines) {
		return &OutOfRange{Index: pos, Size: len(f.lines)}
	}
	f.lines = append(f.lines[:pos], f.lines[pos+1:]...)
	return nil
}

// Load replaces f's contents with path's lines, newline-stripped.
func (f *File) Load(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by assembler caller
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	f.lines = lines
	return nil
}

// Save writes each line followed by a newline.
func (f *File) Save(path string) error {
	out, err := os.Create(path) // #nosec G304 -- path supplied by assembler caller
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, l := range f.lines {
		if _, err := w.WriteString(l); err != nil {
			return &IOError{Path: path, Err: err}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return &IOError{Path: path, Err: err}
		}
	}
	return w.Flush()
}
