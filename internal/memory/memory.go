// Package memory implements the flat, bounds-checked byte array the CPU
// and register file are both built from.
package memory

import (
	"fmt"

	"github.com/simpleworld/swvm/internal/word"
)

// Fault reports an access that would read or write past the end of a
// Memory. Inside an operation it is recoverable (routed to the
// invalid-memory interrupt); a re-entrant Fault raised while the interrupt
// protocol itself is saving/restoring registers is not.
type Fault struct {
	Addr uint32
	Size int
	Len  int
}

func (e *Fault) Error() string {
	return fmt.Sprintf("memory fault: access of %d byte(s) at 0x%X exceeds size 0x%X", e.Size, e.Addr, e.Len)
}

// Memory is a resizable byte array addressable as bytes, halfwords and
// words, always stored in big-endian logical order on disk/in-array.
type Memory struct {
	bytes []byte
}

// New creates a zero-filled Memory of the given size.
func New(size int) *Memory {
	return &Memory{bytes: make([]byte, size)}
}

// NewFromBytes wraps an existing byte slice without copying it.
func NewFromBytes(b []byte) *Memory {
	return &Memory{bytes: b}
}

// Clone performs a deep copy.
func (m *Memory) Clone() *Memory {
	cp := make([]byte, len(m.bytes))
	copy(cp, m.bytes)
	return &Memory{bytes: cp}
}

// Size returns the current size in bytes.
func (m *Memory) Size() int {
	return len(m.bytes)
}

// Resize grows or shrinks the backing array, preserving the common prefix
// and zero-filling any growth.
func (m *Memory) Resize(newSize int) {
	if newSize == len(m.bytes) {
		return
	}
	next := make([]byte, newSize)
	copy(next, m.bytes)
	m.bytes = next
}

// Bytes exposes the raw backing array; callers must not retain it across a
// Resize.
func (m *Memory) Bytes() []byte {
	return m.bytes
}

func (m *Memory) checkBounds(addr uint32, size int) error {
	if int64(addr)+int64(size) > int64(len(m.bytes)) {
		return &Fault{Addr: addr, Size: size, Len: len(m.bytes)}
	}
	return nil
}

// GetQuarterWord reads a single byte. systemEndian has no effect on a
// single byte but is accepted for symmetry with the other accessors.
func (m *Memory) GetQuarterWord(addr uint32, systemEndian bool) (word.QuarterWord, error) {
	if err := m.checkBounds(addr, 1); err != nil {
		return 0, err
	}
	return m.bytes[addr], nil
}

// SetQuarterWord writes a single byte.
func (m *Memory) SetQuarterWord(addr uint32, v word.QuarterWord, systemEndian bool) error {
	if err := m.checkBounds(addr, 1); err != nil {
		return err
	}
	m.bytes[addr] = v
	return nil
}

// GetHalfWord reads a 2-byte value stored big-endian. When systemEndian is
// true the returned value is converted to host byte order; when false it
// is returned exactly as laid out on the wire (always big-endian).
func (m *Memory) GetHalfWord(addr uint32, systemEndian bool) (word.HalfWord, error) {
	if err := m.checkBounds(addr, 2); err != nil {
		return 0, err
	}
	be := word.HalfWord(m.bytes[addr])<<8 | word.HalfWord(m.bytes[addr+1])
	if systemEndian {
		return word.FromBE16(be), nil
	}
	return be, nil
}

// SetHalfWord writes a 2-byte value. See GetHalfWord for the systemEndian
// contract.
func (m *Memory) SetHalfWord(addr uint32, v word.HalfWord, systemEndian bool) error {
	if err := m.checkBounds(addr, 2); err != nil {
		return err
	}
	be := v
	if systemEndian {
		be = word.ToBE16(v)
	}
	m.bytes[addr] = byte(be >> 8)
	m.bytes[addr+1] = byte(be)
	return nil
}

// GetWord reads a 4-byte value stored big-endian. See GetHalfWord for the
// systemEndian contract.
func (m *Memory) GetWord(addr uint32, systemEndian bool) (word.Word, error) {
	if err := m.checkBounds(addr, 4); err != nil {
		return 0, err
	}
	be := word.Word(m.bytes[addr])<<24 | word.Word(m.bytes[addr+1])<<16 |
		word.Word(m.bytes[addr+2])<<8 | word.Word(m.bytes[addr+3])
	if systemEndian {
		return word.FromBE(be), nil
	}
	return be, nil
}

// SetWord writes a 4-byte value. See GetHalfWord for the systemEndian
// contract.
func (m *Memory) SetWord(addr uint32, v word.Word, systemEndian bool) error {
	if err := m.checkBounds(addr, 4); err != nil {
		return err
	}
	be := v
	if systemEndian {
		be = word.ToBE(v)
	}
	m.bytes[addr] = byte(be >> 24)
	m.bytes[addr+1] = byte(be >> 16)
	m.bytes[addr+2] = byte(be >> 8)
	m.bytes[addr+3] = byte(be)
	return nil
}
