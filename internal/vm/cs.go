package vm

import "github.com/simpleworld/swvm/internal/word"

// CS is the decoded form of the Control & Status register (register
// RegCS). Bit positions follow spec.md §6: itp in bits 0-15, enable in bit
// 24, interrupt in bit 25, max_interrupts in bits 28-31 of the canonical
// big-endian-on-the-wire word, which is also how the word reads in host
// order since SetReg/Reg always deal in host-order words and ToBE/FromBE
// are only applied at the Memory boundary.
type CS struct {
	ITP           word.HalfWord
	Enable        bool
	Interrupt     bool
	MaxInterrupts uint8 // 4 bits
}

const (
	csEnableFlag    = 1 << 24
	csInterruptFlag = 1 << 25
	csMaxIntsShift  = 28
	csMaxIntsMask   = 0xF
)

// DecodeCS unpacks a raw register word into a CS.
func DecodeCS(w word.Word) CS {
	return CS{
		ITP:           word.HalfWord(w & 0xFFFF),
		Enable:        w&csEnableFlag != 0,
		Interrupt:     w&csInterruptFlag != 0,
		MaxInterrupts: uint8((w >> csMaxIntsShift) & csMaxIntsMask),
	}
}

// Encode packs a CS back into a raw register word.
func (c CS) Encode() word.Word {
	w := word.Word(c.ITP)
	if c.Enable {
		w |= csEnableFlag
	}
	if c.Interrupt {
		w |= csInterruptFlag
	}
	w |= word.Word(c.MaxInterrupts&csMaxIntsMask) << csMaxIntsShift
	return w
}
