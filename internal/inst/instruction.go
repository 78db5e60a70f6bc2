// Package inst packs and unpacks the 32-bit instruction word format shared
// by the CPU, assembler and disassembler.
package inst

import "github.com/simpleworld/swvm/internal/word"

// Instruction is the decoded form of one 32-bit instruction word.
//
//	byte 0: opcode
//	byte 1: high nibble = First, low nibble = Second
//	bytes 2-3: Data, a 16-bit immediate/offset/address field whose low
//	           nibble doubles as Third when the opcode takes a third
//	           register operand instead of an immediate.
type Instruction struct {
	Opcode byte
	First  byte // register index 0-15
	Second byte // register index 0-15
	Third  byte // register index 0-15, valid only for 3-register opcodes
	Data   word.HalfWord
}

// Offset reinterprets Data as a signed 16-bit PC-relative displacement.
func (i Instruction) Offset() int16 {
	return int16(i.Data)
}

// Address reinterprets Data as an unsigned 16-bit address/immediate.
func (i Instruction) Address() word.HalfWord {
	return i.Data
}

// Encode packs an Instruction into its 32-bit word form.
func Encode(i Instruction) word.Word {
	var w word.Word
	w, _ = word.SetByte(w, 0, i.Opcode)
	w, _ = word.SetByte(w, 1, (i.First<<4)|(i.Second&0x0F))
	w, _ = word.SetByte(w, 2, byte(i.Data>>8))
	w, _ = word.SetByte(w, 3, byte(i.Data))
	return w
}

// EncodeWithThirdReg is Encode, but places Third in the low nibble of byte
// 3 instead of treating bytes 2-3 as a plain 16-bit field. Used for the
// three-register-operand opcodes (loadrr, storerr, add, ...).
func EncodeWithThirdReg(i Instruction) word.Word {
	w := Encode(i)
	w, _ = word.SetByte(w, 3, (byte(i.Data)&0xF0)|(i.Third&0x0F))
	return w
}

// Decode unpacks a 32-bit word into an Instruction. Third is always
// populated from the low nibble of byte 3; callers that know the opcode
// takes an immediate instead should read Data/Offset/Address and ignore
// Third.
func Decode(w word.Word) Instruction {
	b1, _ := word.GetByte(w, 1)
	b2, _ := word.GetByte(w, 2)
	b3, _ := word.GetByte(w, 3)
	return Instruction{
		Opcode: mustByte(w, 0),
		First:  b1 >> 4,
		Second: b1 & 0x0F,
		Third:  b3 & 0x0F,
		Data:   word.HalfWord(b2)<<8 | word.HalfWord(b3),
	}
}

func mustByte(w word.Word, i int) byte {
	b, _ := word.GetByte(w, i)
	return b
}
