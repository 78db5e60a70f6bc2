package vm

import (
	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/word"
)

// shiftAmount normalizes any shift/rotate count to [0,31], per spec.md's
// "amount taken mod 32".
func shiftAmount(v word.Word) uint {
	return uint(v % 32)
}

func opSLL(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)<<shiftAmount(m.Reg(i.Third)))
	return isa.UpdatePC, nil
}

func opSLLI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)<<shiftAmount(word.Word(i.Data)))
	return isa.UpdatePC, nil
}

func opSRL(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)>>shiftAmount(m.Reg(i.Third)))
	return isa.UpdatePC, nil
}

func opSRLI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)>>shiftAmount(word.Word(i.Data)))
	return isa.UpdatePC, nil
}

// opSLA/opSLAI: arithmetic shift left is identical to logical shift left
// (there is no overflow flag to set in this ISA).
func opSLA(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return opSLL(m, i)
}

func opSLAI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return opSLLI(m, i)
}

// opSRA/opSRAI: arithmetic shift right, but OR back only the saved MSB
// rather than replicating the full sign run. This is a faithful
// reproduction of the original ISA's behavior (Design Note #3): an
// arithmetic shift of 0x80000000 by 4 yields 0x88000000, not the
// mathematically correct 0xF8000000.
func opSRA(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	src := m.Reg(i.Second)
	sign := src & 0x80000000
	m.SetReg(i.First, (src>>shiftAmount(m.Reg(i.Third)))|sign)
	return isa.UpdatePC, nil
}

func opSRAI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	src := m.Reg(i.Second)
	sign := src & 0x80000000
	m.SetReg(i.First, (src>>shiftAmount(word.Word(i.Data)))|sign)
	return isa.UpdatePC, nil
}

func rotl(x word.Word, n uint) word.Word {
	if n == 0 {
		return x
	}
	return x<<n | x>>(32-n)
}

func rotr(x word.Word, n uint) word.Word {
	if n == 0 {
		return x
	}
	return x>>n | x<<(32-n)
}

func opRL(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, rotl(m.Reg(i.Second), shiftAmount(m.Reg(i.Third))))
	return isa.UpdatePC, nil
}

func opRLI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, rotl(m.Reg(i.Second), shiftAmount(word.Word(i.Data))))
	return isa.UpdatePC, nil
}

func opRR(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, rotr(m.Reg(i.Second), shiftAmount(m.Reg(i.Third))))
	return isa.UpdatePC, nil
}

func opRRI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, rotr(m.Reg(i.Second), shiftAmount(word.Word(i.Data))))
	return isa.UpdatePC, nil
}
