package vm

import (
	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/word"
)

func opNot(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, ^m.Reg(i.Second))
	return isa.UpdatePC, nil
}

func opOr(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)|m.Reg(i.Third))
	return isa.UpdatePC, nil
}

func opOrI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)|word.Word(i.Data))
	return isa.UpdatePC, nil
}

func opAnd(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)&m.Reg(i.Third))
	return isa.UpdatePC, nil
}

func opAndI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)&word.Word(i.Data))
	return isa.UpdatePC, nil
}

func opXor(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)^m.Reg(i.Third))
	return isa.UpdatePC, nil
}

func opXorI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)^word.Word(i.Data))
	return isa.UpdatePC, nil
}
