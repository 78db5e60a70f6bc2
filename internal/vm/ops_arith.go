package vm

import (
	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/word"
)

func opAdd(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)+m.Reg(i.Third))
	return isa.UpdatePC, nil
}

func opAddI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)+word.Word(i.Data))
	return isa.UpdatePC, nil
}

func opSub(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)-m.Reg(i.Third))
	return isa.UpdatePC, nil
}

func opSubI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second)-word.Word(i.Data))
	return isa.UpdatePC, nil
}

func opMultL(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, uint32(uint64(m.Reg(i.Second))*uint64(m.Reg(i.Third))))
	return isa.UpdatePC, nil
}

func opMultLI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, uint32(uint64(m.Reg(i.Second))*uint64(i.Data)))
	return isa.UpdatePC, nil
}

func opMultH(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	p := int64(int32(m.Reg(i.Second))) * int64(int32(m.Reg(i.Third)))
	m.SetReg(i.First, uint32(uint64(p)>>32))
	return isa.UpdatePC, nil
}

func opMultHI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	p := int64(int32(m.Reg(i.Second))) * int64(int32(word.Word(i.Data)))
	m.SetReg(i.First, uint32(uint64(p)>>32))
	return isa.UpdatePC, nil
}

func opMultHU(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	p := uint64(m.Reg(i.Second)) * uint64(m.Reg(i.Third))
	m.SetReg(i.First, uint32(p>>32))
	return isa.UpdatePC, nil
}

func opMultHUI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	p := uint64(m.Reg(i.Second)) * uint64(i.Data)
	m.SetReg(i.First, uint32(p>>32))
	return isa.UpdatePC, nil
}

func opDiv(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	dividend := m.Reg(i.Second)
	divisor := m.Reg(i.Third)
	if divisor == 0 {
		m.RaiseInterrupt(IntDivisionByZero, m.Reg(RegPC), dividend)
		return isa.UpdateInterrupt, nil
	}
	m.SetReg(i.First, dividend/divisor)
	return isa.UpdatePC, nil
}

func opDivI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	dividend := m.Reg(i.Second)
	divisor := word.Word(i.Data)
	if divisor == 0 {
		m.RaiseInterrupt(IntDivisionByZero, m.Reg(RegPC), dividend)
		return isa.UpdateInterrupt, nil
	}
	m.SetReg(i.First, dividend/divisor)
	return isa.UpdatePC, nil
}

func opMod(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	dividend := m.Reg(i.Second)
	divisor := m.Reg(i.Third)
	if divisor == 0 {
		m.RaiseInterrupt(IntDivisionByZero, m.Reg(RegPC), dividend)
		return isa.UpdateInterrupt, nil
	}
	m.SetReg(i.First, dividend%divisor)
	return isa.UpdatePC, nil
}

func opModI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	dividend := m.Reg(i.Second)
	divisor := word.Word(i.Data)
	if divisor == 0 {
		m.RaiseInterrupt(IntDivisionByZero, m.Reg(RegPC), dividend)
		return isa.UpdateInterrupt, nil
	}
	m.SetReg(i.First, dividend%divisor)
	return isa.UpdatePC, nil
}
