package vm

import (
	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
)

func opMove(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, m.Reg(i.Second))
	return isa.UpdatePC, nil
}

// opSwap exchanges the high and low 16-bit halves of the source register,
// each halfword keeping its own byte order: unlike word.SwapHalfwords, this
// swaps halfword position, not byte position within a halfword.
func opSwap(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	x := m.Reg(i.Second)
	m.SetReg(i.First, (x<<16)|(x>>16))
	return isa.UpdatePC, nil
}

func opPush(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	sp := m.Reg(RegSP)
	if err := m.SetMemWord(sp, m.Reg(i.First)); err != nil {
		return 0, err
	}
	m.SetReg(RegSP, sp+4)
	return isa.UpdatePC, nil
}

func opPop(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	sp := m.Reg(RegSP) - 4
	v, err := m.MemWord(sp)
	if err != nil {
		return 0, err
	}
	m.SetReg(RegSP, sp)
	m.SetReg(i.First, v)
	return isa.UpdatePC, nil
}
