package vm

import (
	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/word"
)

// doCall implements the shared call sequence: push FP then PC (two
// words), set FP=SP, then jump to target.
func doCall(m isa.Machine, target uint32) (isa.Update, error) {
	sp := m.Reg(RegSP)
	if err := m.SetMemWord(sp, m.Reg(RegFP)); err != nil {
		return 0, err
	}
	if err := m.SetMemWord(sp+4, m.Reg(RegPC)); err != nil {
		return 0, err
	}
	sp += 8
	m.SetReg(RegSP, sp)
	m.SetReg(RegFP, sp)
	m.SetReg(RegPC, target)
	return isa.UpdateNone, nil
}

func opCall(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return doCall(m, pcRelative(m, i))
}

func opCallR(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return doCall(m, m.Reg(i.First))
}

// opInt raises the software interrupt with the instruction's immediate as
// payload r1.
func opInt(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.RaiseInterrupt(IntSoftware, word.Word(i.Data), 0)
	return isa.UpdateInterrupt, nil
}

// opRet restores PC and FP from the two words a matching call pushed.
func opRet(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	sp := m.Reg(RegFP) - 8
	pc, err := m.MemWord(sp + 4)
	if err != nil {
		return 0, err
	}
	fp, err := m.MemWord(sp)
	if err != nil {
		return 0, err
	}
	m.SetReg(RegSP, sp)
	m.SetReg(RegPC, pc)
	m.SetReg(RegFP, fp)
	return isa.UpdatePC, nil
}

// opRetI pops all 16 registers (r15 down to r0), undoing the interrupt
// protocol's save. PC and CS come back as part of that block, so nothing
// further needs restoring.
func opRetI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	sp := m.Reg(RegFP)
	for r := int(NumRegisters - 1); r >= 0; r-- {
		sp -= 4
		v, err := m.MemWord(sp)
		if err != nil {
			return 0, err
		}
		m.SetReg(byte(r), v)
	}
	return isa.UpdateNone, nil
}
