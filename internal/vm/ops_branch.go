package vm

import (
	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
)

func branch(m isa.Machine, i inst.Instruction, taken bool) (isa.Update, error) {
	if !taken {
		return isa.UpdatePC, nil
	}
	m.SetReg(RegPC, pcRelative(m, i))
	return isa.UpdateNone, nil
}

func opB(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, true)
}

func opBZ(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, m.Reg(i.First) == 0)
}

func opBNZ(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, m.Reg(i.First) != 0)
}

func opBEQ(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, m.Reg(i.First) == m.Reg(i.Second))
}

func opBNE(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, m.Reg(i.First) != m.Reg(i.Second))
}

func opBLT(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, int32(m.Reg(i.First)) < int32(m.Reg(i.Second)))
}

func opBLTU(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, m.Reg(i.First) < m.Reg(i.Second))
}

func opBGT(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, int32(m.Reg(i.First)) > int32(m.Reg(i.Second)))
}

func opBGTU(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, m.Reg(i.First) > m.Reg(i.Second))
}

func opBLE(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, int32(m.Reg(i.First)) <= int32(m.Reg(i.Second)))
}

func opBLEU(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, m.Reg(i.First) <= m.Reg(i.Second))
}

func opBGE(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, int32(m.Reg(i.First)) >= int32(m.Reg(i.Second)))
}

func opBGEU(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return branch(m, i, m.Reg(i.First) >= m.Reg(i.Second))
}
