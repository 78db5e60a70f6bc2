package vm

import (
	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
)

// Store family convention: the LAST register operand is always the value
// being written; any earlier register operands form the address. This
// matches spec.md's worked example (storeri r0, r1, 0 writing R[r1] to
// [R[r0]]) and is the internally consistent reading of the original's
// storeri, whose doc comment and implementation disagreed on operand
// order (see DESIGN.md).

func opStore(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	if err := m.SetMemWord(pcRelative(m, i), m.Reg(i.First)); err != nil {
		return 0, err
	}
	return isa.UpdatePC, nil
}

func opStoreRR(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	addr := m.Reg(i.First) + m.Reg(i.Second)
	if err := m.SetMemWord(addr, m.Reg(i.Third)); err != nil {
		return 0, err
	}
	return isa.UpdatePC, nil
}

func opStoreRI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	if err := m.SetMemWord(regPlusOffset(m, i.First, i), m.Reg(i.Second)); err != nil {
		return 0, err
	}
	return isa.UpdatePC, nil
}

func opStoreH(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	if err := m.SetMemHalf(pcRelative(m, i), uint16(m.Reg(i.First))); err != nil {
		return 0, err
	}
	return isa.UpdatePC, nil
}

func opStoreHRR(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	addr := m.Reg(i.First) + m.Reg(i.Second)
	if err := m.SetMemHalf(addr, uint16(m.Reg(i.Third))); err != nil {
		return 0, err
	}
	return isa.UpdatePC, nil
}

func opStoreHRI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	if err := m.SetMemHalf(regPlusOffset(m, i.First, i), uint16(m.Reg(i.Second))); err != nil {
		return 0, err
	}
	return isa.UpdatePC, nil
}

func opStoreQ(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	if err := m.SetMemQuarter(pcRelative(m, i), byte(m.Reg(i.First))); err != nil {
		return 0, err
	}
	return isa.UpdatePC, nil
}

func opStoreQRR(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	addr := m.Reg(i.First) + m.Reg(i.Second)
	if err := m.SetMemQuarter(addr, byte(m.Reg(i.Third))); err != nil {
		return 0, err
	}
	return isa.UpdatePC, nil
}

func opStoreQRI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	if err := m.SetMemQuarter(regPlusOffset(m, i.First, i), byte(m.Reg(i.Second))); err != nil {
		return 0, err
	}
	return isa.UpdatePC, nil
}
