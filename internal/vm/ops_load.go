package vm

import (
	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/word"
)

func pcRelative(m isa.Machine, i inst.Instruction) uint32 {
	return uint32(int64(m.Reg(RegPC)) + int64(i.Offset()))
}

func regPlusOffset(m isa.Machine, base byte, i inst.Instruction) uint32 {
	return uint32(int64(m.Reg(base)) + int64(i.Offset()))
}

// opLoad: R[First] = [PC + offset].
func opLoad(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	v, err := m.MemWord(pcRelative(m, i))
	if err != nil {
		return 0, err
	}
	m.SetReg(i.First, v)
	return isa.UpdatePC, nil
}

// opLoadRR: R[First] = [R[Second] + R[Third]].
func opLoadRR(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	addr := m.Reg(i.Second) + m.Reg(i.Third)
	v, err := m.MemWord(addr)
	if err != nil {
		return 0, err
	}
	m.SetReg(i.First, v)
	return isa.UpdatePC, nil
}

// opLoadRI: R[First] = [R[Second] + offset].
func opLoadRI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	v, err := m.MemWord(regPlusOffset(m, i.Second, i))
	if err != nil {
		return 0, err
	}
	m.SetReg(i.First, v)
	return isa.UpdatePC, nil
}

func opLoadH(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	v, err := m.MemHalf(pcRelative(m, i))
	if err != nil {
		return 0, err
	}
	m.SetReg(i.First, word.Word(v))
	return isa.UpdatePC, nil
}

func opLoadHRR(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	addr := m.Reg(i.Second) + m.Reg(i.Third)
	v, err := m.MemHalf(addr)
	if err != nil {
		return 0, err
	}
	m.SetReg(i.First, word.Word(v))
	return isa.UpdatePC, nil
}

func opLoadHRI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	v, err := m.MemHalf(regPlusOffset(m, i.Second, i))
	if err != nil {
		return 0, err
	}
	m.SetReg(i.First, word.Word(v))
	return isa.UpdatePC, nil
}

func opLoadQ(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	v, err := m.MemQuarter(pcRelative(m, i))
	if err != nil {
		return 0, err
	}
	m.SetReg(i.First, word.Word(v))
	return isa.UpdatePC, nil
}

func opLoadQRR(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	addr := m.Reg(i.Second) + m.Reg(i.Third)
	v, err := m.MemQuarter(addr)
	if err != nil {
		return 0, err
	}
	m.SetReg(i.First, word.Word(v))
	return isa.UpdatePC, nil
}

func opLoadQRI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	v, err := m.MemQuarter(regPlusOffset(m, i.Second, i))
	if err != nil {
		return 0, err
	}
	m.SetReg(i.First, word.Word(v))
	return isa.UpdatePC, nil
}

// opLoadI: R[First] = zero-extend(imm).
func opLoadI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, word.Word(i.Data))
	return isa.UpdatePC, nil
}

// opLoadHI: R[First] = (R[First] & 0xFFFF) | (imm << 16).
func opLoadHI(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	cur := m.Reg(i.First)
	m.SetReg(i.First, (cur&0xFFFF)|(word.Word(i.Data)<<16))
	return isa.UpdatePC, nil
}

// opLoadA: R[First] = PC + offset.
func opLoadA(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, pcRelative(m, i))
	return isa.UpdatePC, nil
}
