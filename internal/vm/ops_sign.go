package vm

import (
	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/word"
)

// opSignH sign-extends the low 16 bits of R[Second] into R[First].
func opSignH(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, word.Word(int32(int16(m.Reg(i.Second)))))
	return isa.UpdatePC, nil
}

// opSignQ sign-extends the low 8 bits of R[Second] into R[First].
func opSignQ(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	m.SetReg(i.First, word.Word(int32(int8(m.Reg(i.Second)))))
	return isa.UpdatePC, nil
}
