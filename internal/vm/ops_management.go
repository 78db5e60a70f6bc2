package vm

import (
	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
)

// opStop halts the CPU.
func opStop(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return isa.UpdateStop, nil
}

// opRestart zeroes all 16 registers, matching spec.md's "restart" opcode.
// It returns UpdateNone (not UpdatePC): PC itself was just zeroed, and
// leaving it alone is what lets a restart placed at address 0 act as a
// reset vector rather than stepping past it.
func opRestart(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	for r := byte(0); r < NumRegisters; r++ {
		m.SetReg(r, 0)
	}
	return isa.UpdateNone, nil
}

// opWorld dispatches to the host-defined world escape opcode.
func opWorld(m isa.Machine, i inst.Instruction) (isa.Update, error) {
	return m.World(i.First, i.Data), nil
}
