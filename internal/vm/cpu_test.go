package vm

import (
	"testing"

	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/word"
	"github.com/stretchr/testify/require"
)

func newCPU(t *testing.T, memSize int) *CPU {
	t.Helper()
	c, err := New(memSize)
	require.NoError(t, err)
	return c
}

// write places an already-encoded instruction word at addr in canonical
// big-endian form, exactly as the assembler's compile() would.
func write(t *testing.T, c *CPU, addr uint32, w word.Word) {
	t.Helper()
	require.NoError(t, c.MainMemory().SetWord(addr, w, false))
}

func enc(t *testing.T, i inst.Instruction) word.Word {
	t.Helper()
	return inst.Encode(i)
}

func enc3(t *testing.T, i inst.Instruction) word.Word {
	t.Helper()
	return inst.EncodeWithThirdReg(i)
}

// --- End-to-end scenarios from spec.md §8 ---

func TestScenarioStop(t *testing.T) {
	c := newCPU(t, 16)
	write(t, c, 0, enc(t, inst.Instruction{Opcode: 0x00})) // stop

	require.NoError(t, c.Next())
	require.False(t, c.Running())
}

func TestScenarioRestartZeroesRegisters(t *testing.T) {
	c := newCPU(t, 16)
	for r := byte(0); r < NumRegisters; r++ {
		c.SetReg(r, 0xFFFFFFFF)
	}
	// PC must point at the restart instruction for it to be fetched.
	c.SetReg(RegPC, 0)
	write(t, c, 0, enc(t, inst.Instruction{Opcode: 0x01})) // restart

	require.NoError(t, c.Next())
	for r := byte(0); r < NumRegisters; r++ {
		require.Equal(t, word.Word(0), c.Reg(r), "register %d", r)
	}
}

func TestScenarioLoadImmediateAndHalfwordHi(t *testing.T) {
	c := newCPU(t, 16)
	write(t, c, 0, enc(t, inst.Instruction{Opcode: 0x2c, First: RegR0, Data: 0x1010})) // loadi r0, 0x1010
	write(t, c, 4, enc(t, inst.Instruction{Opcode: 0x2d, First: RegR0, Data: 0x1010})) // loadhi r0, 0x1010
	write(t, c, 8, enc(t, inst.Instruction{Opcode: 0x00}))                            // stop

	require.NoError(t, c.Execute())
	require.Equal(t, word.Word(0x10101010), c.Reg(RegR0))
}

func TestScenarioStoreLoadRoundTrip(t *testing.T) {
	c := newCPU(t, 64)
	const dataAddr = 0x18 // past the six program words below

	write(t, c, 0, enc(t, inst.Instruction{Opcode: 0x2e, First: RegR0, Data: dataAddr}))                 // loada r0, D
	write(t, c, 4, enc(t, inst.Instruction{Opcode: 0x2c, First: RegR1, Data: 0xDEAD}))                    // loadi r1, 0xDEAD
	write(t, c, 8, enc(t, inst.Instruction{Opcode: 0x2d, First: RegR1, Data: 0xBEEF}))                    // loadhi r1, 0xBEEF
	write(t, c, 12, enc(t, inst.Instruction{Opcode: 0x33, First: RegR0, Second: RegR1, Data: 0}))         // storeri r0, r1, 0
	write(t, c, 16, enc(t, inst.Instruction{Opcode: 0x23, First: RegR2, Second: RegR0, Data: 0}))         // loadri r2, r0, 0
	write(t, c, 20, enc(t, inst.Instruction{Opcode: 0x00}))                                               // stop

	require.NoError(t, c.Execute())
	require.Equal(t, word.Word(0xBEEFDEAD), c.Reg(RegR2))
}

func TestScenarioSignedBranch(t *testing.T) {
	c := newCPU(t, 16)
	c.SetReg(RegR1, 0x80000000)
	c.SetReg(RegR2, 0x7FFFFFFF)

	write(t, c, 0, enc(t, inst.Instruction{Opcode: 0x46, First: RegR1, Second: RegR2, Data: 8})) // blt r1, r2, +8
	write(t, c, 4, enc(t, inst.Instruction{Opcode: 0x00}))                                       // stop
	write(t, c, 8, enc(t, inst.Instruction{Opcode: 0x2c, First: RegR0, Data: 1}))                // taken: loadi r0, 1
	write(t, c, 12, enc(t, inst.Instruction{Opcode: 0x00}))                                      // stop

	require.NoError(t, c.Execute())
	require.Equal(t, word.Word(1), c.Reg(RegR0))
}

func TestScenarioDivisionTrap(t *testing.T) {
	c := newCPU(t, 256)
	const (
		itp        = 0x30
		handler    = 0x10
		dataAddr   = 0x20
		stackBase  = 0x60
	)

	c.SetReg(RegSP, stackBase)
	c.SetCS(CS{ITP: itp, Enable: true, MaxInterrupts: 1})
	write(t, c, itp+4*uint32(IntDivisionByZero), handler)

	// main program
	write(t, c, 0, enc(t, inst.Instruction{Opcode: 0x6b, First: RegR0, Second: RegR1, Data: 0})) // divi r0, r1, 0
	write(t, c, 4, enc(t, inst.Instruction{Opcode: 0x00}))                                       // stop

	// handler: r3 = 0xBEEF; [D] = r3; reti
	write(t, c, handler, enc(t, inst.Instruction{Opcode: 0x2c, First: RegR3, Data: 0xBEEF}))
	write(t, c, handler+4, enc(t, inst.Instruction{Opcode: 0x30, First: RegR3, Data: word.HalfWord(int16(dataAddr - (handler + 4)))}))
	write(t, c, handler+8, enc(t, inst.Instruction{Opcode: 0x55}))

	require.NoError(t, c.Execute())
	require.False(t, c.Running())
	v, err := c.MainMemory().GetHalfWord(dataAddr+2, false)
	require.NoError(t, err)
	require.Equal(t, word.HalfWord(0xBEEF), v)
}

// --- Universal testable properties ---

func TestPCAdvancesByFourOnPlainInstruction(t *testing.T) {
	c := newCPU(t, 16)
	write(t, c, 0, enc(t, inst.Instruction{Opcode: 0x10, First: RegR0, Second: RegR1})) // move r0, r1

	require.NoError(t, c.Next())
	require.Equal(t, word.Word(4), c.Reg(RegPC))
}

func TestStackDisciplineCallRet(t *testing.T) {
	c := newCPU(t, 64)
	c.SetReg(RegSP, 0x20)
	c.SetReg(RegFP, 0x20)

	write(t, c, 0, enc(t, inst.Instruction{Opcode: 0x50, Data: 8})) // call +8
	write(t, c, 4, enc(t, inst.Instruction{Opcode: 0x00}))         // stop (skipped)
	write(t, c, 8, enc(t, inst.Instruction{Opcode: 0x54}))         // ret

	sp, fp := c.Reg(RegSP), c.Reg(RegFP)
	require.NoError(t, c.Next()) // call
	require.NoError(t, c.Next()) // ret

	require.Equal(t, sp, c.Reg(RegSP))
	require.Equal(t, fp, c.Reg(RegFP))
	require.Equal(t, word.Word(4), c.Reg(RegPC)) // PC advanced past the call, as if it were a plain instruction
}

func TestInterruptSaveRestore(t *testing.T) {
	c := newCPU(t, 128)
	c.SetReg(RegSP, 0x40)
	c.SetReg(RegFP, 0x40)
	c.SetCS(CS{ITP: 0x50, Enable: true, MaxInterrupts: 2})

	const handler = 0x20
	write(t, c, handler, enc(t, inst.Instruction{Opcode: 0x55})) // reti
	write(t, c, 0x50+4*uint32(IntSoftware), handler)

	write(t, c, 0, enc(t, inst.Instruction{Opcode: 0x52, Data: 0x7})) // int 0x7
	write(t, c, 4, enc(t, inst.Instruction{Opcode: 0x2c, First: RegR5, Data: 0x1234}))

	preSP, preFP, preCS := c.Reg(RegSP), c.Reg(RegFP), c.Reg(RegCS)

	require.NoError(t, c.Next()) // int: enters handler
	require.NoError(t, c.Next()) // reti: restores state, PC==4

	require.Equal(t, word.Word(4), c.Reg(RegPC))
	require.Equal(t, preSP, c.Reg(RegSP))
	require.Equal(t, preFP, c.Reg(RegFP))
	require.Equal(t, preCS, c.Reg(RegCS))

	require.NoError(t, c.Next()) // loadi r5, 0x1234 executes normally afterward
	require.Equal(t, word.Word(0x1234), c.Reg(RegR5))
}

func TestDivisionTrapLeavesDestinationUnchanged(t *testing.T) {
	c := newCPU(t, 64)
	c.SetReg(RegR0, 0xAAAAAAAA)
	// No interrupt handler armed: the interrupt is silently swallowed per
	// spec.md §7, and the destination register must be untouched.
	write(t, c, 0, enc3(t, inst.Instruction{Opcode: 0x6a, First: RegR0, Second: RegR1, Third: RegR2}))

	require.NoError(t, c.Next())
	require.Equal(t, word.Word(0xAAAAAAAA), c.Reg(RegR0))
}

func TestUnknownOpcodeRaisesInvalidInstructionInterrupt(t *testing.T) {
	c := newCPU(t, 160)
	c.SetReg(RegSP, 0x50)
	c.SetCS(CS{ITP: 0x30, Enable: true, MaxInterrupts: 1})

	const handler = 0x10
	write(t, c, handler, enc(t, inst.Instruction{Opcode: 0x00})) // stop, just to observe we got here
	write(t, c, 0x30+4*uint32(IntInvalidInstruction), handler)
	write(t, c, 0, 0xFF000000) // opcode 0xFF is never registered

	require.NoError(t, c.Next())
	require.Equal(t, word.Word(handler), c.Reg(RegPC))
}
