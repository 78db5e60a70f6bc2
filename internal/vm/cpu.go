// Package vm implements the fetch-decode-execute CPU core: register file,
// main memory, interrupt dispatch, the calling convention, and the full
// default operation set wired into an isa.ISA at construction time.
package vm

import (
	"errors"
	"fmt"

	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/memory"
	"github.com/simpleworld/swvm/internal/word"
)

// WorldFunc implements the host-defined "world" escape opcode (spec.md §6):
// the sole gateway by which a running program talks to whatever embeds the
// CPU. The default is a no-op that just advances PC.
type WorldFunc func(c *CPU, reg byte, imm word.HalfWord) isa.Update

func defaultWorld(c *CPU, reg byte, imm word.HalfWord) isa.Update {
	return isa.UpdatePC
}

// Halted is returned by Next when the CPU is not running.
var Halted = errors.New("vm: cpu is halted")

// CPU is the machine: a register file, main memory, and an injectable ISA.
type CPU struct {
	regs *memory.Memory
	mem  *memory.Memory
	isa  *isa.ISA

	running            bool
	inInterruptEntry   bool
	unrecoverableFault error

	WorldFunc WorldFunc
}

// New creates a CPU with the given main memory size (at most 65536 bytes)
// and registers the default instruction, register and interrupt tables.
func New(memSize int) (*CPU, error) {
	if memSize > 0x10000 {
		return nil, fmt.Errorf("vm: memory size %d exceeds 64KiB address space", memSize)
	}
	c := &CPU{
		regs:      memory.New(RegisterFileSize),
		mem:       memory.New(memSize),
		isa:       isa.New(),
		running:   true,
		WorldFunc: defaultWorld,
	}
	if err := RegisterDefaults(c.isa); err != nil {
		return nil, err
	}
	return c, nil
}

// ISA returns the CPU's instruction/register/interrupt registry, e.g. so a
// host can register custom opcodes before running any code.
func (c *CPU) ISA() *isa.ISA { return c.isa }

// Running reports whether the fetch-execute loop is still active.
func (c *CPU) Running() bool { return c.running }

// UnrecoverableFault reports the memory fault, if any, that occurred
// while the interrupt protocol itself was saving registers to the stack —
// the one fault class spec.md §7 says must halt the CPU rather than be
// routed back through the interrupt vector.
func (c *CPU) UnrecoverableFault() error { return c.unrecoverableFault }

// Restart zeroes all 16 registers and marks the CPU running. It does not
// touch main memory.
func (c *CPU) Restart() {
	c.regs = memory.New(RegisterFileSize)
	c.running = true
}

// Reg reads register code in host byte order.
func (c *CPU) Reg(code byte) word.Word {
	v, _ := c.regs.GetWord(uint32(code)*4, true)
	return v
}

// SetReg writes register code in host byte order.
func (c *CPU) SetReg(code byte, v word.Word) {
	_ = c.regs.SetWord(uint32(code)*4, v, true)
}

// GetReg/SetRegSE expose the systemEndian toggle from spec.md §4.5 for hosts
// that serialize register blobs to/from storage.
func (c *CPU) GetReg(code byte, systemEndian bool) word.Word {
	v, _ := c.regs.GetWord(uint32(code)*4, systemEndian)
	return v
}

func (c *CPU) SetRegSE(code byte, v word.Word, systemEndian bool) {
	_ = c.regs.SetWord(uint32(code)*4, v, systemEndian)
}

// GetMem/SetMem access main memory with the systemEndian toggle.
func (c *CPU) GetMem(addr uint32, systemEndian bool) (word.Word, error) {
	return c.mem.GetWord(addr, systemEndian)
}

func (c *CPU) SetMem(addr uint32, v word.Word, systemEndian bool) error {
	return c.mem.SetWord(addr, v, systemEndian)
}

// MainMemory exposes the backing Memory, e.g. so a host can bulk-load a
// code blob before the first Next call.
func (c *CPU) MainMemory() *memory.Memory { return c.mem }

// RegisterMemory exposes the 64-byte register file as a Memory, matching
// spec.md's "RegisterFile is a Memory of exactly 64 bytes".
func (c *CPU) RegisterMemory() *memory.Memory { return c.regs }

// --- isa.Machine ---

// Operations see main-memory words in canonical big-endian form, the same
// form the assembler writes and fetchInstruction decodes.
func (c *CPU) MemWord(addr uint32) (word.Word, error)         { return c.mem.GetWord(addr, false) }
func (c *CPU) SetMemWord(addr uint32, v word.Word) error       { return c.mem.SetWord(addr, v, false) }
func (c *CPU) MemHalf(addr uint32) (word.HalfWord, error)      { return c.mem.GetHalfWord(addr, false) }
func (c *CPU) SetMemHalf(addr uint32, v word.HalfWord) error   { return c.mem.SetHalfWord(addr, v, false) }
func (c *CPU) MemQuarter(addr uint32) (word.QuarterWord, error) {
	return c.mem.GetQuarterWord(addr, true)
}
func (c *CPU) SetMemQuarter(addr uint32, v word.QuarterWord) error {
	return c.mem.SetQuarterWord(addr, v, true)
}

// RaiseInterrupt is the isa.Machine entry point operations use to raise an
// interrupt: the software interrupt (`int`) and the div/mod
// division-by-zero trap.
func (c *CPU) RaiseInterrupt(code byte, r1, r2 word.Word) {
	c.Interrupt(code, r1, r2)
}

// World dispatches the host-defined world opcode.
func (c *CPU) World(reg byte, imm word.HalfWord) isa.Update {
	return c.WorldFunc(c, reg, imm)
}

// CS returns the decoded Control & Status register.
func (c *CPU) CS() CS {
	return DecodeCS(c.Reg(RegCS))
}

// SetCS writes back the Control & Status register.
func (c *CPU) SetCS(cs CS) {
	c.SetReg(RegCS, cs.Encode())
}

// TimerInterrupt is the external trigger a simulation host calls between
// Next invocations; equivalent to Interrupt(timer code, 0, 0).
func (c *CPU) TimerInterrupt() {
	c.Interrupt(IntTimer, 0, 0)
}

// Interrupt is the internal entry point implementing the full admission
// protocol of spec.md §4.5. If the corresponding handler is disabled
// (interrupts not armed, the nested budget exhausted, or the handler slot
// is zero) it returns silently.
func (c *CPU) Interrupt(code byte, r1, r2 word.Word) {
	info, err := c.isa.InterruptInfo(code)
	if err != nil {
		return
	}

	cs := c.CS()
	if !cs.Enable || cs.MaxInterrupts == 0 {
		return
	}

	handlerAddr := uint32(cs.ITP) + 4*uint32(code)
	handler, err := c.mem.GetWord(handlerAddr, false)
	if err != nil || handler == 0 {
		return
	}

	if info.ThrownByInst {
		c.SetReg(RegPC, c.Reg(RegPC)+4)
	}

	c.inInterruptEntry = true
	sp := c.Reg(RegSP)
	for i := byte(0); i < NumRegisters; i++ {
		if err := c.SetMemWord(sp, c.Reg(i)); err != nil {
			c.unrecoverableFault = err
			c.running = false
			c.inInterruptEntry = false
			return
		}
		sp += 4
	}
	c.inInterruptEntry = false

	c.SetReg(RegSP, sp)
	c.SetReg(RegFP, sp)
	c.SetReg(RegR0, word.Word(code))
	c.SetReg(RegR1, r1)
	c.SetReg(RegR2, r2)
	c.SetReg(RegPC, handler)

	cs.Interrupt = true
	cs.MaxInterrupts--
	c.SetCS(cs)
}

// fetchInstruction reads the word at PC in canonical big-endian form and
// decodes it.
func (c *CPU) fetchInstruction() (inst.Instruction, error) {
	pc := c.Reg(RegPC)
	w, err := c.mem.GetWord(pc, false)
	if err != nil {
		return inst.Instruction{}, err
	}
	return inst.Decode(w), nil
}

// Next fetches one instruction at PC, dispatches it, and applies the
// returned Update. It fails with Halted if called while not running.
func (c *CPU) Next() error {
	if !c.running {
		return Halted
	}

	pc := c.Reg(RegPC)
	i, err := c.fetchInstruction()
	if err != nil {
		c.faultDuringFetch(pc, err)
		return nil
	}

	info, err := c.isa.InstructionInfo(i.Opcode)
	if err != nil {
		c.Interrupt(IntInvalidInstruction, pc, word.Word(i.Opcode))
		return nil
	}

	update, opErr := info.Func(c, i)
	if opErr != nil {
		c.faultDuringFetch(pc, opErr)
		return nil
	}

	switch update {
	case isa.UpdatePC:
		c.SetReg(RegPC, c.Reg(RegPC)+4)
	case isa.UpdateStop:
		c.running = false
	case isa.UpdateInterrupt, isa.UpdateNone:
		// PC already arranged by the operation or the interrupt protocol.
	}
	return nil
}

func (c *CPU) faultDuringFetch(pc uint32, err error) {
	var fault *memory.Fault
	if errors.As(err, &fault) {
		c.Interrupt(IntInvalidMemory, pc, fault.Addr)
		return
	}
	var dz *DivisionByZero
	if errors.As(err, &dz) {
		c.Interrupt(IntDivisionByZero, pc, dz.Dividend)
		return
	}
	c.Interrupt(IntInvalidMemory, pc, 0)
}

// Execute runs until Running() is false.
func (c *CPU) Execute() error {
	for c.running {
		if err := c.Next(); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteN runs up to n fetch-execute cycles, returning how many cycles
// were left unused (i.e. n minus the number actually run, since the CPU
// may halt early).
func (c *CPU) ExecuteN(n int) (int, error) {
	ran := 0
	for ran < n && c.running {
		if err := c.Next(); err != nil {
			return n - ran, err
		}
		ran++
	}
	return n - ran, nil
}
