// Package isa holds the process-local registry mapping opcodes, register
// codes and interrupt codes to their names and, for instructions, their
// operation semantics. It is shared read-only between the CPU, the
// assembler and the disassembler once built.
package isa

import (
	"fmt"

	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/word"
)

// Update is the four-way token an operation function returns, telling the
// CPU how to advance the program counter after the instruction runs.
type Update int

const (
	// UpdatePC advances PC by 4, the default for straight-line instructions.
	UpdatePC Update = iota
	// UpdateInterrupt leaves PC alone; the operation already routed
	// execution through CPU.Interrupt, which set PC to the handler.
	UpdateInterrupt
	// UpdateStop halts the CPU after this instruction.
	UpdateStop
	// UpdateNone leaves PC alone; the operation (taken branch, call, reti,
	// restart) already updated it directly.
	UpdateNone
)

// Machine is the surface an operation function needs from the CPU: plain
// register and memory access plus the ability to raise an interrupt. It
// exists so this package never has to import the concrete CPU type.
type Machine interface {
	Reg(code byte) word.Word
	SetReg(code byte, v word.Word)

	MemWord(addr uint32) (word.Word, error)
	SetMemWord(addr uint32, v word.Word) error
	MemHalf(addr uint32) (word.HalfWord, error)
	SetMemHalf(addr uint32, v word.HalfWord) error
	MemQuarter(addr uint32) (word.QuarterWord, error)
	SetMemQuarter(addr uint32, v word.QuarterWord) error

	RaiseInterrupt(code byte, r1, r2 word.Word)

	// World dispatches the host-defined "world" escape opcode (spec.md §6).
	World(reg byte, imm word.HalfWord) Update
}

// OpFunc implements one instruction's semantics. A non-nil error (expected
// to be a *memory.Fault or a division-by-zero sentinel) is translated by
// the CPU's fetch-execute loop into the matching interrupt.
type OpFunc func(m Machine, i inst.Instruction) (Update, error)

// InstructionInfo is everything the registry knows about one opcode.
type InstructionInfo struct {
	Opcode       byte
	Name         string
	NRegs        int
	HasImmediate bool
	Func         OpFunc
}

// InterruptInfo is everything the registry knows about one interrupt.
type InterruptInfo struct {
	Code         byte
	Name         string
	ThrownByInst bool
}

// RegistryError reports an attempt to register a name or code that is
// already in use.
type RegistryError struct {
	Kind string // "instruction", "register", "interrupt"
	Code byte
	Name string
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("isa: %s code 0x%X or name %q already registered", e.Kind, e.Code, e.Name)
}

// UnknownSymbol reports a lookup miss against one of the registry's maps.
type UnknownSymbol struct {
	Kind string // "opcode", "instruction", "register", "interrupt"
	Code byte
	Name string
}

func (e *UnknownSymbol) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("isa: unknown %s %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("isa: unknown %s 0x%X", e.Kind, e.Code)
}

// ISA is the registry. The zero value is not usable; use New.
type ISA struct {
	instByCode map[byte]InstructionInfo
	instByName map[string]byte

	regByCode map[byte]string
	regByName map[string]byte
	regAlias  map[string]byte

	intByCode map[byte]InterruptInfo
	intByName map[string]byte
}

// New returns an empty registry: no instructions, registers or interrupts.
// CPU construction is responsible for populating the default tables (see
// vm.RegisterDefaults), keeping this package free of any dependency on
// instruction semantics.
func New() *ISA {
	return &ISA{
		instByCode: make(map[byte]InstructionInfo),
		instByName: make(map[string]byte),
		regByCode:  make(map[byte]string),
		regByName:  make(map[string]byte),
		regAlias:   make(map[string]byte),
		intByCode:  make(map[byte]InterruptInfo),
		intByName:  make(map[string]byte),
	}
}

// AddInstruction registers an opcode. Fails if either the code or the name
// is already taken.
func (r *ISA) AddInstruction(info InstructionInfo) error {
	if _, ok := r.instByCode[info.Opcode]; ok {
		return &RegistryError{Kind: "instruction", Code: info.Opcode, Name: info.Name}
	}
	if _, ok := r.instByName[info.Name]; ok {
		return &RegistryError{Kind: "instruction", Code: info.Opcode, Name: info.Name}
	}
	r.instByCode[info.Opcode] = info
	r.instByName[info.Name] = info.Opcode
	return nil
}

// RemoveInstruction unregisters an opcode, if present.
func (r *ISA) RemoveInstruction(code byte) {
	if info, ok := r.instByCode[code]; ok {
		delete(r.instByCode, code)
		delete(r.instByName, info.Name)
	}
}

// InstructionInfo looks up an opcode.
func (r *ISA) InstructionInfo(code byte) (InstructionInfo, error) {
	info, ok := r.instByCode[code]
	if !ok {
		return InstructionInfo{}, &UnknownSymbol{Kind: "opcode", Code: code}
	}
	return info, nil
}

// InstructionCode looks up a mnemonic.
func (r *ISA) InstructionCode(name string) (byte, error) {
	code, ok := r.instByName[name]
	if !ok {
		return 0, &UnknownSymbol{Kind: "instruction", Name: name}
	}
	return code, nil
}

// AddRegister registers a primary register name for a code.
func (r *ISA) AddRegister(code byte, name string) error {
	if _, ok := r.regByCode[code]; ok {
		return &RegistryError{Kind: "register", Code: code, Name: name}
	}
	if _, ok := r.regByName[name]; ok {
		return &RegistryError{Kind: "register", Code: code, Name: name}
	}
	r.regByCode[code] = name
	r.regByName[name] = code
	return nil
}

// AddRegisterAlias registers a second name resolving to an already
// registered code, without disturbing RegisterName's primary mapping.
func (r *ISA) AddRegisterAlias(code byte, alias string) error {
	if _, ok := r.regByCode[code]; !ok {
		return &UnknownSymbol{Kind: "register", Code: code}
	}
	if _, ok := r.regByName[alias]; ok {
		return &RegistryError{Kind: "register", Code: code, Name: alias}
	}
	if _, ok := r.regAlias[alias]; ok {
		return &RegistryError{Kind: "register", Code: code, Name: alias}
	}
	r.regAlias[alias] = code
	return nil
}

// RegisterName looks up the primary name of a register code.
func (r *ISA) RegisterName(code byte) (string, error) {
	name, ok := r.regByCode[code]
	if !ok {
		return "", &UnknownSymbol{Kind: "register", Code: code}
	}
	return name, nil
}

// RegisterCode resolves a register name, trying the primary table first
// and then the alias table.
func (r *ISA) RegisterCode(name string) (byte, error) {
	if code, ok := r.regByName[name]; ok {
		return code, nil
	}
	if code, ok := r.regAlias[name]; ok {
		return code, nil
	}
	return 0, &UnknownSymbol{Kind: "register", Name: name}
}

// AddInterrupt registers an interrupt code/name pair.
func (r *ISA) AddInterrupt(info InterruptInfo) error {
	if _, ok := r.intByCode[info.Code]; ok {
		return &RegistryError{Kind: "interrupt", Code: info.Code, Name: info.Name}
	}
	if _, ok := r.intByName[info.Name]; ok {
		return &RegistryError{Kind: "interrupt", Code: info.Code, Name: info.Name}
	}
	r.intByCode[info.Code] = info
	r.intByName[info.Name] = info.Code
	return nil
}

// InterruptInfo looks up an interrupt code.
func (r *ISA) InterruptInfo(code byte) (InterruptInfo, error) {
	info, ok := r.intByCode[code]
	if !ok {
		return InterruptInfo{}, &UnknownSymbol{Kind: "interrupt", Code: code}
	}
	return info, nil
}

// InterruptCode looks up an interrupt name.
func (r *ISA) InterruptCode(name string) (byte, error) {
	code, ok := r.intByName[name]
	if !ok {
		return 0, &UnknownSymbol{Kind: "interrupt", Name: name}
	}
	return code, nil
}
