package vm

import "github.com/simpleworld/swvm/internal/isa"

// RegisterDefaults populates r with the full opcode/register/interrupt
// tables spec.md §4.4 describes, wiring each opcode to its op* function in
// this package. CPU.New calls this once per instance; a host that wants a
// pristine registry (e.g. to test a hand-rolled ISA) can build its own
// isa.New() and skip this.
func RegisterDefaults(r *isa.ISA) error {
	if err := registerDefaultRegisters(r); err != nil {
		return err
	}
	if err := registerDefaultInterrupts(r); err != nil {
		return err
	}
	return registerDefaultInstructions(r)
}

// registerDefaultRegisters wires the primary r0-r11/pc/sp/fp/cs scheme
// (SPEC_FULL.md §5, Design Note #1) plus the .swl standard library's
// g0-g3/lr/wc aliases; the .swl r0-r5 aliases are not registered (see
// below).
func registerDefaultRegisters(r *isa.ISA) error {
	primary := []struct {
		code byte
		name string
	}{
		{RegR0, "r0"}, {RegR1, "r1"}, {RegR2, "r2"}, {RegR3, "r3"},
		{RegR4, "r4"}, {RegR5, "r5"}, {RegR6, "r6"}, {RegR7, "r7"},
		{RegR8, "r8"}, {RegR9, "r9"}, {RegR10, "r10"}, {RegR11, "r11"},
		{RegPC, "pc"}, {RegSP, "sp"}, {RegFP, "fp"}, {RegCS, "cs"},
	}
	for _, p := range primary {
		if err := r.AddRegister(p.code, p.name); err != nil {
			return err
		}
	}

	// r4-r9's .swl aliases would be "r0"-"r5", but that collides with the
	// primary r0-r11 scheme's own names (a single string-keyed namespace
	// cannot hold both "r0" meanings at once, see DESIGN.md) — those six
	// codes are reachable only by their primary name. g0-g3, lr and wc
	// don't collide and register cleanly.
	aliases := []struct {
		code  byte
		alias string
	}{
		{RegR0, "g0"}, {RegR1, "g1"}, {RegR2, "g2"}, {RegR3, "g3"},
		{RegR10, "lr"},
		{RegCS, "wc"},
	}
	for _, a := range aliases {
		if err := r.AddRegisterAlias(a.code, a.alias); err != nil {
			return err
		}
	}
	return nil
}

func registerDefaultInterrupts(r *isa.ISA) error {
	ints := []isa.InterruptInfo{
		{Code: IntTimer, Name: "timer", ThrownByInst: false},
		{Code: IntSoftware, Name: "software", ThrownByInst: true},
		{Code: IntInvalidInstruction, Name: "invalid-instruction", ThrownByInst: true},
		{Code: IntInvalidMemory, Name: "invalid-memory", ThrownByInst: true},
		{Code: IntDivisionByZero, Name: "division-by-zero", ThrownByInst: true},
	}
	for _, info := range ints {
		if err := r.AddInterrupt(info); err != nil {
			return err
		}
	}
	return nil
}

func registerDefaultInstructions(r *isa.ISA) error {
	insts := []isa.InstructionInfo{
		{Opcode: 0x00, Name: "stop", NRegs: 0, HasImmediate: false, Func: opStop},
		{Opcode: 0x01, Name: "restart", NRegs: 0, HasImmediate: false, Func: opRestart},

		{Opcode: 0x10, Name: "move", NRegs: 2, HasImmediate: false, Func: opMove},
		{Opcode: 0x12, Name: "swap", NRegs: 2, HasImmediate: false, Func: opSwap},
		{Opcode: 0x18, Name: "push", NRegs: 1, HasImmediate: false, Func: opPush},
		{Opcode: 0x1a, Name: "pop", NRegs: 1, HasImmediate: false, Func: opPop},

		{Opcode: 0x20, Name: "load", NRegs: 1, HasImmediate: true, Func: opLoad},
		{Opcode: 0x22, Name: "loadrr", NRegs: 3, HasImmediate: false, Func: opLoadRR},
		{Opcode: 0x23, Name: "loadri", NRegs: 2, HasImmediate: true, Func: opLoadRI},
		{Opcode: 0x24, Name: "loadh", NRegs: 1, HasImmediate: true, Func: opLoadH},
		{Opcode: 0x26, Name: "loadhrr", NRegs: 3, HasImmediate: false, Func: opLoadHRR},
		{Opcode: 0x27, Name: "loadhri", NRegs: 2, HasImmediate: true, Func: opLoadHRI},
		{Opcode: 0x28, Name: "loadq", NRegs: 1, HasImmediate: true, Func: opLoadQ},
		{Opcode: 0x2a, Name: "loadqrr", NRegs: 3, HasImmediate: false, Func: opLoadQRR},
		{Opcode: 0x2b, Name: "loadqri", NRegs: 2, HasImmediate: true, Func: opLoadQRI},
		{Opcode: 0x2c, Name: "loadi", NRegs: 1, HasImmediate: true, Func: opLoadI},
		{Opcode: 0x2d, Name: "loadhi", NRegs: 1, HasImmediate: true, Func: opLoadHI},
		{Opcode: 0x2e, Name: "loada", NRegs: 1, HasImmediate: true, Func: opLoadA},

		{Opcode: 0x30, Name: "store", NRegs: 1, HasImmediate: true, Func: opStore},
		{Opcode: 0x32, Name: "storerr", NRegs: 3, HasImmediate: false, Func: opStoreRR},
		{Opcode: 0x33, Name: "storeri", NRegs: 2, HasImmediate: true, Func: opStoreRI},
		{Opcode: 0x34, Name: "storeh", NRegs: 1, HasImmediate: true, Func: opStoreH},
		{Opcode: 0x36, Name: "storehrr", NRegs: 3, HasImmediate: false, Func: opStoreHRR},
		{Opcode: 0x37, Name: "storehri", NRegs: 2, HasImmediate: true, Func: opStoreHRI},
		// 0x38 ("world") is reserved for the host escape opcode below,
		// which is why the quarter-store group starts at 0x39 rather
		// than continuing the usual +1/+2/+3 pattern.
		{Opcode: 0x38, Name: "world", NRegs: 1, HasImmediate: true, Func: opWorld},
		{Opcode: 0x39, Name: "storeq", NRegs: 1, HasImmediate: true, Func: opStoreQ},
		{Opcode: 0x3a, Name: "storeqrr", NRegs: 3, HasImmediate: false, Func: opStoreQRR},
		{Opcode: 0x3b, Name: "storeqri", NRegs: 2, HasImmediate: true, Func: opStoreQRI},

		{Opcode: 0x40, Name: "b", NRegs: 0, HasImmediate: true, Func: opB},
		{Opcode: 0x42, Name: "bz", NRegs: 1, HasImmediate: true, Func: opBZ},
		{Opcode: 0x43, Name: "bnz", NRegs: 1, HasImmediate: true, Func: opBNZ},
		{Opcode: 0x44, Name: "beq", NRegs: 2, HasImmediate: true, Func: opBEQ},
		{Opcode: 0x45, Name: "bne", NRegs: 2, HasImmediate: true, Func: opBNE},
		{Opcode: 0x46, Name: "blt", NRegs: 2, HasImmediate: true, Func: opBLT},
		{Opcode: 0x47, Name: "bltu", NRegs: 2, HasImmediate: true, Func: opBLTU},
		{Opcode: 0x48, Name: "bgt", NRegs: 2, HasImmediate: true, Func: opBGT},
		{Opcode: 0x49, Name: "bgtu", NRegs: 2, HasImmediate: true, Func: opBGTU},
		{Opcode: 0x4a, Name: "ble", NRegs: 2, HasImmediate: true, Func: opBLE},
		{Opcode: 0x4b, Name: "bleu", NRegs: 2, HasImmediate: true, Func: opBLEU},
		{Opcode: 0x4c, Name: "bge", NRegs: 2, HasImmediate: true, Func: opBGE},
		{Opcode: 0x4d, Name: "bgeu", NRegs: 2, HasImmediate: true, Func: opBGEU},

		{Opcode: 0x50, Name: "call", NRegs: 0, HasImmediate: true, Func: opCall},
		{Opcode: 0x51, Name: "callr", NRegs: 1, HasImmediate: false, Func: opCallR},
		{Opcode: 0x52, Name: "int", NRegs: 0, HasImmediate: true, Func: opInt},
		{Opcode: 0x54, Name: "ret", NRegs: 0, HasImmediate: false, Func: opRet},
		{Opcode: 0x55, Name: "reti", NRegs: 0, HasImmediate: false, Func: opRetI},

		{Opcode: 0x60, Name: "add", NRegs: 3, HasImmediate: false, Func: opAdd},
		{Opcode: 0x61, Name: "addi", NRegs: 2, HasImmediate: true, Func: opAddI},
		{Opcode: 0x62, Name: "sub", NRegs: 3, HasImmediate: false, Func: opSub},
		{Opcode: 0x63, Name: "subi", NRegs: 2, HasImmediate: true, Func: opSubI},
		{Opcode: 0x64, Name: "multl", NRegs: 3, HasImmediate: false, Func: opMultL},
		{Opcode: 0x65, Name: "multli", NRegs: 2, HasImmediate: true, Func: opMultLI},
		{Opcode: 0x66, Name: "multh", NRegs: 3, HasImmediate: false, Func: opMultH},
		{Opcode: 0x67, Name: "multhi", NRegs: 2, HasImmediate: true, Func: opMultHI},
		{Opcode: 0x68, Name: "multhu", NRegs: 3, HasImmediate: false, Func: opMultHU},
		{Opcode: 0x69, Name: "multhui", NRegs: 2, HasImmediate: true, Func: opMultHUI},
		{Opcode: 0x6a, Name: "div", NRegs: 3, HasImmediate: false, Func: opDiv},
		{Opcode: 0x6b, Name: "divi", NRegs: 2, HasImmediate: true, Func: opDivI},
		{Opcode: 0x6c, Name: "mod", NRegs: 3, HasImmediate: false, Func: opMod},
		{Opcode: 0x6d, Name: "modi", NRegs: 2, HasImmediate: true, Func: opModI},

		{Opcode: 0x70, Name: "signh", NRegs: 2, HasImmediate: false, Func: opSignH},
		{Opcode: 0x71, Name: "signq", NRegs: 2, HasImmediate: false, Func: opSignQ},

		{Opcode: 0x80, Name: "not", NRegs: 2, HasImmediate: false, Func: opNot},
		{Opcode: 0x81, Name: "or", NRegs: 3, HasImmediate: false, Func: opOr},
		{Opcode: 0x82, Name: "ori", NRegs: 2, HasImmediate: true, Func: opOrI},
		{Opcode: 0x83, Name: "and", NRegs: 3, HasImmediate: false, Func: opAnd},
		{Opcode: 0x84, Name: "andi", NRegs: 2, HasImmediate: true, Func: opAndI},
		{Opcode: 0x85, Name: "xor", NRegs: 3, HasImmediate: false, Func: opXor},
		{Opcode: 0x86, Name: "xori", NRegs: 2, HasImmediate: true, Func: opXorI},

		{Opcode: 0x90, Name: "sll", NRegs: 3, HasImmediate: false, Func: opSLL},
		{Opcode: 0x91, Name: "slli", NRegs: 2, HasImmediate: true, Func: opSLLI},
		{Opcode: 0x92, Name: "srl", NRegs: 3, HasImmediate: false, Func: opSRL},
		{Opcode: 0x93, Name: "srli", NRegs: 2, HasImmediate: true, Func: opSRLI},
		{Opcode: 0x94, Name: "sla", NRegs: 3, HasImmediate: false, Func: opSLA},
		{Opcode: 0x95, Name: "slai", NRegs: 2, HasImmediate: true, Func: opSLAI},
		{Opcode: 0x96, Name: "sra", NRegs: 3, HasImmediate: false, Func: opSRA},
		{Opcode: 0x97, Name: "srai", NRegs: 2, HasImmediate: true, Func: opSRAI},
		{Opcode: 0x98, Name: "rl", NRegs: 3, HasImmediate: false, Func: opRL},
		{Opcode: 0x99, Name: "rli", NRegs: 2, HasImmediate: true, Func: opRLI},
		{Opcode: 0x9a, Name: "rr", NRegs: 3, HasImmediate: false, Func: opRR},
		{Opcode: 0x9b, Name: "rri", NRegs: 2, HasImmediate: true, Func: opRRI},
	}

	for _, info := range insts {
		if err := r.AddInstruction(info); err != nil {
			return err
		}
	}
	return nil
}
