package vm

// Register codes. This is the primary naming scheme spec.md Design Note #1
// calls for: r0-r11 general purpose, pc/sp/fp/cs special. Of the .swl
// standard-library aliases listed in SPEC_FULL.md §5, g0-g3, lr and wc are
// registered over the same codes; r0-r5 are not (see default.go).
const (
	RegR0 byte = iota
	RegR1
	RegR2
	RegR3
	RegR4
	RegR5
	RegR6
	RegR7
	RegR8
	RegR9
	RegR10
	RegR11
	RegPC
	RegSP
	RegFP
	RegCS
)

// NumRegisters is the fixed register file width.
const NumRegisters = 16

// RegisterFileSize is the register file's size in bytes (16 32-bit words).
const RegisterFileSize = NumRegisters * 4
