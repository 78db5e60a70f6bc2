package vm

import "fmt"

// DivisionByZero is returned internally by div/mod when the divisor is
// zero; CPU.Next never sees it because the div/mod operations raise the
// division-by-zero interrupt themselves and return isa.UpdateInterrupt,
// nil. It is exported only so callers constructing custom opcodes in the
// same style have a matching error type to reuse.
type DivisionByZero struct {
	Dividend uint32
}

func (e *DivisionByZero) Error() string {
	return fmt.Sprintf("vm: division by zero (dividend=0x%X)", e.Dividend)
}
