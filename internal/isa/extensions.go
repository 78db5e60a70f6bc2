package isa

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExtensionError reports a YAML extension row that can't be wired: an
// instruction row naming a Func the host didn't supply, or a malformed
// document.
type ExtensionError struct {
	Path   string
	Reason string
}

func (e *ExtensionError) Error() string {
	return fmt.Sprintf("isa: extension %s: %s", e.Path, e.Reason)
}

// extensionDoc is the YAML shape a host-supplied extension file takes.
// Instruction rows carry metadata only; a YAML document can't carry Go
// code, so the actual OpFunc for each named instruction must come from
// the funcs map LoadExtensions is given.
type extensionDoc struct {
	Instructions []struct {
		Code         byte   `yaml:"code"`
		Name         string `yaml:"name"`
		NRegs        int    `yaml:"nregs"`
		HasImmediate bool   `yaml:"has_immediate"`
	} `yaml:"instructions"`
	Registers []struct {
		Code byte   `yaml:"code"`
		Name string `yaml:"name"`
	} `yaml:"registers"`
	Interrupts []struct {
		Code         byte   `yaml:"code"`
		Name         string `yaml:"name"`
		ThrownByInst bool   `yaml:"thrown_by_inst"`
	} `yaml:"interrupts"`
}

// LoadExtensions reads a YAML document of extra instruction/register/
// interrupt rows and registers them against r, exercising the same
// RegistryError duplicate-detection path a Go call site would. Each named
// instruction row must have a matching entry in funcs; a host embedding
// this core supplies real Go semantics there, since YAML can't carry code.
func LoadExtensions(r *ISA, path string, funcs map[string]OpFunc) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by the embedding host
	if err != nil {
		return &ExtensionError{Path: path, Reason: err.Error()}
	}

	var doc extensionDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &ExtensionError{Path: path, Reason: err.Error()}
	}

	for _, reg := range doc.Registers {
		if err := r.AddRegister(reg.Code, reg.Name); err != nil {
			return err
		}
	}
	for _, in := range doc.Interrupts {
		if err := r.AddInterrupt(InterruptInfo{Code: in.Code, Name: in.Name, ThrownByInst: in.ThrownByInst}); err != nil {
			return err
		}
	}
	for _, inst := range doc.Instructions {
		fn, ok := funcs[inst.Name]
		if !ok {
			return &ExtensionError{Path: path, Reason: fmt.Sprintf("instruction %q has no registered Func", inst.Name)}
		}
		err := r.AddInstruction(InstructionInfo{
			Opcode:       inst.Code,
			Name:         inst.Name,
			NRegs:        inst.NRegs,
			HasImmediate: inst.HasImmediate,
			Func:         fn,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
