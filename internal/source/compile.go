package source

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/simpleworld/swvm/internal/inst"
	"github.com/simpleworld/swvm/internal/word"
)

// Compile walks the preprocessed lines and writes the big-endian object
// image to path: a plain word literal for a data line, or the Instruction
// codec's encoding for everything else.
func (s *Source) Compile(path string) error {
	buf := make([]byte, 0, s.Size()*4)
	for i := 0; i < s.Size(); i++ {
		line, _ := s.Line(i)
		if !isMeaningful(line) {
			continue
		}
		w, err := s.encodeLine(i, line)
		if err != nil {
			return err
		}
		buf = append(buf, byte(w>>24), byte(w>>16), byte(w>>8), byte(w))
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil { // #nosec G306 -- object image, not sensitive
		return &IOError{Path: path, Err: err}
	}
	return nil
}

func (s *Source) encodeLine(lineNo int, line string) (word.Word, error) {
	if m := reData.FindStringSubmatch(line); m != nil {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(m[1]), "0x"), 16, 32)
		if err != nil {
			return 0, &ParserError{Pos: Position{Line: lineNo + 1}, Text: line, Reason: "invalid data literal"}
		}
		return word.Word(v), nil
	}

	toks := fields(line)
	if len(toks) == 0 {
		return 0, &ParserError{Pos: Position{Line: lineNo + 1}, Text: line, Reason: "empty instruction line"}
	}
	mnemonic, operands := toks[0], toks[1:]

	code, err := s.isa.InstructionCode(mnemonic)
	if err != nil {
		return 0, &ParserError{Pos: Position{Line: lineNo + 1}, Text: line, Reason: fmt.Sprintf("unknown mnemonic %q", mnemonic)}
	}
	info, err := s.isa.InstructionInfo(code)
	if err != nil {
		return 0, &ParserError{Pos: Position{Line: lineNo + 1}, Text: line, Reason: err.Error()}
	}

	wantOperands := info.NRegs
	if info.HasImmediate {
		wantOperands++
	}
	if len(operands) != wantOperands {
		return 0, &ParserError{
			Pos:    Position{Line: lineNo + 1},
			Text:   line,
			Reason: fmt.Sprintf("%s takes %d operand(s), got %d", mnemonic, wantOperands, len(operands)),
		}
	}

	var i inst.Instruction
	i.Opcode = code
	regSlots := [3]*byte{&i.First, &i.Second, &i.Third}
	for r := 0; r < info.NRegs; r++ {
		regCode, err := s.isa.RegisterCode(operands[r])
		if err != nil {
			return 0, &ParserError{Pos: Position{Line: lineNo + 1}, Text: line, Reason: fmt.Sprintf("unknown register %q", operands[r])}
		}
		*regSlots[r] = regCode
	}
	if info.HasImmediate {
		imm, err := parseImmediate(operands[info.NRegs])
		if err != nil {
			return 0, &ParserError{Pos: Position{Line: lineNo + 1}, Text: line, Reason: fmt.Sprintf("bad immediate %q", operands[info.NRegs])}
		}
		i.Data = imm
	}

	if info.NRegs == 3 && !info.HasImmediate {
		return inst.EncodeWithThirdReg(i), nil
	}
	return inst.Encode(i), nil
}

func parseImmediate(tok string) (word.HalfWord, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(tok), "0x"), 16, 32)
	if err != nil {
		return 0, err
	}
	return word.HalfWord(v), nil
}
