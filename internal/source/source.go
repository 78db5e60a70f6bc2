package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/simpleworld/swvm/internal/isa"
	"github.com/simpleworld/swvm/internal/stdlib"
)

// Source extends File with the assembler's preprocessor-visible state: the
// set of already-included absolute paths, the .define replacement table,
// and the label-name to byte-offset table. Invariant after Preprocess: no
// .include, .define, or .label directive remains.
type Source struct {
	*File

	isa          *isa.ISA
	includePaths []string
	stdlib       *stdlib.Manifest

	included map[string]bool
	defines  map[string]string
	labels   map[string]uint32
}

// NewSource returns an empty Source that will resolve mnemonics/registers
// against reg and search includePaths, in order, for .include targets.
func NewSource(reg *isa.ISA, includePaths []string) *Source {
	return &Source{
		File:         NewFile(),
		isa:          reg,
		includePaths: includePaths,
		included:     make(map[string]bool),
		defines:      make(map[string]string),
		labels:       make(map[string]uint32),
	}
}

// WithStdlib consults manifest before falling back to a literal include
// path, so ".include \"list\"" resolves through the standard library.
func (s *Source) WithStdlib(manifest *stdlib.Manifest) *Source {
	s.stdlib = manifest
	return s
}

// Load reads path as the root source file and marks it included, so a
// (pathological) self-include is caught like any other duplicate.
func (s *Source) Load(path string) error {
	if err := s.File.Load(path); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	s.included[abs] = true
	return nil
}

// IncludedPaths returns the absolute paths of the root file and every
// transitively .include'd file, so a caller (e.g. a file watcher) knows
// the full set of inputs a rebuild depends on.
func (s *Source) IncludedPaths() []string {
	out := make([]string, 0, len(s.included))
	for p := range s.included {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Preprocess runs the four ordered passes of spec.md §4.7: includes,
// blocks, defines, labels.
func (s *Source) Preprocess() error {
	if err := s.expandIncludes(); err != nil {
		return err
	}
	if err := s.expandBlocks(); err != nil {
		return err
	}
	if err := s.collectDefines(); err != nil {
		return err
	}
	if err := s.applyDefines(); err != nil {
		return err
	}
	return s.resolveLabels()
}

func (s *Source) findFirst(re *regexp.Regexp) (int, []string) {
	for i, l := range s.lines {
		if m := re.FindStringSubmatch(l); m != nil {
			return i, m
		}
	}
	return -1, nil
}

// expandIncludes splices each .include target's lines in place, failing on
// a missing file or a repeat inclusion (which would otherwise loop
// forever on a circular include).
func (s *Source) expandIncludes() error {
	for {
		idx, m := s.findFirst(reInclude)
		if idx < 0 {
			return nil
		}
		line := s.lines[idx]
		full, err := s.resolveInclude(m[1])
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(full)
		if err != nil {
			return &IOError{Path: full, Err: err}
		}
		if s.included[abs] {
			return &ParserError{
				Pos:    Position{Line: idx + 1},
				Text:   line,
				Reason: fmt.Sprintf("%q already included (circular or duplicate .include)", m[1]),
			}
		}
		s.included[abs] = true

		inc := NewFile()
		if err := inc.Load(full); err != nil {
			return err
		}
		if err := s.Remove(idx); err != nil {
			return err
		}
		if err := s.InsertFile(idx, inc); err != nil {
			return err
		}
	}
}

func (s *Source) resolveInclude(name string) (string, error) {
	if path, ok := s.stdlib.Resolve(name); ok {
		return path, nil
	}
	for _, dir := range s.includePaths {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", &IOError{Path: name, Err: fmt.Errorf("not found on include path")}
}

// expandBlocks replaces every .block N with ceil(N/4) zero-data lines.
func (s *Source) expandBlocks() error {
	for i := 0; i < s.Size(); {
		line, _ := s.Line(i)
		m := reBlock.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(m[1]), "0x"), 16, 32)
		if err != nil {
			return &ParserError{Pos: Position{Line: i + 1}, Text: line, Reason: "invalid .block size"}
		}
		words := int((n + 3) / 4)
		zeros := make([]string, words)
		for j := range zeros {
			zeros[j] = "0x00000000"
		}
		if err := s.Remove(i); err != nil {
			return err
		}
		if err := s.Insert(i, zeros); err != nil {
			return err
		}
		i += words
	}
	return nil
}

// collectDefines removes every .define line, recording NAME -> VALUE.
func (s *Source) collectDefines() error {
	for i := 0; i < s.Size(); {
		line, _ := s.Line(i)
		m := reDefine.FindStringSubmatch(line)
		if m == nil {
			i++
			continue
		}
		name, value := m[1], m[2]
		if _, dup := s.defines[name]; dup {
			return &ParserError{Pos: Position{Line: i + 1}, Text: line, Reason: fmt.Sprintf("%q redefined", name)}
		}
		s.defines[name] = value
		if err := s.Remove(i); err != nil {
			return err
		}
	}
	return nil
}

// applyDefines substitutes \bNAME\b with its value on every remaining
// line. It does not mask text after '#': the original preprocessor's
// .define pass never protected comments either, and spec.md Design Note #4
// says to reproduce that rather than fix it.
func (s *Source) applyDefines() error {
	if len(s.defines) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.defines))
	for n := range s.defines {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	for i := 0; i < s.Size(); i++ {
		line, _ := s.Line(i)
		for _, name := range names {
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
			line = re.ReplaceAllString(line, s.defines[name])
		}
		_ = s.SetLine(i, line)
	}
	return nil
}

// resolveLabels walks all remaining lines twice: once to record each
// .label's absolute byte address (removing the directive), once to
// substitute label references — as an absolute address where a line is
// bare label-as-data, as a PC-relative offset where a label token appears
// inside an instruction.
func (s *Source) resolveLabels() error {
	counter := uint32(0)
	for i := 0; i < s.Size(); {
		line, _ := s.Line(i)
		if !isMeaningful(line) {
			i++
			continue
		}
		if m := reLabelDecl.FindStringSubmatch(line); m != nil {
			name := m[1]
			if _, dup := s.labels[name]; dup {
				return &ParserError{Pos: Position{Line: i + 1}, Text: line, Reason: fmt.Sprintf("label %q redefined", name)}
			}
			s.labels[name] = 4 * counter
			if err := s.Remove(i); err != nil {
				return err
			}
			continue
		}
		counter++
		i++
	}

	counter = 0
	for i := 0; i < s.Size(); i++ {
		line, _ := s.Line(i)
		if !isMeaningful(line) {
			continue
		}
		if m := reLabelAsData.FindStringSubmatch(line); m != nil {
			if addr, ok := s.labels[m[1]]; ok {
				_ = s.SetLine(i, fmt.Sprintf("0x%08x", addr))
				counter++
				continue
			}
		}

		toks := fields(line)
		changed := false
		for idx := 1; idx < len(toks); idx++ {
			addr, ok := s.labels[toks[idx]]
			if !ok {
				continue
			}
			offset := int32(addr) - int32(4*counter)
			toks[idx] = fmt.Sprintf("0x%04x", uint16(offset))
			changed = true
		}
		if changed {
			_ = s.SetLine(i, strings.Join(toks, " "))
		}
		counter++
	}
	return nil
}
