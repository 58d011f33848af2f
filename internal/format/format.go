package format

import (
	"fmt"
	"strings"

	"langgen/internal/ast"
	"langgen/internal/langdef"
	"langgen/internal/lexer"
	"langgen/internal/parser"
)

type Options struct {
	Indent string // "  " or "\t"
}

// SpellingError reports a program that cannot be written in the target
// language.
type SpellingError struct {
	Language string
	Message  string
	Line     int
	Column   int
}

func (e *SpellingError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("cannot write in %s: %s", e.Language, e.Message)
	}
	return fmt.Sprintf("cannot write in %s: %s at line %d, column %d", e.Language, e.Message, e.Line, e.Column)
}

// Format re-prints src canonically in its own language.
func Format(def *langdef.Definition, src string, opt Options) (string, error) {
	return Translate(def, def, src, opt)
}

// Translate parses src with from and prints the same program spelled for to.
// Whole-line comments and single blank lines between statements survive.
func Translate(from, to *langdef.Definition, src string, opt Options) (string, error) {
	toks, err := lexer.Tokenize(from, src)
	if err != nil {
		return "", err
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		return "", err
	}
	p := newPrinter(to, opt.Indent, splitLines(src))
	if err := p.printProgram(prog); err != nil {
		return "", err
	}
	return p.String(), nil
}

// Program prints a parsed program for def without any source layout.
func Program(def *langdef.Definition, prog *ast.Program, opt Options) (string, error) {
	p := newPrinter(def, opt.Indent, nil)
	if err := p.printProgram(prog); err != nil {
		return "", err
	}
	return p.String(), nil
}

func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.Split(src, "\n")
}
