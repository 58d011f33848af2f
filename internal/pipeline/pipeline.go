package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"langgen/internal/ast"
	"langgen/internal/diag"
	"langgen/internal/evaluator"
	"langgen/internal/langdef"
	"langgen/internal/lexer"
	"langgen/internal/lint"
	"langgen/internal/parser"
	"langgen/internal/runtimeio"
	"langgen/internal/token"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("langgen.pipeline")

// FileNotFoundError is reported when the program file does not exist.
type FileNotFoundError struct {
	Name string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("File '%s' not found", e.Name)
}

type Options struct {
	// Lenient drops characters no token rule accepts.
	Lenient bool
	// Console serves input; nil means input always fails.
	Console *runtimeio.Console
	// Stream, when set, receives output lines as they are printed.
	Stream io.Writer
	// Seed fixes the random sequence when non-zero.
	Seed int64
}

// ReadSource loads a program file.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &FileNotFoundError{Name: path}
		}
		return "", err
	}
	return string(data), nil
}

// Compile tokenizes and parses src.
func Compile(def *langdef.Definition, src string, opts Options) (*ast.Program, error) {
	var lexOpts []lexer.Option
	if opts.Lenient {
		lexOpts = append(lexOpts, lexer.Lenient())
	}
	toks, err := lexer.Tokenize(def, src, lexOpts...)
	if err != nil {
		return nil, err
	}
	log.Debugf("lexed %d tokens", len(toks))

	prog, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}
	log.Debugf("parsed %d top-level statements", len(prog.Statements))
	return prog, nil
}

// Run tokenizes, parses and executes src in one go. On failure the
// output printed so far is discarded.
func Run(def *langdef.Definition, src string, opts Options) (string, error) {
	prog, err := Compile(def, src, opts)
	if err != nil {
		return "", err
	}

	e := evaluator.New(evalOptions(def, opts)...)
	out, err := e.Execute(prog)
	if err != nil {
		log.Debugf("run failed: %v", err)
		return "", err
	}
	return out, nil
}

func evalOptions(def *langdef.Definition, opts Options) []evaluator.Option {
	evalOpts := []evaluator.Option{evaluator.WithDefinition(def)}
	if opts.Console != nil {
		evalOpts = append(evalOpts, evaluator.WithConsole(opts.Console))
	}
	if opts.Stream != nil {
		evalOpts = append(evalOpts, evaluator.WithStream(opts.Stream))
	}
	if opts.Seed != 0 {
		evalOpts = append(evalOpts, evaluator.WithSeed(opts.Seed))
	}
	return evalOpts
}

// NewSession returns an evaluator whose state survives between programs.
func NewSession(def *langdef.Definition, opts Options) *evaluator.Evaluator {
	return evaluator.New(evalOptions(def, opts)...)
}

// Render turns a failure into the single line shown to the user. The
// language's errors section may replace the default prefixes.
func Render(def *langdef.Definition, err error) string {
	var (
		re  *evaluator.RuntimeError
		le  *lexer.LexError
		pe  *parser.ParseError
		nfe *FileNotFoundError
	)
	switch {
	case errors.As(err, &re):
		prefix := "Runtime error"
		if p, ok := def.ErrorPrefix("runtime"); ok {
			prefix = p
		}
		if p, ok := def.ErrorPrefix("type"); ok && re.TypeMismatch {
			prefix = p
		}
		return prefix + ": " + re.Message
	case errors.As(err, &le), errors.As(err, &pe):
		prefix := "Error"
		if p, ok := def.ErrorPrefix("syntax"); ok {
			prefix = p
		}
		return prefix + ": " + err.Error()
	case errors.As(err, &nfe):
		return "Error: " + nfe.Error()
	}
	return "Error: " + err.Error()
}

// Analysis is everything static tooling needs about one source text.
type Analysis struct {
	Tokens      []token.Token
	Program     *ast.Program
	Diagnostics []diag.Diagnostic
}

// Analyze lexes leniently so every bad character is reported, then parses
// and lints. Program is nil when parsing fails.
func Analyze(def *langdef.Definition, src string) *Analysis {
	lx := lexer.New(def, lexer.Lenient())
	toks, _ := lx.Tokenize(src)
	a := &Analysis{Tokens: toks}
	for _, d := range lx.Diagnostics() {
		d.Severity = diag.SeverityError
		a.Diagnostics = append(a.Diagnostics, d)
	}

	p := parser.New(toks)
	prog, err := p.ParseProgram()
	a.Diagnostics = append(a.Diagnostics, p.Diagnostics()...)
	if err == nil {
		a.Program = prog
		a.Diagnostics = append(a.Diagnostics, lint.Run(prog)...)
	}
	diag.Sort(a.Diagnostics)
	return a
}
