package lint

import (
	"langgen/internal/ast"
	"langgen/internal/diag"
)

type Options struct {
	CheckUnusedParams bool
}

func DefaultOptions() Options {
	return Options{CheckUnusedParams: true}
}

type Linter struct {
	opts Options
}

func New() *Linter {
	return &Linter{opts: DefaultOptions()}
}

func NewWithOptions(opts Options) *Linter {
	return &Linter{opts: opts}
}

func Run(program *ast.Program) []diag.Diagnostic {
	return New().Run(program)
}

func RunWithOptions(program *ast.Program, opts Options) []diag.Diagnostic {
	return NewWithOptions(opts).Run(program)
}

func (l *Linter) Run(program *ast.Program) []diag.Diagnostic {
	if program == nil {
		return nil
	}
	r := &Runner{opts: l.opts, funcs: map[string]*ast.FunctionStatement{}}
	r.collectFunctions(program)
	r.walkStatements(program.Statements)
	diag.Sort(r.diags)
	return r.diags
}
