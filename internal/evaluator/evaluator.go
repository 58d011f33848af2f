package evaluator

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"langgen/internal/ast"
	"langgen/internal/langdef"
	"langgen/internal/object"
	"langgen/internal/runtimeio"
	"langgen/internal/semantics"
)

// MaxCallDepth bounds nested user function calls.
const MaxCallDepth = 1000

// RuntimeError is the first failure of a run. Execution stops there.
type RuntimeError struct {
	Message string
	Line    int
	Column  int
	// TypeMismatch marks operand kind errors, which a language may report
	// under its own type error prefix.
	TypeMismatch bool
}

func (e *RuntimeError) Error() string { return e.Message }

type Option func(*Evaluator)

// WithConsole sets where input reads lines and writes prompts.
func WithConsole(c *runtimeio.Console) Option {
	return func(e *Evaluator) { e.console = c }
}

// WithStream mirrors every output line to w as soon as it is printed.
func WithStream(w io.Writer) Option {
	return func(e *Evaluator) { e.stream = w }
}

// WithSeed makes random reproducible.
func WithSeed(seed int64) Option {
	return func(e *Evaluator) { e.rnd = rand.New(rand.NewSource(seed)) }
}

// WithDefinition prints booleans and null with the language's spellings.
func WithDefinition(def *langdef.Definition) Option {
	return func(e *Evaluator) { e.sp = SpellingsFor(def) }
}

// SpellingsFor picks the printed form of true, false and null. Unset
// keywords fall back to English.
func SpellingsFor(def *langdef.Definition) object.Spellings {
	sp := object.English
	if def == nil {
		return sp
	}
	if s, ok := def.KeywordSpelling(langdef.KeywordTrue); ok {
		sp.True = s
	}
	if s, ok := def.KeywordSpelling(langdef.KeywordFalse); ok {
		sp.False = s
	}
	if s, ok := def.KeywordSpelling(langdef.KeywordNull); ok {
		sp.Null = s
	}
	return sp
}

type Evaluator struct {
	env       *object.Environment
	functions map[string]*ast.FunctionStatement
	depth     int

	out     strings.Builder
	stream  io.Writer
	console *runtimeio.Console
	rnd     *rand.Rand
	sp      object.Spellings
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{sp: object.English}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.console == nil {
		e.console = runtimeio.NewConsole(nil, nil)
	}
	e.Reset()
	return e
}

// Reset drops all variables, functions and buffered output.
func (e *Evaluator) Reset() {
	e.env = object.NewEnvironment()
	e.functions = map[string]*ast.FunctionStatement{}
	e.depth = 0
	e.out.Reset()
}

// Execute runs prog on fresh state and returns everything it printed.
func (e *Evaluator) Execute(prog *ast.Program) (string, error) {
	e.Reset()
	_, err := e.Run(prog)
	return e.out.String(), err
}

// Run executes prog on the current state, so variables and functions
// persist between calls. It yields the value of the last expression
// statement, or null.
func (e *Evaluator) Run(prog *ast.Program) (object.Object, error) {
	var last object.Object = object.NULL
	for _, stmt := range prog.Statements {
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			v, err := e.eval(es.Expression)
			if err != nil {
				return nil, err
			}
			last = v
			continue
		}
		sig, err := e.exec(stmt)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			// A top-level return ends the program.
			return sig.value, nil
		}
		last = object.NULL
	}
	return last, nil
}

// Output is what the program printed so far.
func (e *Evaluator) Output() string { return e.out.String() }

// TakeOutput returns and clears the buffered output.
func (e *Evaluator) TakeOutput() string {
	s := e.out.String()
	e.out.Reset()
	return s
}

func (e *Evaluator) Variable(name string) (object.Object, bool) { return e.env.Get(name) }
func (e *Evaluator) VariableNames() []string                      { return e.env.Names() }

func (e *Evaluator) FunctionNames() []string {
	out := make([]string, 0, len(e.functions))
	for name := range e.functions {
		out = append(out, name)
	}
	return out
}

// Render is the printed form of v in this run's language.
func (e *Evaluator) Render(v object.Object) string { return e.sp.Render(v) }

type returnSignal struct {
	value object.Object
}

/* -------------------- statements -------------------- */

func (e *Evaluator) exec(stmt ast.Statement) (*returnSignal, error) {
	switch s := stmt.(type) {
	case *ast.VarStatement:
		var val object.Object = object.NULL
		if s.Value != nil {
			v, err := e.eval(s.Value)
			if err != nil {
				return nil, err
			}
			val = v
		}
		e.env.Set(s.Name.Value, val)
		return nil, nil

	case *ast.AssignStatement:
		v, err := e.eval(s.Value)
		if err != nil {
			return nil, err
		}
		e.env.Set(s.Name.Value, v)
		return nil, nil

	case *ast.FunctionStatement:
		e.functions[s.Name.Value] = s
		return nil, nil

	case *ast.IfStatement:
		return e.execIf(s)

	case *ast.LoopStatement:
		for {
			cond, err := e.eval(s.Condition)
			if err != nil {
				return nil, err
			}
			if !semantics.IsTruthy(cond) {
				return nil, nil
			}
			sig, err := e.execBlock(s.Body)
			if err != nil || sig != nil {
				return sig, err
			}
		}

	case *ast.ReturnStatement:
		var val object.Object = object.NULL
		if s.ReturnValue != nil {
			v, err := e.eval(s.ReturnValue)
			if err != nil {
				return nil, err
			}
			val = v
		}
		return &returnSignal{value: val}, nil

	case *ast.ExpressionStatement:
		_, err := e.eval(s.Expression)
		return nil, err

	case *ast.BlockStatement:
		return e.execBlock(s)
	}
	return nil, e.errorf(stmt, "unsupported statement %T", stmt)
}

func (e *Evaluator) execIf(s *ast.IfStatement) (*returnSignal, error) {
	cond, err := e.eval(s.Condition)
	if err != nil {
		return nil, err
	}
	if semantics.IsTruthy(cond) {
		return e.execBlock(s.Consequence)
	}
	if s.Alternative != nil {
		return e.exec(s.Alternative)
	}
	return nil, nil
}

func (e *Evaluator) execBlock(b *ast.BlockStatement) (*returnSignal, error) {
	for _, stmt := range b.Statements {
		sig, err := e.exec(stmt)
		if err != nil || sig != nil {
			return sig, err
		}
	}
	return nil, nil
}

/* -------------------- expressions -------------------- */

func (e *Evaluator) eval(expr ast.Expression) (object.Object, error) {
	switch n := expr.(type) {
	case *ast.NumberLiteral:
		return object.NewNumber(n.Value), nil
	case *ast.StringLiteral:
		return object.NewString(n.Value), nil
	case *ast.BooleanLiteral:
		return object.NativeBool(n.Value), nil
	case *ast.NullLiteral:
		return object.NULL, nil

	case *ast.Identifier:
		if v, ok := e.env.Get(n.Value); ok {
			return v, nil
		}
		return nil, e.errorf(n, "Undefined variable: %s", n.Value)

	case *ast.PrefixExpression:
		right, err := e.eval(n.Right)
		if err != nil {
			return nil, err
		}
		v, err := semantics.Negate(right)
		if err != nil {
			return nil, e.wrap(n, err)
		}
		return v, nil

	case *ast.InfixExpression:
		left, err := e.eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.eval(n.Right)
		if err != nil {
			return nil, err
		}
		v, err := semantics.BinaryOp(string(n.Operator), left, right, e.sp)
		if err != nil {
			return nil, e.wrap(n, err)
		}
		return v, nil

	case *ast.CallExpression:
		return e.evalCall(n)
	}
	return nil, e.errorf(expr, "unsupported expression %T", expr)
}

func (e *Evaluator) evalCall(call *ast.CallExpression) (object.Object, error) {
	args := make([]object.Object, 0, len(call.Arguments))
	for _, a := range call.Arguments {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	if call.IsBuiltin {
		fn, ok := builtins[call.Builtin]
		if !ok {
			return nil, e.errorf(call, "Undefined function: %s", call.Function.Value)
		}
		v, err := fn(e, call.Function.Value, args)
		if err != nil {
			return nil, e.wrap(call, err)
		}
		return v, nil
	}

	fn, ok := e.functions[call.Function.Value]
	if !ok {
		return nil, e.errorf(call, "Undefined function: %s", call.Function.Value)
	}
	return e.applyFunction(call, fn, args)
}

// applyFunction runs fn against a copy of the caller's variables and puts
// the caller's table back afterwards, whatever the body assigned.
func (e *Evaluator) applyFunction(call *ast.CallExpression, fn *ast.FunctionStatement, args []object.Object) (object.Object, error) {
	if e.depth >= MaxCallDepth {
		return nil, e.errorf(call, "Maximum recursion depth exceeded")
	}

	saved := e.env
	local := saved.Clone()
	for i, p := range fn.Parameters {
		var v object.Object = object.NULL
		if i < len(args) {
			v = args[i]
		}
		local.Set(p.Value, v)
	}

	e.env = local
	e.depth++
	sig, err := e.execBlock(fn.Body)
	e.depth--
	e.env = saved

	if err != nil {
		return nil, err
	}
	if sig != nil {
		return sig.value, nil
	}
	return object.NULL, nil
}

/* -------------------- errors -------------------- */

func (e *Evaluator) errorf(node ast.Node, format string, args ...any) error {
	line, col := node.Pos()
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Line: line, Column: col}
}

func (e *Evaluator) wrap(node ast.Node, err error) error {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re
	}
	line, col := node.Pos()
	var te *semantics.TypeError
	return &RuntimeError{Message: err.Error(), Line: line, Column: col, TypeMismatch: errors.As(err, &te)}
}
