package parser

import (
	"errors"
	"testing"

	"langgen/internal/ast"
	"langgen/internal/langdef"
	"langgen/internal/lexer"
)

func simple() *langdef.Definition {
	def, _ := langdef.Template("simple")
	return def
}

func parse(t *testing.T, def *langdef.Definition, src string) (*ast.Program, error) {
	t.Helper()
	toks, err := lexer.Tokenize(def, src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return Parse(toks)
}

func mustParse(t *testing.T, def *langdef.Definition, src string) *ast.Program {
	t.Helper()
	prog, err := parse(t, def, src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return prog
}

func TestParseProgram_String(t *testing.T) {
	input := `var x = 5
func add(a, b) {
    return a + b
}
print(add(x, 2))`

	prog := mustParse(t, simple(), input)
	want := "variable x = 5\nfunction add(a, b) {\n  return (a + b)\n}\nprint(add(x, 2))\n"
	if got := prog.String(); got != want {
		t.Fatalf("program mismatch.\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"-a * b", "((-a) * b)"},
		{"- -a", "(-(-a))"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b * c", "((a / b) * c)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a || b && c", "(a || (b && c))"},
		{"a && b || c", "((a && b) || c)"},
		{"a == b < c", "(a == (b < c))"},
		{"a + 1 >= b * 2 != true", "(((a + 1) >= (b * 2)) != true)"},
		{"len(s) + 1", "(length(s) + 1)"},
	}

	for i, tt := range tests {
		prog := mustParse(t, simple(), tt.input)
		if len(prog.Statements) != 1 {
			t.Fatalf("tests[%d] - expected 1 statement, got %d", i, len(prog.Statements))
		}
		if got := prog.Statements[0].String(); got != tt.want {
			t.Fatalf("tests[%d] - %q: got %q, want %q", i, tt.input, got, tt.want)
		}
	}
}

func TestAssignmentRecovery(t *testing.T) {
	prog := mustParse(t, simple(), "x = x + 1")
	assign, ok := prog.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement, got %T", prog.Statements[0])
	}
	if assign.Name.Value != "x" || assign.Value.String() != "(x + 1)" {
		t.Fatalf("unexpected assignment %s", assign.String())
	}
}

func TestBuiltinFlagComesFromToken(t *testing.T) {
	def, _ := langdef.Template("kids")
	prog := mustParse(t, def, `say(count("abc"))
greet(1)`)

	outer := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	if !outer.IsBuiltin || outer.Builtin != langdef.BuiltinPrint {
		t.Fatalf("say should be builtin print, got %+v", outer)
	}
	inner := outer.Arguments[0].(*ast.CallExpression)
	if !inner.IsBuiltin || inner.Builtin != langdef.BuiltinLength {
		t.Fatalf("count should be builtin length, got %+v", inner)
	}
	user := prog.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	if user.IsBuiltin || user.Function.Value != "greet" {
		t.Fatalf("greet should be a user call, got %+v", user)
	}
}

func TestElseIfNests(t *testing.T) {
	prog := mustParse(t, simple(), `if a { print(1) } else if b { print(2) } else { print(3) }`)
	stmt := prog.Statements[0].(*ast.IfStatement)
	nested, ok := stmt.Alternative.(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected nested IfStatement, got %T", stmt.Alternative)
	}
	if _, ok := nested.Alternative.(*ast.BlockStatement); !ok {
		t.Fatalf("expected final else block, got %T", nested.Alternative)
	}
}

func TestReturnValueMustStartOnSameLine(t *testing.T) {
	prog := mustParse(t, simple(), "func f() {\n    return\n    print(1)\n}\nfunc g() { return 1 }")
	f := prog.Statements[0].(*ast.FunctionStatement)
	if len(f.Body.Statements) != 2 {
		t.Fatalf("expected bare return then print, got %s", f.Body.String())
	}
	if ret := f.Body.Statements[0].(*ast.ReturnStatement); ret.ReturnValue != nil {
		t.Fatalf("return should be bare, got %s", ret)
	}
	g := prog.Statements[1].(*ast.FunctionStatement)
	if ret := g.Body.Statements[0].(*ast.ReturnStatement); ret.ReturnValue == nil || ret.ReturnValue.String() != "1" {
		t.Fatalf("return value lost: %s", ret)
	}
}

func TestLiterals(t *testing.T) {
	def, _ := langdef.Template("kids")
	prog := mustParse(t, def, `remember a = yes
remember b = no
remember c = nothing
remember d = 2.5
remember e = "hi"
remember f`)

	want := []string{
		"variable a = true",
		"variable b = false",
		"variable c = null",
		"variable d = 2.5",
		`variable e = "hi"`,
		"variable f",
	}
	for i, w := range want {
		if got := prog.Statements[i].String(); got != w {
			t.Fatalf("tests[%d]: got %q, want %q", i, got, w)
		}
	}
}

func TestParseErrors(t *testing.T) {
	def, _ := langdef.Template("kids")
	tests := []struct {
		input string
		msg   string
		line  int
		col   int
	}{
		{"1 = 2", "Invalid assignment target", 1, 3},
		{"say(1) = 2", "Invalid assignment target", 1, 8},
		{"remember = 5", "Expected identifier after 'remember', got '='", 1, 10},
		{"teach f(a b) {}", "Expected ')' after parameters, got 'b'", 1, 11},
		{"when x {\n  say(1)\n", "Expected '}' to close block", 2, 9},
		{"x = ", "Unexpected end of input", 1, 4},
		{"otherwise", "Unexpected token 'otherwise'", 1, 1},
		{"say(1, 2", "Expected ')' after arguments, got end of input", 1, 9},
		{"repeat x say(x)", "Expected '{' after condition, got 'say'", 1, 10},
	}

	for i, tt := range tests {
		_, err := parse(t, def, tt.input)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("tests[%d] %q: expected ParseError, got %v", i, tt.input, err)
		}
		if pe.Message != tt.msg || pe.Line != tt.line || pe.Column != tt.col {
			t.Fatalf("tests[%d] %q: got %q at %d:%d, want %q at %d:%d",
				i, tt.input, pe.Message, pe.Line, pe.Column, tt.msg, tt.line, tt.col)
		}
	}
}

func TestParseErrorRecordsDiagnostic(t *testing.T) {
	toks, _ := lexer.Tokenize(simple(), "var 1")
	p := New(toks)
	prog, err := p.ParseProgram()
	if err == nil {
		t.Fatalf("expected error")
	}
	if prog != nil {
		t.Fatalf("expected no program on error, got %q", prog.String())
	}
	ds := p.Diagnostics()
	if len(ds) != 1 || ds[0].Range.Col != 5 {
		t.Fatalf("unexpected diagnostics %+v", ds)
	}
}
