package lint

import (
	"testing"

	"langgen/internal/langdef"
	"langgen/internal/lexer"
	"langgen/internal/parser"
)

func lintSource(t *testing.T, src string, opts Options) []string {
	t.Helper()
	def, _ := langdef.Template("simple")
	toks, err := lexer.Tokenize(def, src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var out []string
	for _, d := range RunWithOptions(prog, opts) {
		out = append(out, d.Code+" "+d.Message)
	}
	return out
}

func TestLintRules(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{
			"func f() {\n  return 1\n  print(2)\n}\nf()",
			[]string{"LN001 unreachable code"},
		},
		{
			"func f() { return 1 }\nfunc f() { return 2 }\nf()",
			[]string{"LN002 function 'f' already declared on line 1"},
		},
		{
			"print(g(1))",
			[]string{"LN003 call to undefined function 'g'"},
		},
		{
			"g()\nfunc g() { print(1) }",
			nil,
		},
		{
			"func f(a, b) { return a }\nf(1, 2)",
			[]string{"LN004 unused parameter: b"},
		},
		{
			"if true { return }\nprint(1)",
			nil,
		},
	}
	for i, tt := range tests {
		got := lintSource(t, tt.input, DefaultOptions())
		if len(got) != len(tt.want) {
			t.Fatalf("tests[%d] %q: got %v, want %v", i, tt.input, got, tt.want)
		}
		for j := range got {
			if got[j] != tt.want[j] {
				t.Fatalf("tests[%d] %q: got %q, want %q", i, tt.input, got[j], tt.want[j])
			}
		}
	}
}

func TestLintOptions(t *testing.T) {
	got := lintSource(t, "func f(a) { return 1 }\nf(1)", Options{})
	if len(got) != 0 {
		t.Fatalf("unused parameter check should be off, got %v", got)
	}
}

func TestLintNilProgram(t *testing.T) {
	if Run(nil) != nil {
		t.Fatalf("expected no diagnostics for nil program")
	}
}
