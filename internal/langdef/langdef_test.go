package langdef

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-test/deep"
)

const kidsYAML = `name: KidsLang
version: "1.0"
theme: Educational
keywords:
  variable: remember
  function: teach
  if: when
  print: say
builtins:
  print: say
  length: count
features:
  - Kid-friendly syntax
`

func TestParseKeepsOrderAndIgnoresUnknownKeys(t *testing.T) {
	def, err := Parse([]byte(kidsYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def.Name != "KidsLang" || def.Version != "1.0" {
		t.Fatalf("unexpected metadata: %q %q", def.Name, def.Version)
	}
	want := []Entry{
		{ID: "variable", Spelling: "remember"},
		{ID: "function", Spelling: "teach"},
		{ID: "if", Spelling: "when"},
		{ID: "print", Spelling: "say"},
	}
	if diff := deep.Equal(def.Keywords.Entries(), want); diff != nil {
		t.Fatalf("keywords mismatch: %v", diff)
	}
}

func TestParseJSON(t *testing.T) {
	def, err := Parse([]byte(`{"name": "J", "keywords": {"variable": "let", "loop": "while"}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s, ok := def.KeywordSpelling(KeywordLoop); !ok || s != "while" {
		t.Fatalf("loop spelling = %q, %v", s, ok)
	}
}

func TestParseRejectsNestedSpelling(t *testing.T) {
	_, err := Parse([]byte("keywords:\n  variable:\n    nested: x\n"))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestMarshalIsDeterministicAndRoundTrips(t *testing.T) {
	def, _ := Template("kids")
	a, err := Marshal(def)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b, _ := Marshal(def)
	if !bytes.Equal(a, b) {
		t.Fatalf("marshal output differs between runs")
	}
	back, err := Parse(a)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for name, pair := range map[string][2]Mapping{
		"keywords":  {def.Keywords, back.Keywords},
		"builtins":  {def.Builtins, back.Builtins},
		"operators": {def.Operators, back.Operators},
		"errors":    {def.Errors, back.Errors},
	} {
		if diff := deep.Equal(pair[0].Entries(), pair[1].Entries()); diff != nil {
			t.Fatalf("%s mismatch after round trip: %v", name, diff)
		}
	}
	if strings.Index(string(a), "variable") > strings.Index(string(a), "function") {
		t.Fatalf("keyword order not preserved:\n%s", a)
	}
}

func TestLexiconCollisionLaterWins(t *testing.T) {
	def := &Definition{Keywords: NewMapping("variable", "x", "function", "x")}
	lex := NewLexicon(def)
	k, ok := lex.Keyword("x")
	if !ok || k != KeywordFunction {
		t.Fatalf("expected later id to win, got %v %v", k, ok)
	}
}

func TestLexiconBuiltinFallback(t *testing.T) {
	def := &Definition{Builtins: NewMapping("print", "say", "length", "print")}
	lex := NewLexicon(def)

	tests := []struct {
		spelling string
		want     Builtin
		ok       bool
	}{
		{"say", BuiltinPrint, true},
		{"print", BuiltinLength, true},
		{"input", BuiltinInput, true},
		{"sqrt", BuiltinSqrt, true},
		{"length", BuiltinNone, false},
	}
	for i, tt := range tests {
		got, ok := lex.Builtin(tt.spelling)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("tests[%d] %q: got %v %v, want %v %v", i, tt.spelling, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLexiconBoolLiteralsOnlyWhenUnset(t *testing.T) {
	lex := NewLexicon(&Definition{})
	if v, ok := lex.BoolLiteral("true"); !ok || !v {
		t.Fatalf("expected English true literal")
	}
	lex = NewLexicon(&Definition{Keywords: NewMapping("true", "yes")})
	if _, ok := lex.BoolLiteral("true"); ok {
		t.Fatalf("English true must not be a literal once the keyword is spelled")
	}
	if _, ok := lex.BoolLiteral("false"); !ok {
		t.Fatalf("false is still unset")
	}
}

func TestMatchSymbolicLongestFirst(t *testing.T) {
	def := &Definition{
		Keywords: NewMapping("function", "=>", "return", "=>>"),
		Builtins: NewMapping("print", "say!"),
	}
	lex := NewLexicon(def)

	tests := []struct {
		src  string
		want string
		ok   bool
	}{
		{"=>> 1", "=>>", true},
		{"=> f", "=>", true},
		{"say!(1)", "say!", true},
		{"say(1)", "", false},
	}
	for i, tt := range tests {
		got, ok := lex.MatchSymbolic(tt.src)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("tests[%d] %q: got %q %v", i, tt.src, got, ok)
		}
	}
}

func TestMatchSymbolicRespectsWordBoundary(t *testing.T) {
	lex := NewLexicon(&Definition{Keywords: NewMapping("loop", "2x")})
	if _, ok := lex.MatchSymbolic("2xy"); ok {
		t.Fatalf("2x must not match inside 2xy")
	}
	if s, ok := lex.MatchSymbolic("2x ("); !ok || s != "2x" {
		t.Fatalf("expected 2x match, got %q %v", s, ok)
	}
}

func TestWordRunes(t *testing.T) {
	for _, s := range []string{"remember", "_x1", "café", "🚀", "🚀go", "日本"} {
		if !IsWord(s) {
			t.Fatalf("%q should be a word", s)
		}
	}
	for _, s := range []string{"", "1x", "say!", "a b", "=>"} {
		if IsWord(s) {
			t.Fatalf("%q should not be a word", s)
		}
	}
}

func TestValidate(t *testing.T) {
	def := &Definition{
		Keywords: NewMapping("variable", "x", "function", "x", "retrn", "give", "loop", "1"),
		Builtins: NewMapping("print", "say it"),
	}
	rep := Validate(def)
	codes := map[string]int{}
	for _, d := range rep.Diagnostics {
		codes[d.Code]++
	}
	for _, code := range []string{"LD001", "LD002", "LD003", "LD004", "LD005", "LD007", "LD008"} {
		if codes[code] == 0 {
			t.Fatalf("expected %s in %v", code, rep.Diagnostics)
		}
	}
	if !rep.HasErrors() {
		t.Fatalf("missing name must be an error")
	}

	var collision, hint string
	for _, d := range rep.Diagnostics {
		switch d.Code {
		case "LD003":
			collision = d.Message
		case "LD002":
			hint = d.Message
		}
	}
	if !strings.Contains(collision, "keyword function wins") {
		t.Fatalf("collision message = %q", collision)
	}
	if !strings.Contains(hint, `did you mean "return"`) {
		t.Fatalf("hint message = %q", hint)
	}
}

func TestCompleteness(t *testing.T) {
	def, _ := Template("simple")
	c := CompletenessOf(def)
	if c.Overall != 100 {
		t.Fatalf("simple template completeness = %v", c.Overall)
	}
	c = CompletenessOf(&Definition{Keywords: NewMapping("variable", "v", "if", "when")})
	if c.Keywords != 40 || c.Builtins != 0 || c.Overall != 20 {
		t.Fatalf("unexpected completeness %+v", c)
	}
}

func TestTemplates(t *testing.T) {
	if diff := deep.Equal(TemplateNames(), []string{"kids", "simple"}); diff != nil {
		t.Fatalf("template names: %v", diff)
	}
	if _, err := Template("nope"); err == nil {
		t.Fatalf("expected unknown template error")
	}
	a, _ := Template("kids")
	a.Keywords.Set("variable", "changed")
	b, _ := Template("kids")
	if s, _ := b.KeywordSpelling(KeywordVariable); s != "remember" {
		t.Fatalf("templates must be fresh copies")
	}
}
