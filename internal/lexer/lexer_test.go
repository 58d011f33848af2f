package lexer

import (
	"errors"
	"testing"

	"langgen/internal/langdef"
	"langgen/internal/token"
)

func kids() *langdef.Definition {
	def, _ := langdef.Template("kids")
	return def
}

type expect struct {
	typ token.Type
	lit string
}

func checkTokens(t *testing.T, got []token.Token, want []expect) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(got), len(want), got)
	}
	for i, tt := range want {
		if got[i].Type != tt.typ {
			t.Fatalf("tests[%d] - type wrong. expected=%q, got=%q", i, tt.typ, got[i].Type)
		}
		if got[i].Literal != tt.lit {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.lit, got[i].Literal)
		}
	}
}

func TestLexer_KidsProgram(t *testing.T) {
	input := `# greet someone
remember name = "Alice"

teach greet(who) {
    say("Hello", who)
    give yes
}
when count(name) >= 5 { greet(name) } otherwise { say(nothing) }`

	toks, err := Tokenize(kids(), input)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	checkTokens(t, toks, []expect{
		{"KEYWORD_VARIABLE", "remember"},
		{token.IDENTIFIER, "name"},
		{token.ASSIGN, "="},
		{token.STRING, "Alice"},

		{"KEYWORD_FUNCTION", "teach"},
		{token.IDENTIFIER, "greet"},
		{token.LPAREN, "("},
		{token.IDENTIFIER, "who"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{"BUILTIN_PRINT", "say"},
		{token.LPAREN, "("},
		{token.STRING, "Hello"},
		{token.COMMA, ","},
		{token.IDENTIFIER, "who"},
		{token.RPAREN, ")"},
		{"KEYWORD_RETURN", "give"},
		{"KEYWORD_TRUE", "yes"},
		{token.RBRACE, "}"},

		{"KEYWORD_IF", "when"},
		{"BUILTIN_LENGTH", "count"},
		{token.LPAREN, "("},
		{token.IDENTIFIER, "name"},
		{token.RPAREN, ")"},
		{token.GE, ">="},
		{token.NUMBER, "5"},
		{token.LBRACE, "{"},
		{token.IDENTIFIER, "greet"},
		{token.LPAREN, "("},
		{token.IDENTIFIER, "name"},
		{token.RPAREN, ")"},
		{token.RBRACE, "}"},
		{"KEYWORD_ELSE", "otherwise"},
		{token.LBRACE, "{"},
		{"BUILTIN_PRINT", "say"},
		{token.LPAREN, "("},
		{"KEYWORD_NULL", "nothing"},
		{token.RPAREN, ")"},
		{token.RBRACE, "}"},
	})
	if toks[0].Line != 2 || toks[0].Col != 1 {
		t.Fatalf("first token at %d:%d, want 2:1", toks[0].Line, toks[0].Col)
	}
	if toks[1].Col != 10 {
		t.Fatalf("name column = %d, want 10", toks[1].Col)
	}
}

func TestLexer_EveryKeywordSpelling(t *testing.T) {
	for _, k := range langdef.Keywords() {
		spelling := "kw_" + k.String()
		def := &langdef.Definition{Keywords: langdef.NewMapping(k.String(), spelling)}
		toks, err := Tokenize(def, spelling)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if len(toks) != 1 || toks[0].Type != token.KeywordType(k) || toks[0].Keyword != k {
			t.Fatalf("%s: got %+v", k, toks)
		}
	}
}

func TestLexer_CollisionLaterIDWins(t *testing.T) {
	def := &langdef.Definition{Keywords: langdef.NewMapping("variable", "x", "function", "x")}
	toks, err := Tokenize(def, "x")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != 1 || toks[0].Type != "KEYWORD_FUNCTION" {
		t.Fatalf("got %+v", toks)
	}
}

func TestLexer_KeywordBeatsBuiltin(t *testing.T) {
	def := &langdef.Definition{
		Keywords: langdef.NewMapping("loop", "go"),
		Builtins: langdef.NewMapping("print", "go"),
	}
	toks, _ := Tokenize(def, "go")
	if toks[0].Type != "KEYWORD_LOOP" {
		t.Fatalf("got %q", toks[0].Type)
	}
}

func TestLexer_TrueFalseFallback(t *testing.T) {
	toks, err := Tokenize(&langdef.Definition{}, "true false null")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	checkTokens(t, toks, []expect{
		{token.TRUE, "true"},
		{token.FALSE, "false"},
		{token.IDENTIFIER, "null"},
	})

	toks, _ = Tokenize(kids(), "true yes")
	checkTokens(t, toks, []expect{
		{token.IDENTIFIER, "true"},
		{"KEYWORD_TRUE", "yes"},
	})
}

func TestLexer_OperatorsAndAliases(t *testing.T) {
	toks, err := Tokenize(kids(), "a plus 2 times b == c != d <= e && f || g is h / i - j")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	checkTokens(t, toks, []expect{
		{token.IDENTIFIER, "a"},
		{token.PLUS, "plus"},
		{token.NUMBER, "2"},
		{token.STAR, "times"},
		{token.IDENTIFIER, "b"},
		{token.EQ, "=="},
		{token.IDENTIFIER, "c"},
		{token.NE, "!="},
		{token.IDENTIFIER, "d"},
		{token.LE, "<="},
		{token.IDENTIFIER, "e"},
		{token.AND, "&&"},
		{token.IDENTIFIER, "f"},
		{token.OR, "||"},
		{token.IDENTIFIER, "g"},
		{token.EQ, "is"},
		{token.IDENTIFIER, "h"},
		{token.SLASH, "/"},
		{token.IDENTIFIER, "i"},
		{token.MINUS, "-"},
		{token.IDENTIFIER, "j"},
	})
	if toks[1].Operator != langdef.OperatorAddition {
		t.Fatalf("alias lost its operator id: %+v", toks[1])
	}
}

func TestLexer_Strings(t *testing.T) {
	toks, err := Tokenize(&langdef.Definition{}, `"a\"b\n" 'it''s' "x\qy"`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	checkTokens(t, toks, []expect{
		{token.STRING, "a\"b\n"},
		{token.STRING, "it"},
		{token.STRING, "s"},
		{token.STRING, `x\qy`},
	})
	if toks[0].Raw != `"a\"b\n"` {
		t.Fatalf("raw = %q", toks[0].Raw)
	}
}

func TestLexer_Numbers(t *testing.T) {
	toks, err := Tokenize(&langdef.Definition{}, "3.14 42 7.", Lenient())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	checkTokens(t, toks, []expect{
		{token.NUMBER, "3.14"},
		{token.NUMBER, "42"},
		{token.NUMBER, "7"},
	})
}

func TestLexer_EmojiAndSymbolicSpellings(t *testing.T) {
	def := &langdef.Definition{
		Keywords: langdef.NewMapping("variable", "📦", "loop", "🔁"),
		Builtins: langdef.NewMapping("print", "say!"),
	}
	toks, err := Tokenize(def, "📦 x = 1\n🔁 x < 3 { say!(x) }")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	checkTokens(t, toks, []expect{
		{"KEYWORD_VARIABLE", "📦"},
		{token.IDENTIFIER, "x"},
		{token.ASSIGN, "="},
		{token.NUMBER, "1"},
		{"KEYWORD_LOOP", "🔁"},
		{token.IDENTIFIER, "x"},
		{token.LT, "<"},
		{token.NUMBER, "3"},
		{token.LBRACE, "{"},
		{"BUILTIN_PRINT", "say!"},
		{token.LPAREN, "("},
		{token.IDENTIFIER, "x"},
		{token.RPAREN, ")"},
		{token.RBRACE, "}"},
	})
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	_, err := Tokenize(&langdef.Definition{}, "x = 1\ny = 2 ! 3")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexError, got %v", err)
	}
	if lexErr.Line != 2 || lexErr.Column != 7 || lexErr.Message != "Unexpected character '!'" {
		t.Fatalf("unexpected error %+v", lexErr)
	}
}

func TestLexer_LenientDropsCharacters(t *testing.T) {
	lx := New(&langdef.Definition{}, Lenient())
	toks, err := lx.Tokenize("a ! b ; c")
	if err != nil {
		t.Fatalf("lenient Tokenize: %v", err)
	}
	checkTokens(t, toks, []expect{
		{token.IDENTIFIER, "a"},
		{token.IDENTIFIER, "b"},
		{token.IDENTIFIER, "c"},
	})
	if n := len(lx.Diagnostics()); n != 2 {
		t.Fatalf("expected 2 drop diagnostics, got %d", n)
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	_, err := Tokenize(&langdef.Definition{}, `say("oops)`)
	var lexErr *LexError
	if !errors.As(err, &lexErr) || lexErr.Message != "Unterminated string" {
		t.Fatalf("expected unterminated string error, got %v", err)
	}
}

func TestLexer_CommentsAndBlankLines(t *testing.T) {
	toks, err := Tokenize(&langdef.Definition{}, "\n   # note\n\t\nx\r\n  #another\n")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	checkTokens(t, toks, []expect{{token.IDENTIFIER, "x"}})
	if toks[0].Line != 4 {
		t.Fatalf("x on line %d, want 4", toks[0].Line)
	}
}
