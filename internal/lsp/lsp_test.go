package lsp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"langgen/internal/config"
	"langgen/internal/langdef"

	"github.com/go-test/deep"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const program = `teach add(a, b) {
  give a plus b
}
remember total = add(1, 2)
say(total)
# done
`

func kidsStore(t *testing.T) *Store {
	t.Helper()
	def, err := langdef.Template("kids")
	if err != nil {
		t.Fatal(err)
	}
	return NewStore(func(string) (*langdef.Definition, string, error) {
		return def, "language.yaml", nil
	})
}

func open(t *testing.T, text string) *Document {
	t.Helper()
	return kidsStore(t).Set("file:///tmp/main.kid", text)
}

func hasToken(toks []SemTok, line, col, typ, mods int) bool {
	for _, tok := range toks {
		if tok.Line == line && tok.Col == col && tok.Type == typ && tok.Mods == mods {
			return true
		}
	}
	return false
}

func TestSemanticTokens(t *testing.T) {
	toks := SemanticTokens(open(t, program))
	tests := []struct {
		line, col, typ, mods int
	}{
		{1, 1, ttKeyword, 0},
		{1, 7, ttFunction, modDecl},
		{1, 11, ttParameter, modDecl},
		{2, 8, ttParameter, 0},
		{2, 10, ttOperator, 0},
		{4, 10, ttVariable, modDecl},
		{4, 18, ttFunction, 0},
		{5, 1, ttFunction, modDefaultLibrary},
		{5, 5, ttVariable, 0},
		{6, 1, ttComment, 0},
	}
	for i, tt := range tests {
		if !hasToken(toks, tt.line, tt.col, tt.typ, tt.mods) {
			t.Fatalf("tests[%d] expected token type %d mods %d at %d:%d", i, tt.typ, tt.mods, tt.line, tt.col)
		}
	}
}

func TestEncodeSemanticTokensUTF16(t *testing.T) {
	doc := open(t, `say("😀")`)
	data := EncodeSemanticTokens(doc.Text, SemanticTokens(doc))
	want := []uint32{
		0, 0, 3, ttFunction, modDefaultLibrary,
		0, 4, 4, ttString, 0,
	}
	if diff := deep.Equal(data, want); diff != nil {
		t.Fatal(diff)
	}
}

func TestHover(t *testing.T) {
	doc := open(t, program)
	tests := []struct {
		line, char uint32
		want       string
	}{
		{0, 0, "keyword: teach\n`function`\n\nDeclares a function with named parameters and a block body."},
		{0, 10, "parameter: a\nof add(a, b)"},
		{1, 9, "operator: plus\n`+` (addition)"},
		{3, 17, "function: add\nadd(a, b)"},
		{3, 10, "variable: total"},
		{4, 0, "builtin: say\nsay(values...)\n\nWrites its arguments joined by a space as one output line.\n\nCanonical name: `print`"},
	}
	for i, tt := range tests {
		h := HoverAt(doc, protocol.Position{Line: tt.line, Character: tt.char})
		if h == nil {
			t.Fatalf("tests[%d] no hover", i)
		}
		got := h.Contents.(protocol.MarkupContent).Value
		if got != tt.want {
			t.Fatalf("tests[%d] hover %q, want %q", i, got, tt.want)
		}
	}
	if h := HoverAt(doc, protocol.Position{Line: 3, Character: 21}); h != nil {
		t.Fatalf("expected no hover over a number, got %+v", h)
	}
}

func labels(items []protocol.CompletionItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestCompletion(t *testing.T) {
	doc := open(t, "remember total = 1\nsa")
	got := labels(CompletionItems(doc, protocol.Position{Line: 1, Character: 2}))
	if diff := deep.Equal(got, []string{"say"}); diff != nil {
		t.Fatal(diff)
	}

	doc = open(t, "remember total = 1\n")
	got = labels(CompletionItems(doc, protocol.Position{Line: 1, Character: 0}))
	if len(got) < 2 || got[0] != "total" || got[1] != "abs" {
		t.Fatalf("unexpected order: %v", got)
	}
	for _, want := range []string{"remember", "surprise", "plus", "nothing"} {
		found := false
		for _, l := range got {
			found = found || l == want
		}
		if !found {
			t.Fatalf("missing %q in %v", want, got)
		}
	}

	doc = open(t, `say("sa`)
	if items := CompletionItems(doc, protocol.Position{Line: 0, Character: 7}); items != nil {
		t.Fatalf("no completion inside strings, got %v", labels(items))
	}
}

func TestSignatureHelp(t *testing.T) {
	doc := open(t, "teach add(a, b) { give a }\nadd(1, ")
	h := SignatureHelpAt(doc, protocol.Position{Line: 1, Character: 7})
	if h == nil || h.Signatures[0].Label != "add(a, b)" || *h.ActiveParameter != 1 {
		t.Fatalf("unexpected signature help %+v", h)
	}

	doc = open(t, "say(1, 2")
	h = SignatureHelpAt(doc, protocol.Position{Line: 0, Character: 8})
	if h == nil || h.Signatures[0].Label != "say(values...)" || *h.ActiveParameter != 0 {
		t.Fatalf("unexpected signature help %+v", h)
	}

	doc = open(t, "say(1)")
	if h := SignatureHelpAt(doc, protocol.Position{Line: 0, Character: 6}); h != nil {
		t.Fatalf("closed call must not show help, got %+v", h)
	}
}

func TestDefinitionAndSymbols(t *testing.T) {
	doc := open(t, program)
	locs := DefinitionAt(doc, protocol.Position{Line: 3, Character: 17})
	want := []protocol.Location{{
		URI:   "file:///tmp/main.kid",
		Range: protocol.Range{Start: protocol.Position{Line: 0, Character: 6}, End: protocol.Position{Line: 0, Character: 9}},
	}}
	if diff := deep.Equal(locs, want); diff != nil {
		t.Fatal(diff)
	}

	syms := DocumentSymbols(doc)
	if len(syms) != 2 || syms[0].Name != "add" || len(syms[0].Children) != 2 || syms[1].Name != "total" {
		t.Fatalf("unexpected symbols %+v", syms)
	}
	if *syms[0].Detail != "add(a, b)" {
		t.Fatalf("detail %q", *syms[0].Detail)
	}
}

func diagCodes(ds []protocol.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = diagnosticCode(d)
	}
	return out
}

func TestDiagnostics(t *testing.T) {
	ds := Diagnostics(open(t, "say(ghost(1)) !"))
	if diff := deep.Equal(diagCodes(ds), []string{"LN003", "LX001"}); diff != nil {
		t.Fatal(diff)
	}
	if *ds[1].Severity != protocol.DiagnosticSeverityError || *ds[1].Source != "langgen" {
		t.Fatalf("unexpected diagnostic %+v", ds[1])
	}
	wantRange := protocol.Range{Start: protocol.Position{Line: 0, Character: 14}, End: protocol.Position{Line: 0, Character: 15}}
	if diff := deep.Equal(ds[1].Range, wantRange); diff != nil {
		t.Fatal(diff)
	}

	missing := NewStore(func(string) (*langdef.Definition, string, error) {
		return &langdef.Definition{}, "", config.ErrNoDefinition
	})
	ds = Diagnostics(missing.Set("file:///tmp/x.kid", "# note"))
	if len(ds) != 1 || diagnosticCode(ds[0]) != "LS001" || *ds[0].Severity != protocol.DiagnosticSeverityWarning {
		t.Fatalf("unexpected diagnostics %+v", ds)
	}
}

func TestFormatting(t *testing.T) {
	doc := open(t, "say( 1 )")
	edits := Formatting(doc, protocol.FormattingOptions{})
	if len(edits) != 1 || edits[0].NewText != "say(1)\n" {
		t.Fatalf("unexpected edits %+v", edits)
	}
	if diff := deep.Equal(edits[0].Range.End, protocol.Position{Line: 0, Character: 8}); diff != nil {
		t.Fatal(diff)
	}
	if edits := Formatting(open(t, "say(1)\n"), protocol.FormattingOptions{}); len(edits) != 0 {
		t.Fatalf("formatted text needs no edit, got %+v", edits)
	}
	if edits := Formatting(open(t, "say("), protocol.FormattingOptions{}); len(edits) != 0 {
		t.Fatalf("broken text must not be formatted, got %+v", edits)
	}
}

func TestFormatIndentFromOptions(t *testing.T) {
	tests := []struct {
		opts protocol.FormattingOptions
		want string
	}{
		{protocol.FormattingOptions{}, "  "},
		{protocol.FormattingOptions{protocol.FormattingOptionTabSize: float64(4)}, "    "},
		{protocol.FormattingOptions{protocol.FormattingOptionInsertSpaces: false}, "\t"},
	}
	for i, tt := range tests {
		if got := formatIndentFromOptions(tt.opts); got != tt.want {
			t.Fatalf("tests[%d] indent %q, want %q", i, got, tt.want)
		}
	}
}

func TestCodeActions(t *testing.T) {
	doc := open(t, "teach f() {\n  give 1\n  say(2)\n}\nf()")
	actions := CodeActions(doc, Diagnostics(doc))
	if len(actions) != 1 || actions[0].Title != "Remove unreachable code" {
		t.Fatalf("unexpected actions %+v", actions)
	}
	edit := actions[0].Edit.Changes[protocol.DocumentUri(doc.URI)][0]
	want := protocol.Range{Start: protocol.Position{Line: 2}, End: protocol.Position{Line: 3}}
	if diff := deep.Equal(edit.Range, want); diff != nil {
		t.Fatal(diff)
	}
}

func TestStoreResolvesSiblingDefinition(t *testing.T) {
	dir := t.TempDir()
	def, _ := langdef.Template("kids")
	if err := langdef.Save(def, filepath.Join(dir, "language.yaml")); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "main.kid")
	if err := os.WriteFile(path, []byte("say(1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(nil)
	uri := PathToURI(path)
	doc := store.Set(uri, "say(1)")
	if doc.DefErr != nil || doc.Def.Name != "KidsLang" || !strings.HasSuffix(doc.DefPath, "language.yaml") {
		t.Fatalf("unexpected resolution: %+v", doc)
	}
	if got, ok := store.Get(uri); !ok || got != doc {
		t.Fatalf("Get did not return the stored document")
	}
	store.Delete(uri)
	if _, ok := store.Get(uri); ok {
		t.Fatalf("document still present after Delete")
	}
	if UriToPath(uri) != path {
		t.Fatalf("round trip %q -> %q", path, UriToPath(uri))
	}
}
