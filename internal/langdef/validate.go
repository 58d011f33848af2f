package langdef

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"langgen/internal/diag"

	"github.com/sahilm/fuzzy"
)

var (
	essentialKeywords = []Keyword{KeywordVariable, KeywordFunction, KeywordIf, KeywordLoop, KeywordReturn}
	essentialBuiltins = []Builtin{BuiltinPrint, BuiltinInput}
	errorKinds        = []string{"syntax", "runtime", "type"}
	punctuation       = []string{"(", ")", "{", "}", ",", `"`, "'", "#"}
)

type Completeness struct {
	Keywords        float64
	Builtins        float64
	Overall         float64
	MissingKeywords []Keyword
	MissingBuiltins []Builtin
}

type Report struct {
	Diagnostics  []diag.Diagnostic
	Completeness Completeness
}

func (r Report) HasErrors() bool { return diag.HasErrors(r.Diagnostics) }

// Validate checks a definition for problems that make programs hard or
// impossible to write. Only a missing name is an error.
func Validate(def *Definition) Report {
	v := &validator{def: def}
	if strings.TrimSpace(def.Name) == "" {
		v.add("LD001", diag.SeverityError, "language name is empty")
	}
	v.checkIDs("keyword", def.Keywords, keywordIDNames())
	v.checkIDs("builtin", def.Builtins, builtinIDNames())
	v.checkIDs("operator", def.Operators, operatorIDNames())
	v.checkIDs("error", def.Errors, errorKinds)
	v.checkSpellings()
	v.checkCollisions()

	c := CompletenessOf(def)
	for _, k := range c.MissingKeywords {
		v.add("LD007", diag.SeverityWarning, "essential keyword %q has no spelling", k.String())
	}
	for _, b := range c.MissingBuiltins {
		v.add("LD008", diag.SeverityInfo, "builtin %q uses its default spelling %q", b.String(), b.String())
	}
	return Report{Diagnostics: v.out, Completeness: c}
}

func CompletenessOf(def *Definition) Completeness {
	var c Completeness
	for _, k := range essentialKeywords {
		if _, ok := def.KeywordSpelling(k); !ok {
			c.MissingKeywords = append(c.MissingKeywords, k)
		}
	}
	for _, b := range essentialBuiltins {
		if _, ok := def.Builtins.Get(b.String()); !ok {
			c.MissingBuiltins = append(c.MissingBuiltins, b)
		}
	}
	c.Keywords = percent(len(essentialKeywords)-len(c.MissingKeywords), len(essentialKeywords))
	c.Builtins = percent(len(essentialBuiltins)-len(c.MissingBuiltins), len(essentialBuiltins))
	c.Overall = math.Round((c.Keywords+c.Builtins)/2*10) / 10
	return c
}

func percent(n, total int) float64 {
	return math.Round(float64(n)/float64(total)*1000) / 10
}

type validator struct {
	def *Definition
	out []diag.Diagnostic
}

func (v *validator) add(code string, sev diag.Severity, format string, args ...any) {
	v.out = append(v.out, diag.New(code, sev, diag.Range{}, format, args...))
}

func (v *validator) checkIDs(section string, m Mapping, known []string) {
	for _, e := range m.Entries() {
		if contains(known, e.ID) {
			continue
		}
		msg := fmt.Sprintf("unknown %s id %q", section, e.ID)
		if matches := fuzzy.Find(e.ID, known); len(matches) > 0 {
			msg += fmt.Sprintf(", did you mean %q?", matches[0].Str)
		}
		v.add("LD002", diag.SeverityWarning, "%s", msg)
	}
}

type owner struct {
	section string
	id      string
}

func (o owner) String() string { return o.section + " " + o.id }

func (v *validator) spellings() map[string][]owner {
	out := map[string][]owner{}
	for _, e := range v.def.Keywords.Entries() {
		if _, ok := LookupKeyword(e.ID); !ok {
			continue
		}
		if s, ok := v.def.Keywords.Get(e.ID); ok {
			out[s] = append(out[s], owner{"keyword", e.ID})
		}
	}
	for _, b := range Builtins() {
		if _, ok := v.def.Builtins.Get(b.String()); !ok {
			out[b.String()] = append(out[b.String()], owner{"builtin", b.String()})
		}
	}
	for _, e := range v.def.Builtins.Entries() {
		if _, ok := LookupBuiltin(e.ID); !ok {
			continue
		}
		if s, ok := v.def.Builtins.Get(e.ID); ok {
			out[s] = append(out[s], owner{"builtin", e.ID})
		}
	}
	return out
}

func (v *validator) checkSpellings() {
	check := func(section string, m Mapping) {
		for _, e := range m.Entries() {
			s, ok := m.Get(e.ID)
			if !ok {
				continue
			}
			switch {
			case strings.IndexFunc(s, unicode.IsSpace) >= 0:
				v.add("LD004", diag.SeverityWarning, "%s %q spelling %q contains whitespace", section, e.ID, s)
			case IsNumeric(s):
				v.add("LD005", diag.SeverityWarning, "%s %q spelling %q shadows a number literal", section, e.ID, s)
			case section != "operator" && isOperatorText(s):
				v.add("LD006", diag.SeverityWarning, "%s %q spelling %q shadows an operator or delimiter", section, e.ID, s)
			}
		}
	}
	check("keyword", v.def.Keywords)
	check("builtin", v.def.Builtins)
	check("operator", v.def.Operators)
}

func (v *validator) checkCollisions() {
	byText := v.spellings()
	texts := make([]string, 0, len(byText))
	for s, owners := range byText {
		if len(owners) > 1 {
			texts = append(texts, s)
		}
	}
	sort.Strings(texts)

	lex := NewLexicon(v.def)
	for _, s := range texts {
		var winner owner
		if k, ok := lex.Keyword(s); ok {
			winner = owner{"keyword", k.String()}
		} else if b, ok := lex.Builtin(s); ok {
			winner = owner{"builtin", b.String()}
		}
		names := make([]string, 0, len(byText[s]))
		for _, o := range byText[s] {
			names = append(names, o.String())
		}
		v.add("LD003", diag.SeverityWarning, "spelling %q is shared by %s; %s wins", s, strings.Join(names, ", "), winner)
	}
}

func isOperatorText(s string) bool {
	if _, ok := OperatorForSymbol(s); ok {
		return true
	}
	return contains(punctuation, s)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func keywordIDNames() []string {
	var out []string
	for _, k := range Keywords() {
		out = append(out, k.String())
	}
	return out
}

func builtinIDNames() []string {
	var out []string
	for _, b := range Builtins() {
		out = append(out, b.String())
	}
	return out
}

func operatorIDNames() []string {
	var out []string
	for _, op := range Operators() {
		out = append(out, op.String())
	}
	return out
}
