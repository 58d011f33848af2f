package langdef

import (
	"sort"
	"unicode/utf8"
)

// Lexicon holds the reverse maps derived from a Definition, spelling to id.
type Lexicon struct {
	def       *Definition
	keywords  map[string]Keyword
	builtins  map[string]Builtin
	operators map[string]Operator
	literals  map[string]bool
	symbolic  []string
}

func NewLexicon(def *Definition) *Lexicon {
	if def == nil {
		def = &Definition{}
	}
	l := &Lexicon{
		def:       def,
		keywords:  map[string]Keyword{},
		builtins:  map[string]Builtin{},
		operators: map[string]Operator{},
		literals:  map[string]bool{},
	}

	for _, e := range def.Keywords.Entries() {
		k, ok := LookupKeyword(e.ID)
		if !ok {
			continue
		}
		if s, ok := def.Keywords.Get(e.ID); ok {
			l.keywords[s] = k
		}
	}

	// Defaults first so an explicit spelling beats a fallback one.
	for _, b := range Builtins() {
		if _, ok := def.Builtins.Get(b.String()); !ok {
			l.builtins[b.String()] = b
		}
	}
	for _, e := range def.Builtins.Entries() {
		b, ok := LookupBuiltin(e.ID)
		if !ok {
			continue
		}
		if s, ok := def.Builtins.Get(e.ID); ok {
			l.builtins[s] = b
		}
	}

	for _, op := range Operators() {
		l.operators[op.Symbol()] = op
	}
	for _, e := range def.Operators.Entries() {
		op, ok := LookupOperator(e.ID)
		if !ok {
			continue
		}
		if s, ok := def.Operators.Get(e.ID); ok {
			l.operators[s] = op
		}
	}

	if _, ok := def.KeywordSpelling(KeywordTrue); !ok {
		l.literals["true"] = true
	}
	if _, ok := def.KeywordSpelling(KeywordFalse); !ok {
		l.literals["false"] = false
	}

	seen := map[string]bool{}
	add := func(s string) {
		if !IsWord(s) && !seen[s] {
			seen[s] = true
			l.symbolic = append(l.symbolic, s)
		}
	}
	for s := range l.keywords {
		add(s)
	}
	for s := range l.builtins {
		add(s)
	}
	for _, e := range def.Operators.Entries() {
		if s, ok := def.Operators.Get(e.ID); ok {
			add(s)
		}
	}
	sort.Slice(l.symbolic, func(i, j int) bool {
		a, b := l.symbolic[i], l.symbolic[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return l
}

func (l *Lexicon) Definition() *Definition { return l.def }

func (l *Lexicon) Keyword(s string) (Keyword, bool) {
	k, ok := l.keywords[s]
	return k, ok
}

func (l *Lexicon) Builtin(s string) (Builtin, bool) {
	b, ok := l.builtins[s]
	return b, ok
}

// Operator resolves both fixed symbols and alias spellings.
func (l *Lexicon) Operator(s string) (Operator, bool) {
	op, ok := l.operators[s]
	return op, ok
}

// BoolLiteral resolves the English true/false spellings that stay
// available while the definition leaves those keywords unset.
func (l *Lexicon) BoolLiteral(s string) (value, ok bool) {
	value, ok = l.literals[s]
	return value, ok
}

// MatchSymbolic returns the longest non-word spelling that prefixes src.
// A spelling ending in a word rune must not run into a following word rune.
func (l *Lexicon) MatchSymbolic(src string) (string, bool) {
	for _, s := range l.symbolic {
		if len(s) > len(src) || src[:len(s)] != s {
			continue
		}
		last, _ := utf8.DecodeLastRuneInString(s)
		next, _ := utf8.DecodeRuneInString(src[len(s):])
		if len(src) > len(s) && IsWordRune(last) && IsWordRune(next) {
			continue
		}
		return s, true
	}
	return "", false
}

// Spellings lists every spelling the lexicon resolves to a keyword or builtin.
func (l *Lexicon) Spellings() (keywords map[string]Keyword, builtins map[string]Builtin) {
	keywords = make(map[string]Keyword, len(l.keywords))
	for s, k := range l.keywords {
		keywords[s] = k
	}
	builtins = make(map[string]Builtin, len(l.builtins))
	for s, b := range l.builtins {
		builtins[s] = b
	}
	return keywords, builtins
}
