package lsp

import (
	"sort"
	"strings"
	"unicode/utf8"

	"langgen/internal/langdef"
	"langgen/internal/token"

	"github.com/sahilm/fuzzy"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type completionCandidate struct {
	label  string
	detail string
	doc    string
	kind   protocol.CompletionItemKind
	weight int
}

// CompletionItems offers the language's own spellings plus the names the
// document declares. With a word prefix before the cursor, candidates are
// fuzzy-ranked against it.
func CompletionItems(doc *Document, pos protocol.Position) []protocol.CompletionItem {
	p, ok := positionToByte(doc.Text, pos)
	if !ok {
		return nil
	}
	line := strings.TrimSuffix(splitLines(doc.Text)[p.Line-1], "\r")
	before := line[:min(p.Col-1, len(line))]
	if strings.HasPrefix(strings.TrimSpace(before), "#") || inString(before) {
		return nil
	}

	cands := completionCandidates(doc, p.Line)
	prefix := wordBefore(before)
	if prefix == "" {
		sort.SliceStable(cands, func(i, j int) bool {
			if cands[i].weight != cands[j].weight {
				return cands[i].weight < cands[j].weight
			}
			return cands[i].label < cands[j].label
		})
		return buildCompletionItems(cands)
	}

	labels := make([]string, len(cands))
	for i, c := range cands {
		labels[i] = c.label
	}
	matches := fuzzy.Find(prefix, labels)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		ci, cj := cands[matches[i].Index], cands[matches[j].Index]
		if ci.weight != cj.weight {
			return ci.weight < cj.weight
		}
		return ci.label < cj.label
	})
	ranked := make([]completionCandidate, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, cands[m.Index])
	}
	return buildCompletionItems(ranked)
}

func completionCandidates(doc *Document, line int) []completionCandidate {
	def := doc.Def
	an := doc.Analysis()
	seen := map[string]bool{}
	var out []completionCandidate
	add := func(c completionCandidate) {
		if c.label == "" || seen[c.label] {
			return
		}
		seen[c.label] = true
		out = append(out, c)
	}

	if an.Program != nil {
		for _, d := range declarations(an.Program) {
			switch d.Kind {
			case declFunction:
				add(completionCandidate{label: d.Name, detail: signatureLabel(d.Name, d.Params), kind: protocol.CompletionItemKindFunction})
			case declParameter:
				if within(d.Func, line) {
					add(completionCandidate{label: d.Name, detail: "parameter", kind: protocol.CompletionItemKindVariable, weight: 1})
				}
			default:
				add(completionCandidate{label: d.Name, detail: "variable", kind: protocol.CompletionItemKindVariable})
			}
		}
	} else {
		for _, t := range an.Tokens {
			if t.Type == token.IDENTIFIER {
				add(completionCandidate{label: t.Literal, kind: protocol.CompletionItemKindVariable})
			}
		}
	}

	for _, b := range langdef.Builtins() {
		label, _ := builtinSignature(def, b)
		add(completionCandidate{label: def.BuiltinSpelling(b), detail: label, doc: b.Doc(), kind: protocol.CompletionItemKindFunction, weight: 3})
	}
	for _, k := range langdef.Keywords() {
		if s, ok := def.KeywordSpelling(k); ok {
			add(completionCandidate{label: s, detail: "keyword " + k.String(), doc: k.Doc(), kind: protocol.CompletionItemKindKeyword, weight: 4})
		}
	}
	lex := langdef.NewLexicon(def)
	for _, s := range []string{"true", "false"} {
		if _, ok := lex.BoolLiteral(s); ok {
			add(completionCandidate{label: s, detail: "literal", kind: protocol.CompletionItemKindKeyword, weight: 4})
		}
	}
	for _, op := range langdef.Operators() {
		if alias, ok := def.OperatorAlias(op); ok {
			add(completionCandidate{label: alias, detail: "operator " + op.Symbol(), kind: protocol.CompletionItemKindOperator, weight: 5})
		}
	}
	return out
}

func buildCompletionItems(cands []completionCandidate) []protocol.CompletionItem {
	out := make([]protocol.CompletionItem, 0, len(cands))
	for _, c := range cands {
		kind := c.kind
		item := protocol.CompletionItem{Label: c.label, Kind: &kind}
		if c.detail != "" {
			item.Detail = ptrString(c.detail)
		}
		if c.doc != "" {
			item.Documentation = c.doc
		}
		out = append(out, item)
	}
	return out
}

func wordBefore(s string) string {
	end := len(s)
	start := end
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:start])
		if !langdef.IsWordRune(r) {
			break
		}
		start -= size
	}
	return s[start:end]
}

func inString(s string) bool {
	var quote byte
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote == 0 && (ch == '"' || ch == '\''):
			quote = ch
		case quote != 0 && escaped:
			escaped = false
		case quote != 0 && ch == '\\':
			escaped = true
		case quote != 0 && ch == quote:
			quote = 0
		}
	}
	return quote != 0
}
