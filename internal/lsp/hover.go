package lsp

import (
	"fmt"
	"strings"

	"langgen/internal/langdef"
	"langgen/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// HoverAt explains the token under the cursor in canonical terms.
func HoverAt(doc *Document, pos protocol.Position) *protocol.Hover {
	an := doc.Analysis()
	p, ok := positionToByte(doc.Text, pos)
	if !ok {
		return nil
	}
	tok, i, ok := tokenAt(an.Tokens, p)
	if !ok {
		return nil
	}

	var kindLabel, signature, docText string
	switch {
	case tok.Keyword != langdef.KeywordNone:
		kindLabel = "keyword"
		signature = "`" + tok.Keyword.String() + "`"
		docText = tok.Keyword.Doc()
	case tok.Type == token.TRUE || tok.Type == token.FALSE:
		kindLabel = "literal"
		signature = "`" + strings.ToLower(string(tok.Type)) + "`"
	case tok.IsBuiltin():
		kindLabel = "builtin"
		signature, _ = builtinSignature(doc.Def, tok.Builtin)
		docText = fmt.Sprintf("%s\n\nCanonical name: `%s`", tok.Builtin.Doc(), tok.Builtin.String())
	case tok.Operator != langdef.OperatorNone:
		kindLabel = "operator"
		signature = fmt.Sprintf("`%s` (%s)", tok.Operator.Symbol(), tok.Operator.String())
	case tok.Type == token.IDENTIFIER && an.Program != nil:
		d, found := lookupName(declarations(an.Program), tok.Literal, tok.Line, isCallee(an.Tokens, i))
		if !found {
			return nil
		}
		switch d.Kind {
		case declFunction:
			kindLabel = "function"
			signature = signatureLabel(d.Name, d.Params)
		case declParameter:
			kindLabel = "parameter"
			signature = "of " + signatureLabel(d.Func.Name.Value, d.Func.ParamNames())
		default:
			kindLabel = "variable"
		}
	default:
		return nil
	}

	lines := []string{fmt.Sprintf("%s: %s", kindLabel, tok.Raw)}
	if signature != "" {
		lines = append(lines, signature)
	}
	if docText != "" {
		lines = append(lines, "", docText)
	}
	r := rangeFor(doc.Text, tok.Line, tok.Col, len(tok.Raw))
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: strings.Join(lines, "\n")},
		Range:    &r,
	}
}

func signatureLabel(name string, params []string) string {
	return name + "(" + strings.Join(params, ", ") + ")"
}

// builtinSignature rewrites the canonical signature with the language's
// spelling and returns the parameters of its last form.
func builtinSignature(def *langdef.Definition, b langdef.Builtin) (string, []string) {
	id := b.String()
	label := strings.ReplaceAll(b.Signature(), id+"(", def.BuiltinSpelling(b)+"(")
	open := strings.LastIndex(label, "(")
	end := strings.LastIndex(label, ")")
	if open < 0 || end <= open+1 {
		return label, nil
	}
	return label, strings.Split(label[open+1:end], ", ")
}
