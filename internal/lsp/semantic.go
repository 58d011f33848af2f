package lsp

import (
	"sort"
	"strings"

	"langgen/internal/ast"
	"langgen/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// semantic token type indices (must match TokenTypes order)
const (
	ttKeyword = iota
	ttString
	ttNumber
	ttOperator
	ttFunction
	ttVariable
	ttParameter
	ttComment
)

const (
	modDecl = 1 << iota
	modDefaultLibrary
)

var TokenTypes = []string{
	string(protocol.SemanticTokenTypeKeyword),
	string(protocol.SemanticTokenTypeString),
	string(protocol.SemanticTokenTypeNumber),
	string(protocol.SemanticTokenTypeOperator),
	string(protocol.SemanticTokenTypeFunction),
	string(protocol.SemanticTokenTypeVariable),
	string(protocol.SemanticTokenTypeParameter),
	string(protocol.SemanticTokenTypeComment),
}

var TokenModifiers = []string{
	string(protocol.SemanticTokenModifierDeclaration),
	string(protocol.SemanticTokenModifierDefaultLibrary),
}

func Legend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{TokenTypes: TokenTypes, TokenModifiers: TokenModifiers}
}

type SemTok struct {
	Line   int
	Col    int
	Length int
	Type   int
	Mods   int
}

// Classify maps a token to a semantic type without looking at the tree.
func Classify(tok token.Token) (typ, mods int, ok bool) {
	switch {
	case tok.Keyword != 0, tok.Type == token.TRUE, tok.Type == token.FALSE:
		return ttKeyword, 0, true
	case tok.IsBuiltin():
		return ttFunction, modDefaultLibrary, true
	case tok.Operator != 0:
		return ttOperator, 0, true
	case tok.Type == token.STRING:
		return ttString, 0, true
	case tok.Type == token.NUMBER:
		return ttNumber, 0, true
	case tok.Type == token.IDENTIFIER:
		return ttVariable, 0, true
	}
	return 0, 0, false
}

type posKey struct {
	Line int
	Col  int
}

type nameClass struct {
	typ  int
	mods int
}

// SemanticTokens classifies every token of doc. Identifiers are refined
// from the tree when the document parses: function names, parameters
// inside their function, and declarations.
func SemanticTokens(doc *Document) []SemTok {
	an := doc.Analysis()
	names := map[posKey]nameClass{}
	if an.Program != nil {
		classifyNames(an.Program, nil, names)
	}

	sem := make([]SemTok, 0, len(an.Tokens))
	for _, tok := range an.Tokens {
		typ, mods, ok := Classify(tok)
		if !ok {
			continue
		}
		if tok.Type == token.IDENTIFIER {
			if c, found := names[posKey{tok.Line, tok.Col}]; found {
				typ, mods = c.typ, c.mods
			}
		}
		sem = append(sem, SemTok{Line: tok.Line, Col: tok.Col, Length: len(tok.Raw), Type: typ, Mods: mods})
	}

	for i, line := range splitLines(doc.Text) {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "#") {
			comment := strings.TrimRight(trimmed, "\r")
			sem = append(sem, SemTok{Line: i + 1, Col: len(line) - len(trimmed) + 1, Length: len(comment), Type: ttComment})
		}
	}
	return sem
}

func classifyNames(n ast.Node, params map[string]bool, out map[posKey]nameClass) {
	mark := func(id *ast.Identifier, c nameClass) {
		out[posKey{id.Token.Line, id.Token.Col}] = c
	}
	variable := func(id *ast.Identifier, mods int) {
		if params[id.Value] {
			mark(id, nameClass{typ: ttParameter})
			return
		}
		mark(id, nameClass{typ: ttVariable, mods: mods})
	}

	ast.Inspect(n, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FunctionStatement:
			mark(n.Name, nameClass{typ: ttFunction, mods: modDecl})
			inner := map[string]bool{}
			for _, p := range n.Parameters {
				inner[p.Value] = true
				mark(p, nameClass{typ: ttParameter, mods: modDecl})
			}
			classifyNames(n.Body, inner, out)
			return false
		case *ast.VarStatement:
			variable(n.Name, modDecl)
			if n.Value != nil {
				classifyNames(n.Value, params, out)
			}
			return false
		case *ast.AssignStatement:
			variable(n.Name, 0)
			classifyNames(n.Value, params, out)
			return false
		case *ast.CallExpression:
			if !n.IsBuiltin {
				mark(n.Function, nameClass{typ: ttFunction})
			}
			for _, a := range n.Arguments {
				classifyNames(a, params, out)
			}
			return false
		case *ast.Identifier:
			variable(n, 0)
		}
		return true
	})
}

// EncodeSemanticTokens produces the relative LSP encoding, converting byte
// columns to UTF-16 units.
func EncodeSemanticTokens(text string, toks []SemTok) []uint32 {
	sort.SliceStable(toks, func(i, j int) bool {
		if toks[i].Line != toks[j].Line {
			return toks[i].Line < toks[j].Line
		}
		return toks[i].Col < toks[j].Col
	})

	lines := splitLines(text)
	data := []uint32{}
	prevLine, prevChar := 0, uint32(0)
	for _, t := range toks {
		if t.Length <= 0 || t.Line < 1 || t.Line > len(lines) {
			continue
		}
		lineText := lines[t.Line-1]
		start := byteColToUTF16(lineText, t.Col)
		end := byteColToUTF16(lineText, t.Col+t.Length)

		line0 := t.Line - 1
		deltaLine := line0 - prevLine
		deltaStart := start
		if deltaLine == 0 {
			deltaStart = start - prevChar
		}
		data = append(data, uint32(deltaLine), deltaStart, end-start, uint32(t.Type), uint32(t.Mods))
		prevLine, prevChar = line0, start
	}
	return data
}
