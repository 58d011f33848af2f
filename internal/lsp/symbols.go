package lsp

import (
	"langgen/internal/ast"
	"langgen/internal/langdef"
	"langgen/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

type declKind int

const (
	declVariable declKind = iota
	declFunction
	declParameter
)

type declaration struct {
	Name   string
	Kind   declKind
	Params []string
	Ident  *ast.Identifier
	// Func is the enclosing function for parameters.
	Func *ast.FunctionStatement
}

// declarations lists names in source order, each function and variable
// once at its first declaration.
func declarations(prog *ast.Program) []declaration {
	if prog == nil {
		return nil
	}
	var out []declaration
	seen := map[string]bool{}
	add := func(d declaration) {
		key := d.Name
		if d.Kind == declFunction {
			key = "func " + key
		}
		if d.Kind != declParameter && seen[key] {
			return
		}
		seen[key] = true
		out = append(out, d)
	}
	ast.Inspect(prog, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FunctionStatement:
			add(declaration{Name: n.Name.Value, Kind: declFunction, Params: n.ParamNames(), Ident: n.Name})
			for _, p := range n.Parameters {
				add(declaration{Name: p.Value, Kind: declParameter, Ident: p, Func: n})
			}
		case *ast.VarStatement:
			add(declaration{Name: n.Name.Value, Kind: declVariable, Ident: n.Name})
		case *ast.AssignStatement:
			add(declaration{Name: n.Name.Value, Kind: declVariable, Ident: n.Name})
		}
		return true
	})
	return out
}

// functionsFromTokens recovers function headers when the document does
// not parse.
func functionsFromTokens(toks []token.Token) []declaration {
	var out []declaration
	for i := 0; i+2 < len(toks); i++ {
		if !toks[i].IsKeyword(langdef.KeywordFunction) || toks[i+1].Type != token.IDENTIFIER || toks[i+2].Type != token.LPAREN {
			continue
		}
		d := declaration{Name: toks[i+1].Literal, Kind: declFunction, Params: []string{}}
		for j := i + 3; j < len(toks) && toks[j].Type != token.RPAREN; j++ {
			if toks[j].Type == token.IDENTIFIER {
				d.Params = append(d.Params, toks[j].Literal)
			}
		}
		out = append(out, d)
	}
	return out
}

func findFunction(decls []declaration, name string) (declaration, bool) {
	for _, d := range decls {
		if d.Kind == declFunction && d.Name == name {
			return d, true
		}
	}
	return declaration{}, false
}

func within(f *ast.FunctionStatement, line int) bool {
	return f != nil && line >= f.Token.Line && line <= f.Body.Rbrace.Line
}

// lookupName resolves an identifier use. A parameter wins inside its own
// function, then a function of that name when called, then a variable.
func lookupName(decls []declaration, name string, line int, call bool) (declaration, bool) {
	for _, d := range decls {
		if d.Kind == declParameter && d.Name == name && within(d.Func, line) {
			return d, true
		}
	}
	if call {
		return findFunction(decls, name)
	}
	for _, d := range decls {
		if d.Kind == declVariable && d.Name == name {
			return d, true
		}
	}
	return findFunction(decls, name)
}

// tokenAt finds the token under pos, or the one ending right before it.
func tokenAt(toks []token.Token, pos Pos) (token.Token, int, bool) {
	for _, col := range []int{pos.Col, pos.Col - 1} {
		for i, t := range toks {
			if t.Line == pos.Line && col >= t.Col && col < t.Col+len(t.Raw) {
				return t, i, true
			}
		}
	}
	return token.Token{}, -1, false
}

func isCallee(toks []token.Token, i int) bool {
	return i+1 < len(toks) && toks[i+1].Type == token.LPAREN
}

// DefinitionAt jumps from a name to where it is declared.
func DefinitionAt(doc *Document, pos protocol.Position) []protocol.Location {
	an := doc.Analysis()
	p, ok := positionToByte(doc.Text, pos)
	if !ok || an.Program == nil {
		return nil
	}
	tok, i, ok := tokenAt(an.Tokens, p)
	if !ok || tok.Type != token.IDENTIFIER {
		return nil
	}
	d, ok := lookupName(declarations(an.Program), tok.Literal, tok.Line, isCallee(an.Tokens, i))
	if !ok {
		return nil
	}
	return []protocol.Location{{
		URI:   protocol.DocumentUri(doc.URI),
		Range: rangeFor(doc.Text, d.Ident.Token.Line, d.Ident.Token.Col, len(d.Ident.Token.Raw)),
	}}
}

// DocumentSymbols lists functions with their parameters, and variables.
func DocumentSymbols(doc *Document) []protocol.DocumentSymbol {
	an := doc.Analysis()
	out := []protocol.DocumentSymbol{}
	current := -1
	for _, d := range declarations(an.Program) {
		r := rangeFor(doc.Text, d.Ident.Token.Line, d.Ident.Token.Col, len(d.Ident.Token.Raw))
		sym := protocol.DocumentSymbol{Name: d.Name, Range: r, SelectionRange: r}
		switch d.Kind {
		case declFunction:
			sym.Kind = protocol.SymbolKindFunction
			sym.Detail = ptrString(signatureLabel(d.Name, d.Params))
			out = append(out, sym)
			current = len(out) - 1
		case declParameter:
			sym.Kind = protocol.SymbolKindVariable
			if current >= 0 && out[current].Name == d.Func.Name.Value {
				out[current].Children = append(out[current].Children, sym)
			}
		default:
			sym.Kind = protocol.SymbolKindVariable
			out = append(out, sym)
			current = -1
		}
	}
	return out
}
