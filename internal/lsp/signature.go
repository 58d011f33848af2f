package lsp

import (
	"strings"

	"langgen/internal/token"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

type callFrame struct {
	callee    token.Token
	hasCallee bool
	commas    int
}

// SignatureHelpAt shows the signature of the innermost open call.
func SignatureHelpAt(doc *Document, pos protocol.Position) *protocol.SignatureHelp {
	an := doc.Analysis()
	p, ok := positionToByte(doc.Text, pos)
	if !ok {
		return nil
	}

	var stack []callFrame
	for i, t := range an.Tokens {
		if t.Line > p.Line || (t.Line == p.Line && t.Col >= p.Col) {
			break
		}
		switch t.Type {
		case token.LPAREN:
			fr := callFrame{}
			if i > 0 && (an.Tokens[i-1].Type == token.IDENTIFIER || an.Tokens[i-1].IsBuiltin()) {
				fr.callee, fr.hasCallee = an.Tokens[i-1], true
			}
			stack = append(stack, fr)
		case token.RPAREN:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case token.COMMA:
			if len(stack) > 0 {
				stack[len(stack)-1].commas++
			}
		}
	}
	if len(stack) == 0 || !stack[len(stack)-1].hasCallee {
		return nil
	}
	fr := stack[len(stack)-1]

	var label string
	var params []string
	if fr.callee.IsBuiltin() {
		label, params = builtinSignature(doc.Def, fr.callee.Builtin)
	} else {
		decls := declarations(an.Program)
		if an.Program == nil {
			decls = functionsFromTokens(an.Tokens)
		}
		d, found := findFunction(decls, fr.callee.Literal)
		if !found {
			return nil
		}
		label, params = signatureLabel(d.Name, d.Params), d.Params
	}

	infos := make([]protocol.ParameterInformation, 0, len(params))
	for _, param := range params {
		infos = append(infos, protocol.ParameterInformation{Label: param})
	}
	active := fr.commas
	if n := len(params); n > 0 && active >= n && strings.HasSuffix(params[n-1], "...") {
		active = n - 1
	}
	activeSig := protocol.UInteger(0)
	activeParam := protocol.UInteger(active)
	return &protocol.SignatureHelp{
		Signatures:      []protocol.SignatureInformation{{Label: label, Parameters: infos}},
		ActiveSignature: &activeSig,
		ActiveParameter: &activeParam,
	}
}
