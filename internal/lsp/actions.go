package lsp

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CodeActions offers quick fixes for the diagnostics the client sends back.
func CodeActions(doc *Document, diagnostics []protocol.Diagnostic) []protocol.CodeAction {
	actions := []protocol.CodeAction{}
	for _, d := range diagnostics {
		switch diagnosticCode(d) {
		case "LN001":
			if action, ok := MakeRemoveLineAction(doc.URI, doc.Text, d.Range, "Remove unreachable code"); ok {
				actions = append(actions, action)
			}
		case "LX001":
			actions = append(actions, makeEditAction(doc.URI, "Remove character", d.Range, ""))
		}
	}
	return actions
}

func diagnosticCode(d protocol.Diagnostic) string {
	if d.Code == nil {
		return ""
	}
	switch v := d.Code.Value.(type) {
	case string:
		return v
	case protocol.Integer:
		return fmt.Sprintf("%d", v)
	default:
		return ""
	}
}

func MakeRemoveLineAction(uri string, text string, r protocol.Range, title string) (protocol.CodeAction, bool) {
	lines := splitLines(text)
	startLine := int(r.Start.Line)
	if startLine < 0 || startLine >= len(lines) {
		return protocol.CodeAction{}, false
	}

	end := protocol.Position{Line: uint32(startLine), Character: uint32(utf16Len(strings.TrimSuffix(lines[startLine], "\r")))}
	if startLine+1 < len(lines) {
		end = protocol.Position{Line: uint32(startLine + 1), Character: 0}
	}
	r = protocol.Range{Start: protocol.Position{Line: uint32(startLine)}, End: end}
	return makeEditAction(uri, title, r, ""), true
}

func makeEditAction(uri, title string, r protocol.Range, newText string) protocol.CodeAction {
	edit := protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			protocol.DocumentUri(uri): {{Range: r, NewText: newText}},
		},
	}
	kind := protocol.CodeActionKindQuickFix
	return protocol.CodeAction{Title: title, Kind: &kind, Edit: &edit}
}
