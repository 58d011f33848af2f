package lsp

import (
	"errors"
	"fmt"

	"langgen/internal/config"
	"langgen/internal/diag"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "langgen"

// Diagnostics reports everything wrong with doc, including a missing or
// broken language definition.
func Diagnostics(doc *Document) []protocol.Diagnostic {
	ds := append([]diag.Diagnostic{}, doc.Analysis().Diagnostics...)
	if doc.DefErr != nil {
		msg := fmt.Sprintf("language definition %s: %v", doc.DefPath, doc.DefErr)
		sev := diag.SeverityError
		if errors.Is(doc.DefErr, config.ErrNoDefinition) {
			msg = "no language definition found next to this file"
			sev = diag.SeverityWarning
		}
		ds = append([]diag.Diagnostic{{Code: "LS001", Message: msg, Severity: sev, Range: diag.Range{Line: 1, Col: 1}}}, ds...)
	}
	return ToLspDiagnostics(doc.Text, ds)
}

func ToLspDiagnostics(text string, ds []diag.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(ds))
	for _, d := range ds {
		severity := protocol.DiagnosticSeverityError
		switch d.Severity {
		case diag.SeverityWarning:
			severity = protocol.DiagnosticSeverityWarning
		case diag.SeverityInfo:
			severity = protocol.DiagnosticSeverityInformation
		}

		pd := protocol.Diagnostic{
			Range:    rangeFor(text, d.Range.Line, d.Range.Col, d.Range.Length),
			Severity: &severity,
			Source:   ptrString(diagnosticSource),
			Message:  d.Message,
		}
		if d.Code != "" {
			code := protocol.IntegerOrString{Value: d.Code}
			pd.Code = &code
		}
		out = append(out, pd)
	}
	return out
}

func ptrString(s string) *string { return &s }
