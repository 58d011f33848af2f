package lsp

import (
	"strings"

	"langgen/internal/format"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Formatting replaces the whole document with its formatted form. A
// document that does not parse is left alone.
func Formatting(doc *Document, opts protocol.FormattingOptions) []protocol.TextEdit {
	formatted, err := format.Format(doc.Def, doc.Text, format.Options{Indent: formatIndentFromOptions(opts)})
	if err != nil || formatted == doc.Text {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{{Range: FullDocumentRange(doc.Text), NewText: formatted}}
}

func formatIndentFromOptions(opts protocol.FormattingOptions) string {
	insertSpaces := true
	if v, ok := opts[protocol.FormattingOptionInsertSpaces]; ok {
		if b, ok := v.(bool); ok {
			insertSpaces = b
		}
	}
	if !insertSpaces {
		return "\t"
	}

	tabSize := 2
	if v, ok := opts[protocol.FormattingOptionTabSize]; ok {
		switch n := v.(type) {
		case int:
			tabSize = n
		case int32:
			tabSize = int(n)
		case int64:
			tabSize = int(n)
		case uint32:
			tabSize = int(n)
		case float64:
			tabSize = int(n)
		}
	}
	if tabSize <= 0 {
		tabSize = 2
	}
	return strings.Repeat(" ", tabSize)
}
