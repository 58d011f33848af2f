package lsp

import (
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Pos is a 1-based line and byte column, the unit tokens use.
type Pos struct {
	Line int
	Col  int
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func runeUnits(r rune) int {
	n := utf16.RuneLen(r)
	if n < 0 {
		n = 1
	}
	return n
}

func byteColToUTF16(lineText string, byteCol int) uint32 {
	if byteCol <= 1 {
		return 0
	}
	limit := byteCol - 1
	if limit > len(lineText) {
		limit = len(lineText)
	}
	var count uint32
	for _, r := range lineText[:limit] {
		count += uint32(runeUnits(r))
	}
	return count
}

func utf16ColToByte(lineText string, utf16Col int) int {
	if utf16Col <= 0 {
		return 1
	}
	count := 0
	for idx, r := range lineText {
		n := runeUnits(r)
		if count+n > utf16Col {
			return idx + 1
		}
		count += n
	}
	return len(lineText) + 1
}

func utf16Len(s string) int {
	count := 0
	for _, r := range s {
		count += runeUnits(r)
	}
	return count
}

func positionToByte(text string, pos protocol.Position) (Pos, bool) {
	lines := splitLines(text)
	lineIdx := int(pos.Line)
	if lineIdx < 0 || lineIdx >= len(lines) {
		return Pos{}, false
	}
	lineText := strings.TrimSuffix(lines[lineIdx], "\r")
	return Pos{Line: lineIdx + 1, Col: utf16ColToByte(lineText, int(pos.Character))}, true
}

// rangeFor converts a byte span on one line into an LSP range.
func rangeFor(text string, line, col, length int) protocol.Range {
	lines := splitLines(text)
	if line <= 0 || line > len(lines) {
		return protocol.Range{}
	}
	lineText := lines[line-1]
	if length < 1 {
		length = 1
	}
	startChar := byteColToUTF16(lineText, col)
	endChar := byteColToUTF16(lineText, col+length)
	if endChar <= startChar {
		endChar = startChar + 1
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line - 1), Character: startChar},
		End:   protocol.Position{Line: uint32(line - 1), Character: endChar},
	}
}

// EndPositionUTF16 returns the LSP position at the end of text.
func EndPositionUTF16(text string) protocol.Position {
	var line, col uint32
	for _, r := range text {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col += uint32(runeUnits(r))
	}
	return protocol.Position{Line: line, Character: col}
}

func FullDocumentRange(text string) protocol.Range {
	return protocol.Range{End: EndPositionUTF16(text)}
}
