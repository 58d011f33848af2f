package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"langgen/internal/diag"
	"langgen/internal/langdef"
	"langgen/internal/token"
)

// LexError reports a character no token rule accepts.
type LexError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
}

type Option func(*Lexer)

// Lenient drops unmatched characters instead of failing. Each drop is
// still recorded as a warning diagnostic.
func Lenient() Option {
	return func(l *Lexer) { l.lenient = true }
}

type Lexer struct {
	lex     *langdef.Lexicon
	lenient bool
	diags   []diag.Diagnostic

	// current line
	src  string
	line int
	pos  int
}

func New(def *langdef.Definition, opts ...Option) *Lexer {
	l := &Lexer{lex: langdef.NewLexicon(def)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize is shorthand for New(def, opts...).Tokenize(src).
func Tokenize(def *langdef.Definition, src string, opts ...Option) ([]token.Token, error) {
	return New(def, opts...).Tokenize(src)
}

func (l *Lexer) Lexicon() *langdef.Lexicon { return l.lex }

func (l *Lexer) Diagnostics() []diag.Diagnostic { return l.diags }

// Tokenize splits src line by line. Blank lines and lines whose first
// non-blank character is '#' produce no tokens.
func (l *Lexer) Tokenize(src string) ([]token.Token, error) {
	l.diags = nil
	var out []token.Token
	for i, text := range strings.Split(src, "\n") {
		text = strings.TrimSuffix(text, "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		l.src, l.line, l.pos = text, i+1, 0
		toks, err := l.scanLine()
		out = append(out, toks...)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

func (l *Lexer) scanLine() ([]token.Token, error) {
	var out []token.Token
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if unicode.IsSpace(r) {
			l.pos += size
			continue
		}

		start := l.pos
		if s, ok := l.lex.MatchSymbolic(l.src[l.pos:]); ok {
			l.pos += len(s)
			out = append(out, l.classify(s, start))
			continue
		}

		switch {
		case r == '"' || r == '\'':
			raw, ok := l.readString(r)
			if !ok {
				if err := l.reject(start, "Unterminated string"); err != nil {
					return out, err
				}
				l.pos = start + size
				continue
			}
			out = append(out, l.classify(raw, start))
		case langdef.IsWordStart(r):
			out = append(out, l.classify(l.readWord(), start))
		case r >= '0' && r <= '9':
			out = append(out, l.classify(l.readNumber(), start))
		default:
			if op, ok := l.readOperator(); ok {
				out = append(out, l.classify(op, start))
				continue
			}
			l.pos += size
			if err := l.reject(start, fmt.Sprintf("Unexpected character '%c'", r)); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

func (l *Lexer) reject(start int, msg string) error {
	sev := diag.SeverityError
	if l.lenient {
		sev = diag.SeverityWarning
	}
	l.diags = append(l.diags, diag.Diagnostic{
		Code:     "LX001",
		Message:  msg,
		Severity: sev,
		Range:    diag.Range{Line: l.line, Col: start + 1, Length: 1},
	})
	if l.lenient {
		return nil
	}
	return &LexError{Message: msg, Line: l.line, Column: start + 1}
}

func (l *Lexer) readWord() string {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !langdef.IsWordRune(r) {
			break
		}
		l.pos += size
	}
	return l.src[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	l.skipDigits()
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		l.pos++
		l.skipDigits()
	}
	return l.src[start:l.pos]
}

func (l *Lexer) skipDigits() {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
}

// readString consumes a quoted string including both quotes. It reports
// false when the line ends before the closing quote.
func (l *Lexer) readString(quote rune) (string, bool) {
	start := l.pos
	i := l.pos + 1
	for i < len(l.src) {
		switch rune(l.src[i]) {
		case '\\':
			i += 2
			continue
		case quote:
			l.pos = i + 1
			return l.src[start:l.pos], true
		}
		i++
	}
	return "", false
}

var twoCharOps = []string{"==", "!=", "<=", ">=", "&&", "||"}

const singleCharOps = "+-*/=<>(){},"

func (l *Lexer) readOperator() (string, bool) {
	rest := l.src[l.pos:]
	for _, op := range twoCharOps {
		if strings.HasPrefix(rest, op) {
			l.pos += 2
			return op, true
		}
	}
	if strings.IndexByte(singleCharOps, rest[0]) >= 0 {
		l.pos++
		return rest[:1], true
	}
	return "", false
}

// classify assigns a tag to one lexeme. The order of checks is the
// language contract: keyword, builtin, number, string, true/false
// fallback, operator or delimiter, identifier.
func (l *Lexer) classify(raw string, start int) token.Token {
	tok := token.Token{Literal: raw, Raw: raw, Line: l.line, Col: start + 1}

	if k, ok := l.lex.Keyword(raw); ok {
		tok.Type = token.KeywordType(k)
		tok.Keyword = k
		return tok
	}
	if b, ok := l.lex.Builtin(raw); ok {
		tok.Type = token.BuiltinType(b)
		tok.Builtin = b
		return tok
	}
	if langdef.IsNumeric(raw) {
		tok.Type = token.NUMBER
		return tok
	}
	if raw[0] == '"' || raw[0] == '\'' {
		tok.Type = token.STRING
		tok.Literal = unquote(raw)
		return tok
	}
	if v, ok := l.lex.BoolLiteral(raw); ok {
		tok.Type = token.FALSE
		if v {
			tok.Type = token.TRUE
		}
		return tok
	}
	if op, ok := l.lex.Operator(raw); ok {
		tok.Type = token.OperatorType(op)
		tok.Operator = op
		return tok
	}
	if t, ok := token.LookupDelimiter(raw); ok {
		tok.Type = t
		return tok
	}
	tok.Type = token.IDENTIFIER
	return tok
}

func unquote(raw string) string {
	body := raw[1 : len(raw)-1]
	if strings.IndexByte(body, '\\') < 0 {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\', '"', '\'':
			b.WriteByte(body[i])
		default:
			// Unknown escape: keep the backslash literally
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
