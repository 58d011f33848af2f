package format

import (
	"fmt"
	"strings"

	"langgen/internal/ast"
	"langgen/internal/langdef"
	"langgen/internal/object"
	"langgen/internal/parser"
)

type comment struct {
	line int
	text string
}

type printer struct {
	def         *langdef.Definition
	lex         *langdef.Lexicon
	indent      string
	level       int
	atLineStart bool
	buf         strings.Builder

	lines    []string
	comments []comment
	lastLine int
	// set right after '{' so a block never opens with a blank line
	noGap bool
}

func newPrinter(def *langdef.Definition, indent string, lines []string) *printer {
	if indent == "" {
		indent = "  "
	}
	p := &printer{
		def:         def,
		lex:         langdef.NewLexicon(def),
		indent:      indent,
		atLineStart: true,
		lines:       lines,
		noGap:       true,
	}
	for i, line := range lines {
		if t := strings.TrimSpace(line); strings.HasPrefix(t, "#") {
			p.comments = append(p.comments, comment{line: i + 1, text: t})
		}
	}
	return p
}

func (p *printer) String() string {
	out := p.buf.String()
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func (p *printer) write(s string) {
	if s == "" {
		return
	}
	if p.atLineStart {
		for i := 0; i < p.level; i++ {
			p.buf.WriteString(p.indent)
		}
		p.atLineStart = false
	}
	p.buf.WriteString(s)
}

func (p *printer) newline() {
	p.buf.WriteByte('\n')
	p.atLineStart = true
}

func (p *printer) hasBlankLineBetween(a, b int) bool {
	for i := a + 1; i < b && i <= len(p.lines); i++ {
		if i >= 1 && strings.TrimSpace(p.lines[i-1]) == "" {
			return true
		}
	}
	return false
}

// at prepares the output for an item that starts on source line: pending
// comments above it are emitted and one blank line is kept where the
// source had any.
func (p *printer) at(line int) {
	p.flushComments(line)
	p.gap(line)
}

func (p *printer) flushComments(before int) {
	for len(p.comments) > 0 && p.comments[0].line < before {
		c := p.comments[0]
		p.comments = p.comments[1:]
		p.gap(c.line)
		p.write(c.text)
		p.newline()
		p.lastLine = c.line
	}
}

func (p *printer) gap(line int) {
	if !p.noGap && p.hasBlankLineBetween(p.lastLine, line) {
		p.newline()
	}
	p.noGap = false
}

func (p *printer) errorf(n ast.Node, format string, args ...any) error {
	line, col := n.Pos()
	return &SpellingError{
		Language: p.def.DisplayName(),
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	}
}

/* -------------------- statements -------------------- */

func (p *printer) printProgram(prog *ast.Program) error {
	for _, s := range prog.Statements {
		if err := p.printStatementLine(s); err != nil {
			return err
		}
	}
	p.flushComments(len(p.lines) + 1)
	return nil
}

func (p *printer) printStatementLine(s ast.Statement) error {
	line, _ := s.Pos()
	p.at(line)
	if err := p.printStatement(s); err != nil {
		return err
	}
	p.newline()
	p.lastLine = endLine(s)
	return nil
}

func (p *printer) printStatement(s ast.Statement) error {
	switch s := s.(type) {
	case *ast.VarStatement:
		kw, err := p.keyword(s, langdef.KeywordVariable)
		if err != nil {
			return err
		}
		name, err := p.name(s.Name)
		if err != nil {
			return err
		}
		p.write(kw + " " + name)
		if s.Value == nil {
			return nil
		}
		value, err := p.expr(s.Value)
		if err != nil {
			return err
		}
		p.write(" " + p.operator(langdef.OperatorAssign) + " " + value)
	case *ast.AssignStatement:
		name, err := p.name(s.Name)
		if err != nil {
			return err
		}
		value, err := p.expr(s.Value)
		if err != nil {
			return err
		}
		p.write(name + " " + p.operator(langdef.OperatorAssign) + " " + value)
	case *ast.FunctionStatement:
		kw, err := p.keyword(s, langdef.KeywordFunction)
		if err != nil {
			return err
		}
		name, err := p.name(s.Name)
		if err != nil {
			return err
		}
		params := make([]string, len(s.Parameters))
		for i, param := range s.Parameters {
			if params[i], err = p.name(param); err != nil {
				return err
			}
		}
		p.write(kw + " " + name + "(" + strings.Join(params, ", ") + ") ")
		return p.printBlock(s.Body)
	case *ast.IfStatement:
		return p.printIf(s)
	case *ast.LoopStatement:
		kw, err := p.keyword(s, langdef.KeywordLoop)
		if err != nil {
			return err
		}
		cond, err := p.expr(s.Condition)
		if err != nil {
			return err
		}
		p.write(kw + " " + cond + " ")
		return p.printBlock(s.Body)
	case *ast.ReturnStatement:
		kw, err := p.keyword(s, langdef.KeywordReturn)
		if err != nil {
			return err
		}
		p.write(kw)
		if s.ReturnValue == nil {
			return nil
		}
		value, err := p.expr(s.ReturnValue)
		if err != nil {
			return err
		}
		p.write(" " + value)
	case *ast.ExpressionStatement:
		value, err := p.expr(s.Expression)
		if err != nil {
			return err
		}
		p.write(value)
	case *ast.BlockStatement:
		return p.printBlock(s)
	default:
		return p.errorf(s, "unsupported statement %T", s)
	}
	return nil
}

func (p *printer) printIf(s *ast.IfStatement) error {
	kw, err := p.keyword(s, langdef.KeywordIf)
	if err != nil {
		return err
	}
	cond, err := p.expr(s.Condition)
	if err != nil {
		return err
	}
	p.write(kw + " " + cond + " ")
	if err := p.printBlock(s.Consequence); err != nil {
		return err
	}
	if s.Alternative == nil {
		return nil
	}
	kw, err = p.keyword(s, langdef.KeywordElse)
	if err != nil {
		return err
	}
	p.write(" " + kw + " ")
	return p.printStatement(s.Alternative)
}

func (p *printer) printBlock(b *ast.BlockStatement) error {
	inner := len(b.Statements) > 0 || (len(p.comments) > 0 && p.comments[0].line < b.Rbrace.Line)
	if !inner {
		p.write("{}")
		return nil
	}
	p.write("{")
	p.newline()
	p.level++
	p.lastLine = b.Token.Line
	p.noGap = true
	for _, s := range b.Statements {
		if err := p.printStatementLine(s); err != nil {
			return err
		}
	}
	p.flushComments(b.Rbrace.Line)
	p.level--
	p.write("}")
	return nil
}

func endLine(s ast.Statement) int {
	end := 0
	ast.Inspect(s, func(n ast.Node) bool {
		if line, _ := n.Pos(); line > end {
			end = line
		}
		if b, ok := n.(*ast.BlockStatement); ok && b.Rbrace.Line > end {
			end = b.Rbrace.Line
		}
		return true
	})
	return end
}

/* -------------------- expressions -------------------- */

func (p *printer) expr(e ast.Expression) (string, error) {
	switch e := e.(type) {
	case *ast.Identifier:
		return p.name(e)
	case *ast.NumberLiteral:
		if e.Token.Raw != "" {
			return e.Token.Raw, nil
		}
		return object.FormatNumber(e.Value), nil
	case *ast.StringLiteral:
		return Quote(e.Value), nil
	case *ast.BooleanLiteral:
		if e.Value {
			return p.keyword(e, langdef.KeywordTrue)
		}
		return p.keyword(e, langdef.KeywordFalse)
	case *ast.NullLiteral:
		return p.keyword(e, langdef.KeywordNull)
	case *ast.PrefixExpression:
		right, err := p.expr(e.Right)
		if err != nil {
			return "", err
		}
		if _, ok := e.Right.(*ast.InfixExpression); ok {
			right = "(" + right + ")"
		}
		return "-" + right, nil
	case *ast.InfixExpression:
		return p.infix(e)
	case *ast.CallExpression:
		name := p.def.BuiltinSpelling(e.Builtin)
		if !e.IsBuiltin {
			var err error
			if name, err = p.name(e.Function); err != nil {
				return "", err
			}
		}
		args := make([]string, len(e.Arguments))
		for i, a := range e.Arguments {
			s, err := p.expr(a)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return name + "(" + strings.Join(args, ", ") + ")", nil
	}
	return "", p.errorf(e, "unsupported expression %T", e)
}

// infix adds only the parentheses the precedence table requires. All
// operators associate to the left.
func (p *printer) infix(e *ast.InfixExpression) (string, error) {
	prec := parser.Precedence(e.Operator)
	left, err := p.expr(e.Left)
	if err != nil {
		return "", err
	}
	if l, ok := e.Left.(*ast.InfixExpression); ok && parser.Precedence(l.Operator) < prec {
		left = "(" + left + ")"
	}
	right, err := p.expr(e.Right)
	if err != nil {
		return "", err
	}
	if r, ok := e.Right.(*ast.InfixExpression); ok && parser.Precedence(r.Operator) <= prec {
		right = "(" + right + ")"
	}

	op := string(e.Operator)
	if e.Token.Operator != langdef.OperatorNone {
		op = p.operator(e.Token.Operator)
	} else if id, ok := langdef.OperatorForSymbol(op); ok {
		op = p.operator(id)
	}
	return left + " " + op + " " + right, nil
}

/* -------------------- spellings -------------------- */

func (p *printer) keyword(n ast.Node, k langdef.Keyword) (string, error) {
	if s, ok := p.def.KeywordSpelling(k); ok {
		return s, nil
	}
	switch k {
	case langdef.KeywordTrue:
		return "true", nil
	case langdef.KeywordFalse:
		return "false", nil
	}
	return "", p.errorf(n, "keyword '%s' has no spelling", k)
}

// operator prefers the language's alias over the fixed symbol.
func (p *printer) operator(op langdef.Operator) string {
	if alias, ok := p.def.OperatorAlias(op); ok {
		return alias
	}
	return op.Symbol()
}

func (p *printer) name(id *ast.Identifier) (string, error) {
	s := id.Value
	_, isKeyword := p.lex.Keyword(s)
	_, isBuiltin := p.lex.Builtin(s)
	_, isOperator := p.lex.Operator(s)
	_, isLiteral := p.lex.BoolLiteral(s)
	if isKeyword || isBuiltin || isOperator || isLiteral {
		return "", p.errorf(id, "name '%s' is reserved", s)
	}
	return s, nil
}

// Quote renders s as a double-quoted literal the lexer reads back unchanged.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
