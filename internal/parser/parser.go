package parser

import (
	"fmt"
	"strconv"

	"langgen/internal/ast"
	"langgen/internal/diag"
	"langgen/internal/langdef"
	"langgen/internal/token"
)

// ParseError is the first unmet expectation in a token stream. Parsing
// stops there; there is no recovery.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int
	err    *ParseError
	diags  []diag.Diagnostic

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

/* -------------------- precedence -------------------- */

const (
	_ int = iota
	LOWEST
	ORPREC      // ||
	ANDPREC     // &&
	EQUALS      // == !=
	LESSGREATER // < <= > >=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -X
)

var precedences = map[token.Type]int{
	token.OR:    ORPREC,
	token.AND:   ANDPREC,
	token.EQ:    EQUALS,
	token.NE:    EQUALS,
	token.LT:    LESSGREATER,
	token.LE:    LESSGREATER,
	token.GT:    LESSGREATER,
	token.GE:    LESSGREATER,
	token.PLUS:  SUM,
	token.MINUS: SUM,
	token.STAR:  PRODUCT,
	token.SLASH: PRODUCT,
}

// Precedence exposes the binding power of an infix operator.
func Precedence(t token.Type) int {
	if p, ok := precedences[t]; ok {
		return p
	}
	return LOWEST
}

/* -------------------- constructor -------------------- */

func New(tokens []token.Token) *Parser {
	p := &Parser{
		tokens:         tokens,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
	}

	p.curToken = p.tokenAt(0)
	p.peekToken = p.tokenAt(1)

	p.registerPrefix(token.IDENTIFIER, p.parseIdentifierOrCall)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.KeywordType(langdef.KeywordTrue), p.parseBooleanLiteral)
	p.registerPrefix(token.KeywordType(langdef.KeywordFalse), p.parseBooleanLiteral)
	p.registerPrefix(token.KeywordType(langdef.KeywordNull), p.parseNullLiteral)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	for _, b := range langdef.Builtins() {
		p.registerPrefix(token.BuiltinType(b), p.parseIdentifierOrCall)
	}

	for tt := range precedences {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	return p
}

// Parse is shorthand for New(tokens).ParseProgram().
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

func (p *Parser) Diagnostics() []diag.Diagnostic { return p.diags }

/* -------------------- program -------------------- */

// ParseProgram stops at the first error and then returns no program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Statements: []ast.Statement{}}

	for p.curToken.Type != token.EOF {
		stmt := p.parseStatement()
		if p.err != nil {
			return nil, p.err
		}
		program.Statements = append(program.Statements, stmt)
		p.nextToken()
	}
	return program, nil
}

/* -------------------- statements -------------------- */

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Keyword {
	case langdef.KeywordVariable:
		return p.parseVarStatement()
	case langdef.KeywordFunction:
		return p.parseFunctionStatement()
	case langdef.KeywordIf:
		return p.parseIfStatement()
	case langdef.KeywordLoop:
		return p.parseLoopStatement()
	case langdef.KeywordReturn:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVarStatement() ast.Statement {
	stmt := &ast.VarStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENTIFIER, "identifier after '"+stmt.Token.Literal+"'") {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if p.peekToken.Type == token.ASSIGN {
		p.nextToken() // '='
		p.nextToken() // start of value
		stmt.Value = p.parseExpression(LOWEST)
		if p.err != nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseFunctionStatement() ast.Statement {
	stmt := &ast.FunctionStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENTIFIER, "function name after '"+stmt.Token.Literal+"'") {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN, "'(' after function name") {
		return nil
	}
	stmt.Parameters = p.parseFunctionParameters()
	if p.err != nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE, "'{' before function body") {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	if p.err != nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	params := []*ast.Identifier{}

	if p.peekToken.Type == token.RPAREN {
		p.nextToken()
		return params
	}

	if !p.expectPeek(token.IDENTIFIER, "parameter name") {
		return nil
	}
	params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})

	for p.peekToken.Type == token.COMMA {
		p.nextToken()
		if !p.expectPeek(token.IDENTIFIER, "parameter name") {
			return nil
		}
		params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}

	if !p.expectPeek(token.RPAREN, "')' after parameters") {
		return nil
	}
	return params
}

// parseBlockStatement expects curToken to be '{' and leaves curToken on '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken, Statements: []ast.Statement{}}
	p.nextToken()

	for p.curToken.Type != token.RBRACE {
		if p.curToken.Type == token.EOF {
			p.fail(p.curToken, "Expected '}' to close block")
			return nil
		}
		stmt := p.parseStatement()
		if p.err != nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}
	block.Rbrace = p.curToken
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE, "'{' after condition") {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()
	if p.err != nil {
		return nil
	}

	if !p.peekToken.IsKeyword(langdef.KeywordElse) {
		return stmt
	}
	p.nextToken() // else

	if p.peekToken.IsKeyword(langdef.KeywordIf) {
		p.nextToken()
		alt := p.parseIfStatement()
		if p.err != nil {
			return nil
		}
		stmt.Alternative = alt
		return stmt
	}

	if !p.expectPeek(token.LBRACE, "'{' after '"+p.curToken.Literal+"'") {
		return nil
	}
	alt := p.parseBlockStatement()
	if p.err != nil {
		return nil
	}
	stmt.Alternative = alt
	return stmt
}

func (p *Parser) parseLoopStatement() ast.Statement {
	stmt := &ast.LoopStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE, "'{' after condition") {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	if p.err != nil {
		return nil
	}
	return stmt
}

// parseReturnStatement takes a value only when one starts on the same line
// as the return keyword.
func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekToken.Line != stmt.Token.Line || !p.startsExpression(p.peekToken) {
		return stmt
	}
	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}

	if p.peekToken.Type != token.ASSIGN {
		return stmt
	}

	p.nextToken() // '='
	ident, ok := stmt.Expression.(*ast.Identifier)
	if !ok {
		p.fail(p.curToken, "Invalid assignment target")
		return nil
	}
	assign := &ast.AssignStatement{Token: p.curToken, Name: ident}

	p.nextToken() // start of value
	assign.Value = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	return assign
}

/* -------------------- expressions -------------------- */

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}

	leftExp := prefix()
	if p.err != nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		leftExp = infix(leftExp)
		if p.err != nil {
			return nil
		}
	}
	return leftExp
}

func (p *Parser) parseIdentifierOrCall() ast.Expression {
	tok := p.curToken
	ident := &ast.Identifier{Token: tok, Value: tok.Literal}
	if p.peekToken.Type != token.LPAREN {
		return ident
	}

	p.nextToken() // '('
	call := &ast.CallExpression{
		Token:     tok,
		Function:  ident,
		IsBuiltin: tok.IsBuiltin(),
		Builtin:   tok.Builtin,
	}
	call.Arguments = p.parseExpressionList(token.RPAREN)
	if p.err != nil {
		return nil
	}
	return call
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.fail(p.curToken, fmt.Sprintf("Invalid number '%s'", p.curToken.Literal))
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.curToken
	value := tok.Type == token.TRUE || tok.Keyword == langdef.KeywordTrue
	return &ast.BooleanLiteral{Token: tok, Value: value}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN, "')'") {
		return nil
	}
	return exp
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Type}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	if p.err != nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Type,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if p.err != nil {
		return nil
	}
	return expr
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	list := []ast.Expression{}

	if p.peekToken.Type == end {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	if p.err != nil {
		return nil
	}

	for p.peekToken.Type == token.COMMA {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
		if p.err != nil {
			return nil
		}
	}

	if !p.expectPeek(end, fmt.Sprintf("'%s' after arguments", end)) {
		return nil
	}
	return list
}

/* -------------------- helpers -------------------- */

func (p *Parser) tokenAt(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	eof := token.Token{Type: token.EOF, Line: 1, Col: 1}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		eof.Line = last.Line
		eof.Col = last.Col + len(last.Raw)
	}
	return eof
}

func (p *Parser) nextToken() {
	p.pos++
	p.curToken = p.peekToken
	p.peekToken = p.tokenAt(p.pos + 1)
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) {
	p.prefixParseFns[t] = fn
}

func (p *Parser) registerInfix(t token.Type, fn infixParseFn) {
	p.infixParseFns[t] = fn
}

func (p *Parser) startsExpression(tok token.Token) bool {
	_, ok := p.prefixParseFns[tok.Type]
	return ok
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) expectPeek(t token.Type, what string) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.fail(p.peekToken, fmt.Sprintf("Expected %s, got %s", what, describe(p.peekToken)))
	return false
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	if tok.Type == token.EOF {
		p.fail(tok, "Unexpected end of input")
		return
	}
	p.fail(tok, fmt.Sprintf("Unexpected token '%s'", tok.Raw))
}

func (p *Parser) fail(tok token.Token, msg string) {
	if p.err != nil {
		return
	}
	length := len(tok.Raw)
	if length == 0 {
		length = 1
	}
	p.diags = append(p.diags, diag.Diagnostic{
		Code:     "PS001",
		Message:  msg,
		Severity: diag.SeverityError,
		Range:    diag.Range{Line: tok.Line, Col: tok.Col, Length: length},
	})
	p.err = &ParseError{Message: msg, Line: tok.Line, Column: tok.Col}
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}
	return "'" + tok.Raw + "'"
}
