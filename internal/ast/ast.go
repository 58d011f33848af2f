package ast

import (
	"bytes"
	"strconv"
	"strings"

	"langgen/internal/langdef"
	"langgen/internal/object"
	"langgen/internal/token"
)

type Node interface {
	TokenLiteral() string
	String() string
	Pos() (line, col int)
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() (int, int) {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return 1, 1
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

/* -------------------- Statements -------------------- */

type VarStatement struct {
	Token token.Token // variable keyword
	Name  *Identifier
	Value Expression // nil when declared without a value
}

func (*VarStatement) statementNode()          {}
func (vs *VarStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VarStatement) Pos() (int, int)      { return vs.Token.Line, vs.Token.Col }
func (vs *VarStatement) String() string {
	if vs.Value == nil {
		return "variable " + vs.Name.String()
	}
	return "variable " + vs.Name.String() + " = " + vs.Value.String()
}

type FunctionStatement struct {
	Token      token.Token // function keyword
	Name       *Identifier
	Parameters []*Identifier
	Body       *BlockStatement
}

func (*FunctionStatement) statementNode()          {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *FunctionStatement) Pos() (int, int)      { return fs.Token.Line, fs.Token.Col }
func (fs *FunctionStatement) String() string {
	params := make([]string, len(fs.Parameters))
	for i, p := range fs.Parameters {
		params[i] = p.String()
	}
	return "function " + fs.Name.String() + "(" + strings.Join(params, ", ") + ") " + fs.Body.String()
}

func (fs *FunctionStatement) ParamNames() []string {
	out := make([]string, len(fs.Parameters))
	for i, p := range fs.Parameters {
		out[i] = p.Value
	}
	return out
}

type BlockStatement struct {
	Token      token.Token // '{'
	Statements []Statement
	Rbrace     token.Token
}

func (*BlockStatement) statementNode()          {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() (int, int)      { return bs.Token.Line, bs.Token.Col }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range bs.Statements {
		for _, line := range strings.Split(s.String(), "\n") {
			out.WriteString("  ")
			out.WriteString(line)
			out.WriteString("\n")
		}
	}
	out.WriteString("}")
	return out.String()
}

type IfStatement struct {
	Token       token.Token // if keyword
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement // *BlockStatement, *IfStatement for else-if, or nil
}

func (*IfStatement) statementNode()          {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() (int, int)      { return is.Token.Line, is.Token.Col }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(is.Condition.String())
	out.WriteString(" ")
	out.WriteString(is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}
	return out.String()
}

type LoopStatement struct {
	Token     token.Token // loop keyword
	Condition Expression
	Body      *BlockStatement
}

func (*LoopStatement) statementNode()          {}
func (ls *LoopStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LoopStatement) Pos() (int, int)      { return ls.Token.Line, ls.Token.Col }
func (ls *LoopStatement) String() string {
	return "loop " + ls.Condition.String() + " " + ls.Body.String()
}

type ReturnStatement struct {
	Token       token.Token // return keyword
	ReturnValue Expression  // nil for a bare return
}

func (*ReturnStatement) statementNode()          {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() (int, int)      { return rs.Token.Line, rs.Token.Col }
func (rs *ReturnStatement) String() string {
	if rs.ReturnValue == nil {
		return "return"
	}
	return "return " + rs.ReturnValue.String()
}

type ExpressionStatement struct {
	Token      token.Token // first token of expression
	Expression Expression
}

func (*ExpressionStatement) statementNode()          {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) Pos() (int, int)      { return es.Token.Line, es.Token.Col }
func (es *ExpressionStatement) String() string {
	if es.Expression == nil {
		return ""
	}
	return es.Expression.String()
}

type AssignStatement struct {
	Token token.Token // '=' or its alias
	Name  *Identifier
	Value Expression
}

func (*AssignStatement) statementNode()          {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() (int, int)      { return as.Name.Pos() }
func (as *AssignStatement) String() string {
	return as.Name.String() + " = " + as.Value.String()
}

/* -------------------- Expressions -------------------- */

type Identifier struct {
	Token token.Token
	Value string
}

func (*Identifier) expressionNode()          {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() (int, int)      { return i.Token.Line, i.Token.Col }
func (i *Identifier) String() string       { return i.Value }

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (*NumberLiteral) expressionNode()          {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) Pos() (int, int)      { return nl.Token.Line, nl.Token.Col }
func (nl *NumberLiteral) String() string       { return object.FormatNumber(nl.Value) }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (*StringLiteral) expressionNode()          {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) Pos() (int, int)      { return sl.Token.Line, sl.Token.Col }
func (sl *StringLiteral) String() string       { return strconv.Quote(sl.Value) }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (*BooleanLiteral) expressionNode()          {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() (int, int)      { return bl.Token.Line, bl.Token.Col }
func (bl *BooleanLiteral) String() string       { return strconv.FormatBool(bl.Value) }

type NullLiteral struct {
	Token token.Token
}

func (*NullLiteral) expressionNode()          {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NullLiteral) Pos() (int, int)      { return nl.Token.Line, nl.Token.Col }
func (nl *NullLiteral) String() string       { return "null" }

type PrefixExpression struct {
	Token    token.Token // '-'
	Operator token.Type
	Right    Expression
}

func (*PrefixExpression) expressionNode()          {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) Pos() (int, int)      { return pe.Token.Line, pe.Token.Col }
func (pe *PrefixExpression) String() string {
	return "(" + string(pe.Operator) + pe.Right.String() + ")"
}

type InfixExpression struct {
	Token    token.Token // operator token, possibly an alias spelling
	Left     Expression
	Operator token.Type
	Right    Expression
}

func (*InfixExpression) expressionNode()          {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) Pos() (int, int)      { return ie.Left.Pos() }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + string(ie.Operator) + " " + ie.Right.String() + ")"
}

type CallExpression struct {
	Token     token.Token // callee token
	Function  *Identifier
	Arguments []Expression
	// IsBuiltin and Builtin come from the callee token's tag.
	IsBuiltin bool
	Builtin   langdef.Builtin
}

func (*CallExpression) expressionNode()          {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() (int, int)      { return ce.Token.Line, ce.Token.Col }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	name := ce.Function.String()
	if ce.IsBuiltin {
		name = ce.Builtin.String()
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}
