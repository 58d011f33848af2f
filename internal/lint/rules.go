package lint

import (
	"fmt"

	"langgen/internal/ast"
	"langgen/internal/diag"
)

const (
	codeUnreachable   = "LN001"
	codeDuplicateFunc = "LN002"
	codeUndefinedFunc = "LN003"
	codeUnusedParam   = "LN004"
)

type Runner struct {
	diags []diag.Diagnostic
	opts  Options
	funcs map[string]*ast.FunctionStatement
}

func (r *Runner) warn(n ast.Node, length int, code, msg string) {
	line, col := n.Pos()
	if length <= 0 {
		length = 1
	}
	r.diags = append(r.diags, diag.Diagnostic{
		Code:     code,
		Message:  msg,
		Severity: diag.SeverityWarning,
		Range:    diag.Range{Line: line, Col: col, Length: length},
	})
}

// collectFunctions records every declaration anywhere in the program.
// Functions are global once declared, so a call is only suspicious when
// no declaration exists at all.
func (r *Runner) collectFunctions(p *ast.Program) {
	ast.Inspect(p, func(n ast.Node) bool {
		fn, ok := n.(*ast.FunctionStatement)
		if !ok {
			return true
		}
		if prev, dup := r.funcs[fn.Name.Value]; dup {
			line, _ := prev.Pos()
			r.warn(fn.Name, len(fn.Name.Value), codeDuplicateFunc,
				fmt.Sprintf("function '%s' already declared on line %d", fn.Name.Value, line))
		}
		r.funcs[fn.Name.Value] = fn
		return true
	})
}

func (r *Runner) walkStatements(stmts []ast.Statement) {
	terminated := false
	for _, st := range stmts {
		if terminated {
			r.warn(st, len(st.TokenLiteral()), codeUnreachable, "unreachable code")
			terminated = false
		}
		r.walkStmt(st)
		if _, ok := st.(*ast.ReturnStatement); ok {
			terminated = true
		}
	}
}

func (r *Runner) walkStmt(st ast.Statement) {
	switch n := st.(type) {
	case *ast.FunctionStatement:
		r.walkFunction(n)
	case *ast.BlockStatement:
		r.walkStatements(n.Statements)
	case *ast.IfStatement:
		r.walkExpr(n.Condition)
		r.walkStatements(n.Consequence.Statements)
		if n.Alternative != nil {
			r.walkStmt(n.Alternative)
		}
	case *ast.LoopStatement:
		r.walkExpr(n.Condition)
		r.walkStatements(n.Body.Statements)
	case *ast.VarStatement:
		r.walkExpr(n.Value)
	case *ast.AssignStatement:
		r.walkExpr(n.Value)
	case *ast.ReturnStatement:
		r.walkExpr(n.ReturnValue)
	case *ast.ExpressionStatement:
		r.walkExpr(n.Expression)
	}
}

func (r *Runner) walkFunction(fn *ast.FunctionStatement) {
	r.walkStatements(fn.Body.Statements)
	if !r.opts.CheckUnusedParams {
		return
	}
	used := map[string]bool{}
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok {
			used[id.Value] = true
		}
		return true
	})
	for _, p := range fn.Parameters {
		if p.Value != "_" && !used[p.Value] {
			r.warn(p, len(p.Value), codeUnusedParam, fmt.Sprintf("unused parameter: %s", p.Value))
		}
	}
}

func (r *Runner) walkExpr(e ast.Expression) {
	if e == nil {
		return
	}
	ast.Inspect(e, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpression)
		if !ok || call.IsBuiltin {
			return true
		}
		if _, declared := r.funcs[call.Function.Value]; !declared {
			r.warn(call.Function, len(call.Function.Value), codeUndefinedFunc,
				fmt.Sprintf("call to undefined function '%s'", call.Function.Value))
		}
		return true
	})
}
