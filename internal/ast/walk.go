package ast

// Inspect traverses n depth-first, calling f for every node. Children are
// skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *BlockStatement:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *VarStatement:
		Inspect(n.Name, f)
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *FunctionStatement:
		Inspect(n.Name, f)
		for _, p := range n.Parameters {
			Inspect(p, f)
		}
		Inspect(n.Body, f)
	case *IfStatement:
		Inspect(n.Condition, f)
		Inspect(n.Consequence, f)
		if n.Alternative != nil {
			Inspect(n.Alternative, f)
		}
	case *LoopStatement:
		Inspect(n.Condition, f)
		Inspect(n.Body, f)
	case *ReturnStatement:
		if n.ReturnValue != nil {
			Inspect(n.ReturnValue, f)
		}
	case *ExpressionStatement:
		if n.Expression != nil {
			Inspect(n.Expression, f)
		}
	case *AssignStatement:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	case *PrefixExpression:
		Inspect(n.Right, f)
	case *InfixExpression:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *CallExpression:
		Inspect(n.Function, f)
		for _, a := range n.Arguments {
			Inspect(a, f)
		}
	}
}
