package semantics

import (
	"errors"
	"fmt"

	"langgen/internal/object"
)

var ErrDivisionByZero = errors.New("Division by zero")

// TypeError reports operands of the wrong kind for an operator.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return e.Message }

func typeErrorf(format string, args ...any) error {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

func IsTruthy(obj object.Object) bool {
	switch v := obj.(type) {
	case *object.Boolean:
		return v.Value
	case *object.Null:
		return false
	case *object.Number:
		return v.Value != 0
	case *object.String:
		return v.Value != ""
	case nil:
		return false
	default:
		return true
	}
}

// BinaryOp applies an infix operator. Both operands are already evaluated;
// && and || therefore never short-circuit. sp spells booleans and null
// when one side of + is a string.
func BinaryOp(op string, left, right object.Object, sp object.Spellings) (object.Object, error) {
	switch op {
	case "&&":
		return object.NativeBool(IsTruthy(left) && IsTruthy(right)), nil
	case "||":
		return object.NativeBool(IsTruthy(left) || IsTruthy(right)), nil
	case "==":
		return object.NativeBool(Equal(left, right)), nil
	case "!=":
		return object.NativeBool(!Equal(left, right)), nil
	case "<", ">", "<=", ">=":
		return Compare(op, left, right)
	case "+":
		_, ls := left.(*object.String)
		_, rs := right.(*object.String)
		if ls || rs {
			return object.NewString(sp.Render(left) + sp.Render(right)), nil
		}
		return arithmetic(op, left, right)
	case "-", "*", "/":
		return arithmetic(op, left, right)
	}
	return nil, fmt.Errorf("unknown operator: %s", op)
}

func arithmetic(op string, left, right object.Object) (object.Object, error) {
	l, lok := left.(*object.Number)
	r, rok := right.(*object.Number)
	if !lok || !rok {
		return nil, typeErrorf("Unsupported operand types for %s: %s and %s", op, left.Type(), right.Type())
	}
	switch op {
	case "+":
		return object.NewNumber(l.Value + r.Value), nil
	case "-":
		return object.NewNumber(l.Value - r.Value), nil
	case "*":
		return object.NewNumber(l.Value * r.Value), nil
	default:
		if r.Value == 0 {
			return nil, ErrDivisionByZero
		}
		return object.NewNumber(l.Value / r.Value), nil
	}
}

// Equal is value equality. Values of different kinds are never equal.
func Equal(left, right object.Object) bool {
	switch l := left.(type) {
	case *object.Number:
		r, ok := right.(*object.Number)
		return ok && l.Value == r.Value
	case *object.String:
		r, ok := right.(*object.String)
		return ok && l.Value == r.Value
	case *object.Boolean:
		r, ok := right.(*object.Boolean)
		return ok && l.Value == r.Value
	case *object.Null:
		_, ok := right.(*object.Null)
		return ok
	}
	return false
}

// Compare orders two numbers numerically or two strings lexicographically.
func Compare(op string, left, right object.Object) (object.Object, error) {
	var c int
	switch l := left.(type) {
	case *object.Number:
		r, ok := right.(*object.Number)
		if !ok {
			return nil, compareError(op, left, right)
		}
		c = cmpOrdered(l.Value, r.Value)
	case *object.String:
		r, ok := right.(*object.String)
		if !ok {
			return nil, compareError(op, left, right)
		}
		c = cmpOrdered(l.Value, r.Value)
	default:
		return nil, compareError(op, left, right)
	}

	switch op {
	case "<":
		return object.NativeBool(c < 0), nil
	case ">":
		return object.NativeBool(c > 0), nil
	case "<=":
		return object.NativeBool(c <= 0), nil
	default:
		return object.NativeBool(c >= 0), nil
	}
}

func compareError(op string, left, right object.Object) error {
	return typeErrorf("Cannot compare %s and %s with %s", left.Type(), right.Type(), op)
}

func cmpOrdered[T float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func Negate(obj object.Object) (object.Object, error) {
	n, ok := obj.(*object.Number)
	if !ok {
		return nil, typeErrorf("Unsupported operand type for unary -: %s", obj.Type())
	}
	return object.NewNumber(-n.Value), nil
}
