package object

import (
	"math"
	"strconv"
)

type Type string

const (
	NUMBER_OBJ  Type = "number"
	STRING_OBJ  Type = "string"
	BOOLEAN_OBJ Type = "boolean"
	NULL_OBJ    Type = "null"
)

type Object interface {
	Type() Type
	Inspect() string
}

type Number struct{ Value float64 }

func (*Number) Type() Type        { return NUMBER_OBJ }
func (n *Number) Inspect() string { return FormatNumber(n.Value) }

type String struct{ Value string }

func (*String) Type() Type        { return STRING_OBJ }
func (s *String) Inspect() string { return s.Value }

type Boolean struct{ Value bool }

func (*Boolean) Type() Type        { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Value) }

type Null struct{}

func (*Null) Type() Type      { return NULL_OBJ }
func (*Null) Inspect() string { return "null" }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NULL  = &Null{}
)

func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

func NewNumber(v float64) *Number { return &Number{Value: v} }
func NewString(s string) *String  { return &String{Value: s} }

// FormatNumber prints integral values without a fractional part.
func FormatNumber(v float64) string {
	if math.Abs(v) < 1<<53 && v == math.Trunc(v) {
		if v == 0 {
			return "0"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Spellings are the surface words a language uses when printing literals.
type Spellings struct {
	True  string
	False string
	Null  string
}

var English = Spellings{True: "true", False: "false", Null: "null"}

// Render is the string form of v as the program sees it.
func (sp Spellings) Render(v Object) string {
	switch v := v.(type) {
	case *Boolean:
		if v.Value {
			return sp.True
		}
		return sp.False
	case *Null:
		return sp.Null
	case nil:
		return sp.Null
	default:
		return v.Inspect()
	}
}
