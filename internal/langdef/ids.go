package langdef

// Keyword is a canonical keyword id. The zero value is not a keyword.
type Keyword uint8

const (
	KeywordNone Keyword = iota
	KeywordVariable
	KeywordFunction
	KeywordIf
	KeywordElse
	KeywordLoop
	KeywordReturn
	KeywordTrue
	KeywordFalse
	KeywordNull
)

var keywordIDs = [...]string{
	KeywordNone:     "",
	KeywordVariable: "variable",
	KeywordFunction: "function",
	KeywordIf:       "if",
	KeywordElse:     "else",
	KeywordLoop:     "loop",
	KeywordReturn:   "return",
	KeywordTrue:     "true",
	KeywordFalse:    "false",
	KeywordNull:     "null",
}

var keywordDocs = map[Keyword]string{
	KeywordVariable: "Declares a variable, optionally with an initial value.",
	KeywordFunction: "Declares a function with named parameters and a block body.",
	KeywordIf:       "Runs a block when the condition is truthy.",
	KeywordElse:     "Alternative branch of an if statement.",
	KeywordLoop:     "Repeats a block while the condition is truthy.",
	KeywordReturn:   "Leaves the current function, optionally with a value.",
	KeywordTrue:     "Boolean true literal.",
	KeywordFalse:    "Boolean false literal.",
	KeywordNull:     "The null value.",
}

// Keywords lists every canonical keyword in canonical order.
func Keywords() []Keyword {
	return []Keyword{KeywordVariable, KeywordFunction, KeywordIf, KeywordElse, KeywordLoop, KeywordReturn, KeywordTrue, KeywordFalse, KeywordNull}
}

func (k Keyword) String() string {
	if int(k) < len(keywordIDs) {
		return keywordIDs[k]
	}
	return ""
}

func (k Keyword) Doc() string { return keywordDocs[k] }

func LookupKeyword(id string) (Keyword, bool) {
	for _, k := range Keywords() {
		if keywordIDs[k] == id {
			return k, true
		}
	}
	return KeywordNone, false
}

// Builtin is a canonical builtin function id.
type Builtin uint8

const (
	BuiltinNone Builtin = iota
	BuiltinPrint
	BuiltinInput
	BuiltinLength
	BuiltinString
	BuiltinNumber
	BuiltinRandom
	BuiltinAbs
	BuiltinRound
	BuiltinFloor
	BuiltinCeil
	BuiltinSqrt
	BuiltinPower
	BuiltinMin
	BuiltinMax
	BuiltinUpper
	BuiltinLower
)

type builtinInfo struct {
	id        string
	signature string
	doc       string
}

var builtinTable = [...]builtinInfo{
	BuiltinNone:   {},
	BuiltinPrint:  {"print", "print(values...)", "Writes its arguments joined by a space as one output line."},
	BuiltinInput:  {"input", "input(prompt?)", "Shows the prompt and reads one line of input as a string."},
	BuiltinLength: {"length", "length(value)", "Number of characters in the string form of value."},
	BuiltinString: {"string", "string(value)", "String form of value."},
	BuiltinNumber: {"number", "number(value)", "Numeric form of value, 0 when it is not numeric."},
	BuiltinRandom: {"random", "random() | random(low, high)", "Float in [0, 1), or an integer between low and high inclusive."},
	BuiltinAbs:    {"abs", "abs(n)", "Absolute value."},
	BuiltinRound:  {"round", "round(n, digits?)", "Rounds half away from zero, optionally to a number of decimal digits."},
	BuiltinFloor:  {"floor", "floor(n)", "Largest integer not greater than n."},
	BuiltinCeil:   {"ceil", "ceil(n)", "Smallest integer not less than n."},
	BuiltinSqrt:   {"sqrt", "sqrt(n)", "Square root of a non-negative number."},
	BuiltinPower:  {"power", "power(base, exponent)", "base raised to exponent."},
	BuiltinMin:    {"min", "min(n, ...)", "Smallest of its numeric arguments."},
	BuiltinMax:    {"max", "max(n, ...)", "Largest of its numeric arguments."},
	BuiltinUpper:  {"upper", "upper(value)", "Upper-cased string form of value."},
	BuiltinLower:  {"lower", "lower(value)", "Lower-cased string form of value."},
}

// Builtins lists every canonical builtin in canonical order.
func Builtins() []Builtin {
	out := make([]Builtin, 0, len(builtinTable)-1)
	for b := BuiltinPrint; int(b) < len(builtinTable); b++ {
		out = append(out, b)
	}
	return out
}

func (b Builtin) String() string {
	if int(b) < len(builtinTable) {
		return builtinTable[b].id
	}
	return ""
}

func (b Builtin) Signature() string { return builtinTable[b].signature }
func (b Builtin) Doc() string       { return builtinTable[b].doc }

func LookupBuiltin(id string) (Builtin, bool) {
	for _, b := range Builtins() {
		if builtinTable[b].id == id {
			return b, true
		}
	}
	return BuiltinNone, false
}

// Operator is a canonical operator id. Every operator has a fixed symbol
// and may additionally be given an alias spelling.
type Operator uint8

const (
	OperatorNone Operator = iota
	OperatorAddition
	OperatorSubtraction
	OperatorMultiplication
	OperatorDivision
	OperatorEqual
	OperatorNotEqual
	OperatorLessThan
	OperatorGreaterThan
	OperatorLessEqual
	OperatorGreaterEqual
	OperatorAnd
	OperatorOr
	OperatorAssign
)

var operatorTable = [...]struct{ id, symbol string }{
	OperatorNone:           {},
	OperatorAddition:       {"addition", "+"},
	OperatorSubtraction:    {"subtraction", "-"},
	OperatorMultiplication: {"multiplication", "*"},
	OperatorDivision:       {"division", "/"},
	OperatorEqual:          {"equal", "=="},
	OperatorNotEqual:       {"not_equal", "!="},
	OperatorLessThan:       {"less_than", "<"},
	OperatorGreaterThan:    {"greater_than", ">"},
	OperatorLessEqual:      {"less_equal", "<="},
	OperatorGreaterEqual:   {"greater_equal", ">="},
	OperatorAnd:            {"and", "&&"},
	OperatorOr:             {"or", "||"},
	OperatorAssign:         {"assign", "="},
}

func Operators() []Operator {
	out := make([]Operator, 0, len(operatorTable)-1)
	for op := OperatorAddition; int(op) < len(operatorTable); op++ {
		out = append(out, op)
	}
	return out
}

func (op Operator) String() string {
	if int(op) < len(operatorTable) {
		return operatorTable[op].id
	}
	return ""
}

// Symbol is the fixed spelling that is always accepted for op.
func (op Operator) Symbol() string {
	if int(op) < len(operatorTable) {
		return operatorTable[op].symbol
	}
	return ""
}

func LookupOperator(id string) (Operator, bool) {
	for _, op := range Operators() {
		if operatorTable[op].id == id {
			return op, true
		}
	}
	return OperatorNone, false
}

// OperatorForSymbol maps a fixed symbol back to its operator.
func OperatorForSymbol(sym string) (Operator, bool) {
	for _, op := range Operators() {
		if operatorTable[op].symbol == sym {
			return op, true
		}
	}
	return OperatorNone, false
}
