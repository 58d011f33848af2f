package token

import (
	"testing"

	"langgen/internal/langdef"
)

func TestKeywordAndBuiltinTypes(t *testing.T) {
	tests := []struct {
		got  Type
		want Type
	}{
		{KeywordType(langdef.KeywordVariable), "KEYWORD_VARIABLE"},
		{KeywordType(langdef.KeywordNull), "KEYWORD_NULL"},
		{BuiltinType(langdef.BuiltinPrint), "BUILTIN_PRINT"},
		{OperatorType(langdef.OperatorLessEqual), LE},
		{OperatorType(langdef.OperatorAssign), ASSIGN},
	}
	for i, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("tests[%d]: got %q, want %q", i, tt.got, tt.want)
		}
	}
}

func TestEveryOperatorHasType(t *testing.T) {
	for _, op := range langdef.Operators() {
		if OperatorType(op) != Type(op.Symbol()) {
			t.Fatalf("operator %s: type %q does not match symbol %q", op, OperatorType(op), op.Symbol())
		}
	}
}
