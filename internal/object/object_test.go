package object

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{14, "14"},
		{-3, "-3"},
		{0.5, "0.5"},
		{2.25, "2.25"},
		{1e16, "10000000000000000"},
		{-9007199254740991, "-9007199254740991"},
		{1 << 53, "9.007199254740992e+15"},
		{1e21, "1e+21"},
		{0, "0"},
	}
	for i, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Fatalf("tests[%d]: FormatNumber(%v) = %q, want %q", i, tt.in, got, tt.want)
		}
	}
}

func TestRenderUsesSpellings(t *testing.T) {
	sp := Spellings{True: "yes", False: "no", Null: "nothing"}
	tests := []struct {
		in   Object
		want string
	}{
		{TRUE, "yes"},
		{FALSE, "no"},
		{NULL, "nothing"},
		{NewNumber(7), "7"},
		{NewString("hi"), "hi"},
	}
	for i, tt := range tests {
		if got := sp.Render(tt.in); got != tt.want {
			t.Fatalf("tests[%d]: got %q, want %q", i, got, tt.want)
		}
	}
}

func TestEnvironmentCloneIsIndependent(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", NewNumber(1))
	snap := env.Clone()
	snap.Set("x", NewNumber(2))
	snap.Set("y", TRUE)

	v, _ := env.Get("x")
	if v.Inspect() != "1" {
		t.Fatalf("clone leaked into original: x = %s", v.Inspect())
	}
	if _, ok := env.Get("y"); ok {
		t.Fatalf("clone leaked y into original")
	}
}
