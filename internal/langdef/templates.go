package langdef

import (
	"fmt"
	"sort"
)

var templates = map[string]func() *Definition{
	"simple": simpleTemplate,
	"kids":   kidsTemplate,
}

// TemplateNames lists the built-in starting points for new languages.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template returns a fresh copy of a built-in definition.
func Template(name string) (*Definition, error) {
	build, ok := templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", name)
	}
	return build(), nil
}

// Canonical spells every keyword and builtin with its canonical id.
func Canonical() *Definition {
	def := &Definition{Name: "canonical"}
	for _, k := range Keywords() {
		def.Keywords.Set(k.String(), k.String())
	}
	for _, b := range Builtins() {
		def.Builtins.Set(b.String(), b.String())
	}
	return def
}

func simpleTemplate() *Definition {
	return &Definition{
		Name:        "SimpleLang",
		Version:     "1.0",
		Author:      "Template Author",
		Description: "A simple programming language template",
		Keywords: NewMapping(
			"variable", "var",
			"function", "func",
			"if", "if",
			"else", "else",
			"loop", "while",
			"return", "return",
			"true", "true",
			"false", "false",
			"null", "null",
		),
		Builtins: NewMapping(
			"print", "print",
			"input", "input",
			"length", "len",
			"string", "str",
			"number", "num",
			"random", "rand",
		),
		Errors: NewMapping(
			"syntax", "Syntax error",
			"runtime", "Runtime error",
			"type", "Type error",
		),
	}
}

func kidsTemplate() *Definition {
	return &Definition{
		Name:        "KidsLang",
		Version:     "1.0",
		Author:      "Template Author",
		Description: "A kid-friendly programming language",
		Keywords: NewMapping(
			"variable", "remember",
			"function", "teach",
			"if", "when",
			"else", "otherwise",
			"loop", "repeat",
			"return", "give",
			"true", "yes",
			"false", "no",
			"null", "nothing",
		),
		Builtins: NewMapping(
			"print", "say",
			"input", "ask",
			"length", "count",
			"string", "words",
			"number", "number",
			"random", "surprise",
		),
		Operators: NewMapping(
			"addition", "plus",
			"subtraction", "minus",
			"multiplication", "times",
			"equal", "is",
		),
		Errors: NewMapping(
			"syntax", "Oops! Something is wrong with your code",
			"runtime", "Something went wrong while running",
			"type", "Wrong type of information",
		),
	}
}
