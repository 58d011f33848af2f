package generate

import "text/template"

var mainTemplate = template.Must(template.New("main.go").Parse(`// Code generated by langgen generate. DO NOT EDIT.

// Command {{.Slug}} runs {{.Name}} programs.
//
// Usage:
//
//	{{.Slug}} <sourcefile>
package main

import (
	_ "embed"
	"os"

	"{{.Module}}/internal/launcher"
)

//go:embed language.yaml
var definition []byte

func main() {
	os.Exit(launcher.Main(definition, os.Args[1:], os.Stdin, os.Stdout))
}
`))

var readmeTemplate = template.Must(template.New("README.md").Parse(`# {{.Name}} Programming Language
{{if .Summary}}
{{.Summary}}
{{end}}
## Quick Start

    go build -o {{.Slug}} .
    ./{{.Slug}} examples/hello.{{.Extension}}

The language definition is embedded from language.yaml at build time. A
language.yaml next to the built binary replaces the embedded copy without a
rebuild.

## Keywords
{{range .Keywords}}
- ` + "`{{.Spelling}}`" + ` ({{.ID}}){{end}}

## Built-in Functions
{{range .Builtins}}
- ` + "`{{.Spelling}}()`" + ` ({{.ID}}){{end}}
{{if .Operators}}
## Operator Words
{{range .Operators}}
- ` + "`{{.Spelling}}`" + ` ({{.ID}}){{end}}
{{end}}{{if or .Version .Author}}
## About
{{if .Version}}
**Version:** {{.Version}}{{end}}{{if .Author}}
**Author:** {{.Author}}{{end}}
{{end}}`))
