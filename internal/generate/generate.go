// Package generate writes the source of a standalone interpreter for one
// language definition. Output depends only on the definition and options,
// so generating twice yields byte-identical files.
package generate

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	srcfmt "langgen/internal/format"
	"langgen/internal/langdef"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("langgen.generate")

const DefinitionFile = "language.yaml"

type Options struct {
	// ModulePath is the import path of the module that hosts the
	// generated command. Defaults to "langgen".
	ModulePath string
	// Extension is the program file extension used in docs and examples.
	// Defaults to the first three letters of the language slug.
	Extension string
	// Examples adds sample programs under examples/.
	Examples bool
}

// File is one generated artifact, relative to the output directory.
type File struct {
	Path string
	Data []byte
}

type templateData struct {
	Module    string
	Name      string
	Slug      string
	Extension string
	Version   string
	Author    string
	Summary   string
	Keywords  []langdef.Entry
	Builtins  []langdef.Entry
	Operators []langdef.Entry
}

// Generate renders main.go, language.yaml and README.md, plus examples
// when asked. Files come back in a fixed order.
func Generate(def *langdef.Definition, opts Options) ([]File, error) {
	if strings.TrimSpace(def.Name) == "" {
		return nil, fmt.Errorf("%w: definition needs a name", langdef.ErrInvalid)
	}
	if report := langdef.Validate(def); report.HasErrors() {
		for _, d := range report.Diagnostics {
			log.Debugf("%s", d.Format(""))
		}
		return nil, fmt.Errorf("%w: definition has validation errors", langdef.ErrInvalid)
	}

	data := newTemplateData(def, opts)

	mainSrc, err := render(mainTemplate, data)
	if err != nil {
		return nil, err
	}
	mainSrc, err = format.Source(mainSrc)
	if err != nil {
		return nil, fmt.Errorf("gofmt main.go: %w", err)
	}
	defSrc, err := langdef.Marshal(def)
	if err != nil {
		return nil, err
	}
	readme, err := render(readmeTemplate, data)
	if err != nil {
		return nil, err
	}

	files := []File{
		{Path: "main.go", Data: mainSrc},
		{Path: DefinitionFile, Data: defSrc},
		{Path: "README.md", Data: readme},
	}
	if opts.Examples {
		files = append(files, examples(def, data)...)
	}
	return files, nil
}

// Write stores files under dir, creating directories as needed.
func Write(dir string, files []File) error {
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return err
		}
		log.Debugf("wrote %s", path)
	}
	return nil
}

func newTemplateData(def *langdef.Definition, opts Options) templateData {
	module := opts.ModulePath
	if module == "" {
		module = "langgen"
	}
	slug := def.Slug()
	ext := opts.Extension
	if ext == "" {
		ext = Extension(def)
	}
	d := templateData{
		Module:    module,
		Name:      oneLine(def.Name),
		Slug:      slug,
		Extension: strings.TrimPrefix(ext, "."),
		Version:   oneLine(def.Version),
		Author:    oneLine(def.Author),
		Summary:   oneLine(def.Description),
		Operators: def.Operators.Entries(),
	}
	for _, k := range langdef.Keywords() {
		if s, ok := def.KeywordSpelling(k); ok {
			d.Keywords = append(d.Keywords, langdef.Entry{ID: k.String(), Spelling: s})
		}
	}
	for _, b := range langdef.Builtins() {
		d.Builtins = append(d.Builtins, langdef.Entry{ID: b.String(), Spelling: def.BuiltinSpelling(b)})
	}
	return d
}

// Extension is the default program file extension for def: the first
// three letters of its slug, without a dot.
func Extension(def *langdef.Definition) string {
	ext := def.Slug()
	if len(ext) > 3 {
		ext = ext[:3]
	}
	return ext
}

func render(t *template.Template, data templateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.Bytes(), nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// examples are written in canonical spelling and translated, so a sample
// that cannot be expressed in the language is left out.
func examples(def *langdef.Definition, data templateData) []File {
	samples := []struct{ name, src string }{
		{"hello", fmt.Sprintf("# Hello World in %s\nprint(%s)\nprint(%s)\n",
			data.Name, srcfmt.Quote("Hello, World!"), srcfmt.Quote("Welcome to "+data.Name+"!"))},
		{"variables", fmt.Sprintf("# Variables in %s\nvariable name = %s\nvariable age = 25\nprint(%s, name)\nprint(%s, age, %s)\n",
			data.Name, srcfmt.Quote("World"), srcfmt.Quote("Hello"), srcfmt.Quote("You are"), srcfmt.Quote("years old"))},
		{"functions", fmt.Sprintf("# Functions and loops in %s\nfunction square(n) {\n  return n * n\n}\nvariable i = 1\nloop i <= 3 {\n  print(i, square(i))\n  i = i + 1\n}\n",
			data.Name)},
	}
	var files []File
	for _, s := range samples {
		out, err := srcfmt.Translate(langdef.Canonical(), def, s.src, srcfmt.Options{})
		if err != nil {
			log.Debugf("skipping example %s: %v", s.name, err)
			continue
		}
		files = append(files, File{Path: "examples/" + s.name + "." + data.Extension, Data: []byte(out)})
	}
	return files
}
