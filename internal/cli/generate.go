package cli

import (
	"fmt"
	"path/filepath"

	"langgen/internal/generate"
)

type GenerateCmd struct {
	Out       string `short:"o" required:"" type:"path" help:"Output directory, inside the module that will build it."`
	Module    string `default:"langgen" help:"Import path of that module."`
	Extension string `help:"Program file extension; defaults to the first letters of the language name."`
	Examples  bool   `help:"Also write sample programs."`
}

func (c *GenerateCmd) Run(env *Env) error {
	def, _, err := env.workingDefinition()
	if err != nil {
		return err
	}
	files, err := generate.Generate(def, generate.Options{
		ModulePath: c.Module,
		Extension:  c.Extension,
		Examples:   c.Examples,
	})
	if err != nil {
		return err
	}
	if err := generate.Write(c.Out, files); err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintf(env.Stdout, "%s %s\n", env.styles.ok.Render("wrote"), filepath.Join(c.Out, filepath.FromSlash(f.Path)))
	}
	return nil
}
