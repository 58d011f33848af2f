package cli

import (
	"fmt"

	"langgen/internal/langdef"
)

type ValidateCmd struct {
	Definition string `arg:"" optional:"" type:"existingfile" help:"Definition file; defaults to --lang or the one in the current directory."`
}

func (c *ValidateCmd) Run(env *Env) error {
	path := c.Definition
	var (
		def *langdef.Definition
		err error
	)
	if path == "" {
		def, path, err = env.workingDefinition()
	} else {
		def, err = langdef.Load(path)
	}
	if err != nil {
		return err
	}

	report := langdef.Validate(def)
	for _, d := range report.Diagnostics {
		fmt.Fprintln(env.Stdout, env.styles.diagnostic(path, d))
	}
	comp := report.Completeness
	fmt.Fprintf(env.Stdout, "%s: keywords %.1f%%, builtins %.1f%%, overall %.1f%%\n",
		def.DisplayName(), comp.Keywords, comp.Builtins, comp.Overall)
	if report.HasErrors() {
		return exitStatus(1)
	}
	return nil
}
