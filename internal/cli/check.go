package cli

import (
	"fmt"

	"langgen/internal/diag"
	"langgen/internal/pipeline"
)

type CheckCmd struct {
	Sources []string `arg:"" required:"" help:"Program files."`
}

// Run lists every diagnostic of every file. Only errors fail the check.
func (c *CheckCmd) Run(env *Env) error {
	failed := false
	for _, path := range c.Sources {
		src, err := pipeline.ReadSource(path)
		if err != nil {
			return err
		}
		def, _, err := env.definition(path)
		if err != nil {
			return err
		}
		an := pipeline.Analyze(def, src)
		for _, d := range an.Diagnostics {
			fmt.Fprintln(env.Stdout, env.styles.diagnostic(path, d))
		}
		if diag.HasErrors(an.Diagnostics) {
			failed = true
		}
	}
	if failed {
		return exitStatus(1)
	}
	return nil
}
