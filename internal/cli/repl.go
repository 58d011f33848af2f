package cli

import (
	"langgen/internal/pipeline"
	"langgen/internal/repl"
)

type ReplCmd struct{}

func (c *ReplCmd) Run(env *Env) error {
	def, _, err := env.workingDefinition()
	if err != nil {
		return err
	}
	return repl.Start(def, env.Stdin, env.Stdout, pipeline.Options{Lenient: env.Lenient, Seed: env.Seed})
}
