package cli

import (
	"fmt"

	"langgen/internal/lexer"
	"langgen/internal/pipeline"
)

type TokensCmd struct {
	Source string `arg:"" help:"Program file."`
}

func (c *TokensCmd) Run(env *Env) error {
	src, err := pipeline.ReadSource(c.Source)
	if err != nil {
		return err
	}
	def, _, err := env.definition(c.Source)
	if err != nil {
		return err
	}
	var opts []lexer.Option
	if env.Lenient {
		opts = append(opts, lexer.Lenient())
	}
	toks, err := lexer.Tokenize(def, src, opts...)
	if err != nil {
		return env.fail(def, err)
	}
	for _, tok := range toks {
		fmt.Fprintf(env.Stdout, "%4d:%-3d  %-18s  %q\n", tok.Line, tok.Col, tok.Type, tok.Literal)
	}
	return nil
}

type ASTCmd struct {
	Source string `arg:"" help:"Program file."`
}

func (c *ASTCmd) Run(env *Env) error {
	src, err := pipeline.ReadSource(c.Source)
	if err != nil {
		return err
	}
	def, _, err := env.definition(c.Source)
	if err != nil {
		return err
	}
	prog, err := pipeline.Compile(def, src, env.pipelineOptions())
	if err != nil {
		return env.fail(def, err)
	}
	fmt.Fprint(env.Stdout, prog.String())
	return nil
}
