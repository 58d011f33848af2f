package cli

import (
	"fmt"

	"langgen/internal/config"
	"langgen/internal/langdef"
	"langgen/internal/pipeline"
	"langgen/internal/runtimeio"

	"github.com/pkg/profile"
)

type RunCmd struct {
	Source     string `arg:"" optional:"" help:"Program file; defaults to the entry of the nearest langgen.project."`
	Profile    string `enum:",cpu,mem" default:"" help:"Write a cpu or mem profile of the run."`
	ProfileDir string `name:"profile-dir" type:"path" default:"." help:"Directory for the profile."`
}

// Run follows the generated interpreter contract: program output, or a
// single failure line, on stdout.
func (c *RunCmd) Run(env *Env) error {
	defer startProfile(c.Profile, c.ProfileDir).Stop()

	if c.Source == "" {
		entry, m, err := config.Entry(".")
		if err != nil {
			return err
		}
		log.Infof("running %s from project %q", entry, m.Name)
		c.Source = entry
	}
	src, err := pipeline.ReadSource(c.Source)
	if err != nil {
		return env.fail(&langdef.Definition{}, err)
	}
	def, _, err := env.definition(c.Source)
	if err != nil {
		return env.fail(&langdef.Definition{}, err)
	}
	out, err := pipeline.Run(def, src, env.pipelineOptions())
	if err != nil {
		return env.fail(def, err)
	}
	fmt.Fprint(env.Stdout, out)
	return nil
}

func (e *Env) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Lenient: e.Lenient,
		Console: runtimeio.NewConsole(e.Stdin, e.Stdout),
		Seed:    e.Seed,
	}
}

// fail prints the one-line rendering of err and ends with status 1.
func (e *Env) fail(def *langdef.Definition, err error) error {
	fmt.Fprintln(e.Stdout, pipeline.Render(def, err))
	return exitStatus(1)
}

type stopper interface{ Stop() }

type noProfile struct{}

func (noProfile) Stop() {}

func startProfile(mode, dir string) stopper {
	var kind func(*profile.Profile)
	switch mode {
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfile
	default:
		return noProfile{}
	}
	log.Infof("writing %s profile to %s", mode, dir)
	return profile.Start(kind, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook)
}
