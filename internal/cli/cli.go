// Package cli implements the langgen command: running, checking,
// formatting and translating programs, and creating, validating and
// generating language definitions.
package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"langgen/internal/config"
	"langgen/internal/langdef"

	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"
)

const Version = "0.1.0"

var log = commonlog.GetLogger("langgen.cli")

// Globals are accepted before or after any command.
type Globals struct {
	Verbose int    `short:"v" type:"counter" help:"Log more; repeat for debug output."`
	LogFile string `name:"log-file" type:"path" placeholder:"FILE" help:"Write logs to FILE instead of stderr."`
	Lang    string `short:"l" env:"LANGGEN_LANG" type:"path" placeholder:"FILE" help:"Language definition to use instead of the one next to the source file."`
	Lenient bool   `env:"LANGGEN_LENIENT" help:"Drop characters that start no token instead of failing."`
	Seed    int64  `env:"LANGGEN_SEED" help:"Seed for the random builtin; 0 picks a fresh one."`
	Color   string `enum:"auto,always,never" default:"auto" help:"Colorize diagnostics (${enum})."`

	Version kong.VersionFlag `help:"Print the version and exit."`
}

type CLI struct {
	Globals `embed:""`

	Run       RunCmd       `cmd:"" help:"Run a program."`
	Check     CheckCmd     `cmd:"" help:"Report syntax errors and lint warnings."`
	Fmt       FmtCmd       `cmd:"" help:"Reformat programs."`
	Translate TranslateCmd `cmd:"" help:"Rewrite a program in another language definition."`
	Init      InitCmd      `cmd:"" help:"Create a language definition and a first program."`
	Templates TemplatesCmd `cmd:"" help:"List the built-in definition templates."`
	Validate  ValidateCmd  `cmd:"" help:"Check a language definition."`
	Generate  GenerateCmd  `cmd:"" help:"Write a standalone interpreter for a language definition."`
	Repl      ReplCmd      `cmd:"" help:"Start an interactive session."`
	Tokens    TokensCmd    `cmd:"" help:"Print the tokens of a program."`
	AST       ASTCmd       `cmd:"" name:"ast" help:"Print the syntax tree of a program."`
	Test      TestCmd      `cmd:"" help:"Run programs against their # expect: directives."`
}

// Env is what every command runs against.
type Env struct {
	*Globals
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	styles styles
}

// exitStatus ends a command with a status after it has already reported
// the failure itself.
type exitStatus int

func (e exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

type kongExit int

// Main parses args, runs the selected command and returns the process
// exit status.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) (status int) {
	var cli CLI
	env := &Env{Globals: &cli.Globals, Stdin: stdin, Stdout: stdout, Stderr: stderr}

	defer func() {
		if r := recover(); r != nil {
			code, ok := r.(kongExit)
			if !ok {
				panic(r)
			}
			status = int(code)
		}
	}()

	parser, err := kong.New(&cli,
		kong.Name("langgen"),
		kong.Description("Design programming languages and run programs written in them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(kongExit(code)) }),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
		kong.Vars{
			"version":   Version,
			"templates": strings.Join(langdef.TemplateNames(), ","),
		},
		kong.Bind(env),
	)
	if err != nil {
		fmt.Fprintf(stderr, "langgen: %v\n", err)
		return 2
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	configureLogging(cli.Verbose, cli.LogFile)
	env.styles = newStyles(stdout, colorEnabled(cli.Color, stdout))

	if err := ktx.Run(); err != nil {
		var st exitStatus
		if errors.As(err, &st) {
			return int(st)
		}
		fmt.Fprintf(stderr, "%s %v\n", env.styles.error.Render("langgen:"), err)
		return 1
	}
	return 0
}

func configureLogging(verbose int, file string) {
	var path *string
	if file != "" {
		path = &file
	}
	commonlog.Configure(verbose, path)
}

// definition loads the language a source file is written in.
func (e *Env) definition(source string) (*langdef.Definition, string, error) {
	path, err := config.ResolveDefinition(e.Lang, source)
	if err != nil {
		return nil, "", err
	}
	def, err := langdef.Load(path)
	if err != nil {
		return nil, path, err
	}
	log.Debugf("using %s from %s", def.DisplayName(), path)
	return def, path, nil
}

// workingDefinition loads the language of the current directory, for
// commands that have no source file.
func (e *Env) workingDefinition() (*langdef.Definition, string, error) {
	return e.definition(filepath.Join(".", "program"))
}
