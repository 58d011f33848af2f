package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"langgen/internal/format"
	"langgen/internal/langdef"
	"langgen/internal/pipeline"
)

type FmtCmd struct {
	Write   bool     `short:"w" help:"Write the result back to the source file."`
	Indent  string   `short:"i" help:"Indent string; two spaces when unset."`
	Sources []string `arg:"" required:"" help:"Program files."`
}

func (c *FmtCmd) Run(env *Env) error {
	for _, path := range c.Sources {
		src, err := pipeline.ReadSource(path)
		if err != nil {
			return err
		}
		def, _, err := env.definition(path)
		if err != nil {
			return err
		}
		formatted, err := format.Format(def, src, format.Options{Indent: c.Indent})
		if err != nil {
			return fmt.Errorf("%s: %s", path, pipeline.Render(def, err))
		}

		if !c.Write {
			fmt.Fprint(env.Stdout, formatted)
			continue
		}
		if formatted == src {
			continue
		}
		if err := writeFileAtomic(path, []byte(formatted)); err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "formatted %s\n", path)
	}
	return nil
}

type TranslateCmd struct {
	To     string `required:"" type:"existingfile" placeholder:"FILE" help:"Definition of the target language."`
	Output string `short:"o" type:"path" placeholder:"FILE" help:"Write the translation to FILE instead of stdout."`
	Indent string `short:"i" help:"Indent string; two spaces when unset."`
	Source string `arg:"" help:"Program file."`
}

// Run keeps the program and changes only its spelling.
func (c *TranslateCmd) Run(env *Env) error {
	src, err := pipeline.ReadSource(c.Source)
	if err != nil {
		return err
	}
	from, _, err := env.definition(c.Source)
	if err != nil {
		return err
	}
	to, err := langdef.Load(c.To)
	if err != nil {
		return err
	}
	out, err := format.Translate(from, to, src, format.Options{Indent: c.Indent})
	if err != nil {
		return fmt.Errorf("%s: %w", c.Source, err)
	}
	if c.Output == "" {
		fmt.Fprint(env.Stdout, out)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Output), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.Output, []byte(out), 0o644)
}

func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".langgenfmt-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
