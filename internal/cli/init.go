package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"langgen/internal/config"
	"langgen/internal/format"
	"langgen/internal/generate"
	"langgen/internal/langdef"
)

type InitCmd struct {
	Template string `short:"t" enum:"${templates}" default:"simple" help:"Starting definition (${enum})."`
	Name     string `short:"n" help:"Language name; defaults to the template's."`
	Force    bool   `help:"Overwrite existing files."`
	Dir      string `arg:"" optional:"" default:"." type:"path" help:"Project directory."`
}

// Run writes a definition, a project manifest and a hello-world program
// spelled in the new language.
func (c *InitCmd) Run(env *Env) error {
	def, err := langdef.Template(c.Template)
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) != "" {
		def.Name = strings.TrimSpace(c.Name)
	}

	entry := "main." + generate.Extension(def)
	hello, err := format.Translate(langdef.Canonical(), def,
		fmt.Sprintf("print(%s)\n", format.Quote("Hello from "+def.Name+"!")), format.Options{})
	if err != nil {
		return err
	}

	defPath := filepath.Join(c.Dir, config.DefinitionNames[0])
	manifestPath := filepath.Join(c.Dir, config.ManifestName)
	entryPath := filepath.Join(c.Dir, entry)
	if !c.Force {
		for _, p := range []string{defPath, manifestPath, entryPath} {
			exists, err := pathExists(p)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	if err := langdef.Save(def, defPath); err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, []byte(buildManifest(def.Name, entry, config.DefinitionNames[0])), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(entryPath, []byte(hello), 0o644); err != nil {
		return err
	}
	for _, p := range []string{defPath, manifestPath, entryPath} {
		fmt.Fprintf(env.Stdout, "%s %s\n", env.styles.ok.Render("created"), p)
	}
	return nil
}

func buildManifest(name, entry, language string) string {
	var b strings.Builder
	if strings.TrimSpace(name) != "" {
		fmt.Fprintf(&b, "name = %q\n", name)
	}
	fmt.Fprintf(&b, "entry = %q\n", entry)
	fmt.Fprintf(&b, "language = %q\n", language)
	return b.String()
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

type TemplatesCmd struct{}

func (c *TemplatesCmd) Run(env *Env) error {
	for _, name := range langdef.TemplateNames() {
		def, err := langdef.Template(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "%-8s %s\n", name, def.Description)
	}
	return nil
}
