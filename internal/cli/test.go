package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"langgen/internal/pipeline"
	"langgen/internal/spectest"
)

type TestCmd struct {
	Paths []string `arg:"" optional:"" default:"." help:"Test programs or directories holding them."`
}

func (c *TestCmd) Run(env *Env) error {
	files, err := collectTestFiles(c.Paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(env.Stdout, "no tests found")
		return nil
	}

	passed, failed := 0, 0
	for _, path := range files {
		if ok, reason := env.runTestFile(path); !ok {
			failed++
			fmt.Fprintf(env.Stdout, "%s %s: %s\n", env.styles.error.Render("FAIL"), path, reason)
			continue
		}
		passed++
	}
	fmt.Fprintf(env.Stdout, "passed %d, failed %d\n", passed, failed)
	if failed > 0 {
		return exitStatus(1)
	}
	return nil
}

func (e *Env) runTestFile(path string) (bool, string) {
	src, err := pipeline.ReadSource(path)
	if err != nil {
		return false, err.Error()
	}
	def, _, err := e.definition(path)
	if err != nil {
		return false, err.Error()
	}
	exp, err := spectest.Parse(path, src)
	if err != nil {
		return false, err.Error()
	}
	ok, reason, err := spectest.Check(spectest.Run(def, src, e.pipelineOptions()), exp, filepath.Dir(path))
	if err != nil {
		return false, err.Error()
	}
	return ok, reason
}

// collectTestFiles expands targets into sorted test program paths.
// Files named explicitly are always taken.
func collectTestFiles(targets []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if base := d.Name(); path != target && (base == ".git" || base == "node_modules") {
					return filepath.SkipDir
				}
				return nil
			}
			if isTestFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func isTestFile(path string) bool {
	return strings.Contains(filepath.Base(path), ".test.")
}
