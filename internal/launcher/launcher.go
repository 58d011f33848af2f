// Package launcher is the runtime half of a generated interpreter: it
// implements the "<interpreter> <sourcefile>" command line.
package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"langgen/internal/langdef"
	"langgen/internal/pipeline"
	"langgen/internal/runtimeio"
)

// DefinitionName is the file next to the executable that replaces the
// embedded definition.
const DefinitionName = "language.yaml"

var executable = os.Executable

// Main runs the program named by args and returns the process exit code.
// The definition comes from DefinitionName next to the executable when
// that file exists, else from embedded. Program output and the single
// failure line both go to stdout.
func Main(embedded []byte, args []string, stdin io.Reader, stdout io.Writer) int {
	data, err := definitionData(embedded)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	def, err := langdef.Parse(data)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	if len(args) != 1 {
		fmt.Fprintf(stdout, "Usage: %s <sourcefile>\n", def.Slug())
		return 1
	}

	src, err := pipeline.ReadSource(args[0])
	if err != nil {
		fmt.Fprintln(stdout, pipeline.Render(def, err))
		return 1
	}
	out, err := pipeline.Run(def, src, pipeline.Options{
		Console: runtimeio.NewConsole(stdin, stdout),
	})
	if err != nil {
		fmt.Fprintln(stdout, pipeline.Render(def, err))
		return 1
	}
	fmt.Fprint(stdout, out)
	return 0
}

func definitionData(embedded []byte) ([]byte, error) {
	exe, err := executable()
	if err != nil {
		return embedded, nil
	}
	data, err := os.ReadFile(filepath.Join(filepath.Dir(exe), DefinitionName))
	if errors.Is(err, os.ErrNotExist) {
		return embedded, nil
	}
	return data, err
}
