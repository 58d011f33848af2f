package spectest

import (
	"fmt"
	"strings"

	"langgen/internal/langdef"
	"langgen/internal/pipeline"
)

// Result is what one run of a program produced. Failure is the rendered
// one-line error, empty when the run succeeded.
type Result struct {
	Stdout  string
	Failure string
}

// Run executes src the way the generated interpreter would, except that
// output is kept even when the run fails.
func Run(def *langdef.Definition, src string, opts pipeline.Options) Result {
	var out strings.Builder
	opts.Stream = &out
	if _, err := pipeline.Run(def, src, opts); err != nil {
		return Result{Stdout: out.String(), Failure: pipeline.Render(def, err)}
	}
	return Result{Stdout: out.String()}
}

// Check reports whether res meets exp, and why not.
func Check(res Result, exp Expectation, baseDir string) (bool, string, error) {
	switch exp.Outcome {
	case OutcomeOK:
		if res.Failure != "" {
			return false, "expected ok, got error: " + res.Failure, nil
		}
	case OutcomeError, OutcomeErrorContains:
		if res.Failure == "" {
			return false, "expected error, got ok", nil
		}
		if exp.Outcome == OutcomeErrorContains && !strings.Contains(res.Failure, exp.Substring) {
			return false, fmt.Sprintf("error mismatch: expected to contain %q, got %q", exp.Substring, res.Failure), nil
		}
	default:
		return false, "unknown expectation", nil
	}
	return MatchStdout(res.Stdout, exp.Stdout, baseDir)
}
