package spectest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type StdoutMode int

const (
	StdoutNone StdoutMode = iota
	StdoutExact
	StdoutContains
	StdoutFile
)

type StdoutExpectation struct {
	Mode  StdoutMode
	Value string
}

func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// MatchStdout compares program output with exp. A relative golden file
// is looked up in baseDir.
func MatchStdout(got string, exp StdoutExpectation, baseDir string) (bool, string, error) {
	got = NormalizeNewlines(got)
	switch exp.Mode {
	case StdoutNone:
		return true, "", nil
	case StdoutExact:
		if want := NormalizeNewlines(exp.Value); got != want {
			return false, fmt.Sprintf("stdout mismatch: expected %q, got %q", want, got), nil
		}
		return true, "", nil
	case StdoutContains:
		if want := NormalizeNewlines(exp.Value); !strings.Contains(got, want) {
			return false, fmt.Sprintf("stdout mismatch: expected to contain %q, got %q", want, got), nil
		}
		return true, "", nil
	case StdoutFile:
		if exp.Value == "" {
			return false, "stdout file path is empty", nil
		}
		path := exp.Value
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return false, "", err
		}
		if want := NormalizeNewlines(string(b)); got != want {
			return false, fmt.Sprintf("stdout mismatch: expected file %q to match, got %q", exp.Value, got), nil
		}
		return true, "", nil
	}
	return false, "unknown stdout expectation", nil
}
