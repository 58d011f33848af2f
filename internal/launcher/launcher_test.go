package launcher

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"langgen/internal/langdef"
)

func kidsDefinition(t *testing.T) []byte {
	t.Helper()
	def, err := langdef.Template("kids")
	if err != nil {
		t.Fatal(err)
	}
	data, err := langdef.Marshal(def)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.kid")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMainRunsProgram(t *testing.T) {
	def := kidsDefinition(t)
	tests := []struct {
		src   string
		stdin string
		out   string
		code  int
	}{
		{"teach add(a, b) { give a plus b }\nremember x = add(2, 3)\nsay(x)", "", "5\n", 0},
		{"remember n = ask(\"? \")\nsay(\"hi\", n)", "sam\n", "? hi sam\n", 0},
		{"say(1)\nsay(1 / 0)", "", "Something went wrong while running: Division by zero\n", 1},
		{"say(1", "", "Oops! Something is wrong with your code: Expected ')' after arguments, got end of input at line 1, column 6\n", 1},
	}
	for i, tt := range tests {
		var stdout bytes.Buffer
		code := Main(def, []string{writeProgram(t, tt.src)}, strings.NewReader(tt.stdin), &stdout)
		if code != tt.code {
			t.Fatalf("tests[%d] exit %d, want %d (output %q)", i, code, tt.code, stdout.String())
		}
		if stdout.String() != tt.out {
			t.Fatalf("tests[%d] output %q, want %q", i, stdout.String(), tt.out)
		}
	}
}

func TestMainUsage(t *testing.T) {
	var stdout bytes.Buffer
	if code := Main(kidsDefinition(t), nil, strings.NewReader(""), &stdout); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if stdout.String() != "Usage: kidslang <sourcefile>\n" {
		t.Fatalf("usage %q", stdout.String())
	}
}

func TestMainMissingFile(t *testing.T) {
	var stdout bytes.Buffer
	code := Main(kidsDefinition(t), []string{"missing.kid"}, strings.NewReader(""), &stdout)
	if code != 1 || stdout.String() != "Error: File 'missing.kid' not found\n" {
		t.Fatalf("exit %d, output %q", code, stdout.String())
	}
}

func TestMainBadDefinition(t *testing.T) {
	var stdout bytes.Buffer
	code := Main([]byte("keywords: [1, 2"), []string{"x"}, strings.NewReader(""), &stdout)
	if code != 1 || !strings.HasPrefix(stdout.String(), "Error: ") {
		t.Fatalf("exit %d, output %q", code, stdout.String())
	}
}

func TestMainPrefersDefinitionNextToExecutable(t *testing.T) {
	bin := t.TempDir()
	prev := executable
	executable = func() (string, error) { return filepath.Join(bin, "kidslang"), nil }
	t.Cleanup(func() { executable = prev })

	prog := writeProgram(t, "print(1 + 1)")
	var stdout bytes.Buffer
	if code := Main(kidsDefinition(t), []string{prog}, strings.NewReader(""), &stdout); code != 1 {
		t.Fatalf("embedded kids definition should reject print, got %q", stdout.String())
	}

	simple, err := langdef.Template("simple")
	if err != nil {
		t.Fatal(err)
	}
	if err := langdef.Save(simple, filepath.Join(bin, DefinitionName)); err != nil {
		t.Fatal(err)
	}
	stdout.Reset()
	if code := Main(kidsDefinition(t), []string{prog}, strings.NewReader(""), &stdout); code != 0 || stdout.String() != "2\n" {
		t.Fatalf("sibling definition not used: exit %d, output %q", code, stdout.String())
	}
}
