package runtimeio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var ErrInputUnavailable = errors.New("No input available")

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Console serves the input builtin: prompts go straight to the prompt
// writer while program output is buffered elsewhere.
type Console struct {
	in     *bufio.Reader
	prompt io.Writer
}

func NewConsole(in io.Reader, prompt io.Writer) *Console {
	c := &Console{prompt: prompt}
	if in != nil {
		c.in = bufio.NewReader(in)
	}
	return c
}

// Stdio is the console of a command-line run.
func Stdio() *Console {
	return NewConsole(os.Stdin, os.Stdout)
}

// Input writes prompt and reads one line without its line terminator. A
// final line without a newline is still returned; a read at end of input
// fails with ErrInputUnavailable.
func (c *Console) Input(prompt string) (string, error) {
	if prompt != "" && c.prompt != nil {
		_, _ = fmt.Fprint(c.prompt, prompt)
	}
	if c.in == nil {
		return "", ErrInputUnavailable
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputUnavailable
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
