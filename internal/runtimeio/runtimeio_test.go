package runtimeio

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConsoleInput(t *testing.T) {
	var prompts bytes.Buffer
	c := NewConsole(strings.NewReader("Ada\r\nlast"), &prompts)

	tests := []struct {
		prompt string
		want   string
	}{
		{"Name? ", "Ada"},
		{"", "last"},
	}
	for i, tt := range tests {
		got, err := c.Input(tt.prompt)
		if err != nil {
			t.Fatalf("tests[%d] unexpected error: %v", i, err)
		}
		if got != tt.want {
			t.Fatalf("tests[%d] got %q, want %q", i, got, tt.want)
		}
	}
	if prompts.String() != "Name? " {
		t.Fatalf("prompts = %q", prompts.String())
	}

	if _, err := c.Input("more? "); !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("expected ErrInputUnavailable at EOF, got %v", err)
	}
}

func TestConsoleWithoutReader(t *testing.T) {
	c := NewConsole(nil, nil)
	if _, err := c.Input("x"); !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("expected ErrInputUnavailable, got %v", err)
	}
}

func TestIsInteractiveNil(t *testing.T) {
	if IsInteractive(nil) {
		t.Fatalf("nil file cannot be interactive")
	}
}
