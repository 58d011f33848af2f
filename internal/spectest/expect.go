// Package spectest checks programs against expectations written in their
// leading comments:
//
//	# expect: ok
//	# expect: error
//	# expect: error contains "Division by zero"
//	# expect: stdout "5\n"
//	# expect: stdout contains "hi"
//	# expect: stdout file "add.out"
//
// Directives are read up to the first line that is neither blank nor a
// comment. One outcome and one stdout directive are allowed.
package spectest

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeError
	OutcomeErrorContains
)

type Expectation struct {
	Outcome   Outcome
	Substring string
	Stdout    StdoutExpectation
}

// Parse reads the directives of src. name is used in error messages.
func Parse(name, src string) (Expectation, error) {
	exp := Expectation{Outcome: OutcomeOK}
	hasOutcome, hasStdout := false, false

	sc := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}
		comment := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if !strings.HasPrefix(strings.ToLower(comment), "expect:") {
			continue
		}
		body := strings.TrimSpace(comment[len("expect:"):])
		lower := strings.ToLower(body)

		fail := func(format string, args ...any) error {
			return fmt.Errorf("%s:%d: %s", name, lineNo, fmt.Sprintf(format, args...))
		}
		outcome := func(o Outcome) error {
			if hasOutcome {
				return fail("multiple outcome expect directives")
			}
			hasOutcome = true
			exp.Outcome = o
			return nil
		}
		stdout := func(mode StdoutMode, keyword string) error {
			if hasStdout {
				return fail("multiple stdout expect directives")
			}
			hasStdout = true
			val, err := parseQuoted(body[len(keyword):])
			if err != nil {
				return fail("%s: %v", keyword, err)
			}
			exp.Stdout = StdoutExpectation{Mode: mode, Value: val}
			return nil
		}

		var err error
		switch {
		case lower == "ok":
			err = outcome(OutcomeOK)
		case lower == "error":
			err = outcome(OutcomeError)
		case strings.HasPrefix(lower, "error contains"):
			if err = outcome(OutcomeErrorContains); err == nil {
				exp.Substring, err = parseQuoted(body[len("error contains"):])
				if err != nil {
					err = fail("error contains: %v", err)
				}
			}
		case strings.HasPrefix(lower, "stdout file"):
			err = stdout(StdoutFile, "stdout file")
		case strings.HasPrefix(lower, "stdout contains"):
			err = stdout(StdoutContains, "stdout contains")
		case strings.HasPrefix(lower, "stdout"):
			err = stdout(StdoutExact, "stdout")
		default:
			err = fail("invalid expect directive")
		}
		if err != nil {
			return Expectation{}, err
		}
	}
	return exp, sc.Err()
}

func parseQuoted(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw[0] != '"' {
		return "", fmt.Errorf("expected quoted string")
	}
	return strconv.Unquote(raw)
}
