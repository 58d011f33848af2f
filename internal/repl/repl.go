package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"langgen/internal/evaluator"
	"langgen/internal/langdef"
	"langgen/internal/object"
	"langgen/internal/pipeline"
	"langgen/internal/runtimeio"
)

const continuationPrompt = "....> "

// Start reads entries from in until end of input or "exit". Variables and
// functions persist between entries; an entry continues over several lines
// while braces or parentheses are open.
func Start(def *langdef.Definition, in io.Reader, out io.Writer, opts pipeline.Options) error {
	reader := bufio.NewReader(in)
	opts.Console = runtimeio.NewConsole(reader, out)
	opts.Stream = out
	session := pipeline.NewSession(def, opts)
	prompt := def.Slug() + "> "

	fmt.Fprintf(out, "%s REPL (Ctrl+D to exit)\n", def.DisplayName())

	var buf strings.Builder
	braces, parens := 0, 0

	for {
		if buf.Len() == 0 {
			fmt.Fprint(out, prompt)
		} else {
			fmt.Fprint(out, continuationPrompt)
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if line == "" && err != nil {
			fmt.Fprint(out, "\n")
			return nil
		}
		line = strings.TrimRight(line, "\r\n")
		trim := strings.TrimSpace(line)

		if buf.Len() == 0 && (trim == "exit" || trim == "quit") {
			return nil
		}

		buf.WriteString(line)
		buf.WriteString("\n")
		braces, parens = updateBalance(line, braces, parens)
		if braces > 0 || parens > 0 {
			continue
		}

		src := buf.String()
		buf.Reset()
		eval(def, session, src, out, opts)
	}
}

func eval(def *langdef.Definition, session *evaluator.Evaluator, src string, out io.Writer, opts pipeline.Options) {
	prog, err := pipeline.Compile(def, src, opts)
	if err != nil {
		fmt.Fprintln(out, pipeline.Render(def, err))
		return
	}
	result, err := session.Run(prog)
	// printed lines already reached out through the stream
	session.TakeOutput()
	if err != nil {
		fmt.Fprintln(out, pipeline.Render(def, err))
		return
	}
	if result != nil && result.Type() != object.NULL_OBJ {
		fmt.Fprintln(out, session.Render(result))
	}
}

// updateBalance tracks open braces and parentheses outside string
// literals. Strings and comments never span lines.
func updateBalance(line string, braces, parens int) (int, int) {
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		return braces, parens
	}
	var quote byte
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == quote:
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			quote = ch
		case '{':
			braces++
		case '}':
			if braces > 0 {
				braces--
			}
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		}
	}
	return braces, parens
}
