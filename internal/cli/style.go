package cli

import (
	"fmt"
	"io"
	"os"

	"langgen/internal/diag"
	"langgen/internal/runtimeio"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	error   lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	path    lipgloss.Style
	ok      lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
		plain := r.NewStyle()
		return styles{error: plain, warning: plain, info: plain, path: plain, ok: plain}
	}
	r.SetColorProfile(termenv.ANSI)
	return styles{
		error:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		info:    r.NewStyle().Foreground(lipgloss.Color("4")),
		path:    r.NewStyle().Bold(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && runtimeio.IsInteractive(f) && os.Getenv("NO_COLOR") == ""
}

func (s styles) severity(sev diag.Severity) lipgloss.Style {
	switch sev {
	case diag.SeverityError:
		return s.error
	case diag.SeverityWarning:
		return s.warning
	}
	return s.info
}

// diagnostic renders d in the diag.Format layout with the location and
// severity highlighted.
func (s styles) diagnostic(path string, d diag.Diagnostic) string {
	where := path
	if d.Range.Line > 0 {
		where = fmt.Sprintf("%s:%d:%d", path, d.Range.Line, d.Range.Col)
	}
	label := d.Severity.String()
	if d.Code != "" {
		label += " " + d.Code
	}
	return fmt.Sprintf("%s: %s: %s", s.path.Render(where), s.severity(d.Severity).Render(label), d.Message)
}
