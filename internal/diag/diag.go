package diag

import (
	"fmt"
	"sort"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

type Range struct {
	Line   int // 1-based; 0 when the diagnostic is not tied to source
	Col    int // 1-based byte column
	Length int // bytes; 1 if unknown
}

type Diagnostic struct {
	Code     string
	Message  string
	Severity Severity
	Range    Range
}

func New(code string, sev Severity, r Range, format string, args ...any) Diagnostic {
	return Diagnostic{Code: code, Message: fmt.Sprintf(format, args...), Severity: sev, Range: r}
}

// Format renders d the way compilers do: path:line:col: severity code: message.
// Diagnostics without a line drop the position.
func (d Diagnostic) Format(path string) string {
	where := path
	if d.Range.Line > 0 {
		where = fmt.Sprintf("%s:%d:%d", path, d.Range.Line, d.Range.Col)
	}
	if d.Code != "" {
		return fmt.Sprintf("%s: %s %s: %s", where, d.Severity.String(), d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", where, d.Severity.String(), d.Message)
}

func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by position, keeping insertion order for ties.
func Sort(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Range, ds[j].Range
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}
