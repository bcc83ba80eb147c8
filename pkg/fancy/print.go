// Package fancy prints colored status lines for the command line.
package fancy

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
)

var (
	Info  = aurora.White
	Good  = aurora.Green
	Warn  = aurora.Yellow
	Error = aurora.Red
)

type Level = func(arg any) aurora.Value

// StatWidth is the width labels are padded to by Stat.
const StatWidth = 28

func Fprintln(w io.Writer, level Level, args ...any) {
	_, _ = fmt.Fprintln(w, level(fmt.Sprint(args...)))
}

func Fprintf(w io.Writer, level Level, format string, args ...any) {
	_, _ = fmt.Fprint(w, level(fmt.Sprintf(format, args...)))
}

func Finfoln(w io.Writer, args ...any) {
	Fprintln(w, Info, args...)
}

func Finfof(w io.Writer, format string, args ...any) {
	Fprintf(w, Info, format, args...)
}

func Fwarnln(w io.Writer, args ...any) {
	Fprintln(w, Warn, args...)
}

func Fwarnf(w io.Writer, format string, args ...any) {
	Fprintf(w, Warn, format, args...)
}

func Ferrorln(w io.Writer, args ...any) {
	Fprintln(w, Error, args...)
}

func Ferrorf(w io.Writer, format string, args ...any) {
	Fprintf(w, Error, format, args...)
}

// Stat prints a "label.......: value" line, with the label padded with dots
// so that the values line up.
func Stat(w io.Writer, level Level, label string, value any) {
	Fprintf(w, level, "%s: %v\n", dotPad(label, StatWidth), value)
}

func dotPad(label string, width int) string {
	if n := width - len([]rune(label)); n > 0 {
		return label + strings.Repeat(".", n)
	}
	return label
}
