package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiBlue, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Out is where CLI messages go. Tests swap it.
var Out io.Writer = os.Stdout

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// Done prints a success line such as "✓ exported chart.png".
func Done(format string, args ...any) {
	fmt.Fprintf(Out, "%s %s\n", StatusIcon(true), fmt.Sprintf(format, args...))
}

// Error prints err to stderr in red.
func Error(err error) {
	fmt.Fprintf(os.Stderr, "%s %s\n", StatusIcon(false), Bad.Sprint(err.Error()))
}

// KeyValue prints an aligned "key  value" line.
func KeyValue(key, value string) {
	fmt.Fprintf(Out, "  %s %s\n", Subtle.Sprintf("%-10s", key), value)
}
