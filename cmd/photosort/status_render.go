package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

// statusStyles pairs each kind with its bracketed tag and terminal color.
var statusStyles = map[statusKind]struct {
	tag    string
	colors text.Colors
}{
	statusInfo:  {"INFO", text.Colors{text.FgBlue}},
	statusOK:    {"OK", text.Colors{text.FgGreen}},
	statusWarn:  {"WARN", text.Colors{text.FgYellow}},
	statusError: {"ERROR", text.Colors{text.FgRed, text.Bold}},
}

// statusLabelWidth fits the longest preflight check name.
const statusLabelWidth = 24

// renderStatusLine formats one check result as "  Label:   [TAG] message".
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	line := fmt.Sprintf("  %-*s [%s]", statusLabelWidth, label+":", statusStyles[kind].tag)
	if message != "" {
		line += " " + message
	}
	return paint(line, kind, colorize)
}

// paint colors s for kind when colorize is set.
func paint(s string, kind statusKind, colorize bool) string {
	if !colorize {
		return s
	}
	return statusStyles[kind].colors.Sprint(s)
}

// shouldColorize reports whether w is a terminal, including Cygwin and MSYS
// consoles.
func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
