package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles groups the terminal styles used for command headers and messages.
type Styles struct {
	Command lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Header  lipgloss.Style
}

// NewStyles returns coloured styles, or plain ones when color is false.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Command: plain, Warning: plain, Error: plain, Header: plain}
	}
	return Styles{
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Header:  lipgloss.NewStyle().Bold(true),
	}
}

// PlainStyles is NewStyles(false).
func PlainStyles() Styles { return NewStyles(false) }

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Warnf prints a formatted line to out in the warning style.
func (s Styles) Warnf(out io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(out, s.Warning.Render(fmt.Sprintf(format, args...)))
}
