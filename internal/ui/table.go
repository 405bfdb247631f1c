package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table renders rows of data in aligned columns.
type Table struct {
	w *tabwriter.Writer
}

// NewTable creates a table writer and emits the header row rendered with style.
func NewTable(out io.Writer, style Styles, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = style.Header.Render(h)
	}
	_, _ = fmt.Fprintln(tw, strings.Join(styled, "\t"))
	return &Table{w: tw}
}

// Row appends a row of values. Empty strings are shown as "-".
func (t *Table) Row(values ...any) {
	parts := make([]string, len(values))
	for i, v := range values {
		s := fmt.Sprintf("%v", v)
		if s == "" {
			s = "-"
		}
		parts[i] = s
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}
