package ui

import (
	"fmt"
	"io"
)

// Progress numbers the steps of a sequential run, e.g. "[2/5] free: git status".
type Progress struct {
	out    io.Writer
	total  int
	step   int
	styles Styles
}

// NewProgress creates a progress printer for total steps.
func NewProgress(out io.Writer, total int, styles Styles) *Progress {
	return &Progress{out: out, total: total, styles: styles}
}

// Step advances the counter and prints label in the command style.
func (p *Progress) Step(label string) {
	p.step++
	line := fmt.Sprintf("[%d/%d] %s", p.step, p.total, label)
	_, _ = fmt.Fprintln(p.out, p.styles.Command.Render(line))
}
