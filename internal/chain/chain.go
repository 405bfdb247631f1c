package chain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/p-jackson/arm/internal/ui"
)

// Command is a single external program invocation. It is never run through a shell.
type Command struct {
	Program string
	Args    []string
	Dir     string
}

// String renders the command line as shown to the user.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Runner executes command chains.
type Runner struct {
	out    io.Writer
	styles ui.Styles
	base   string
}

// NewRunner creates a runner writing headers and command output to out.
// Working directories under base are displayed relative to it.
func NewRunner(out io.Writer, styles ui.Styles, base string) *Runner {
	return &Runner{out: out, styles: styles, base: base}
}

// queue is a FIFO of pending commands consumed by a single worker.
type queue struct {
	items []Command
	head  int
}

func (q *queue) next() (Command, bool) {
	if q.head >= len(q.items) {
		return Command{}, false
	}
	c := q.items[q.head]
	q.head++
	return c, true
}

// Run executes cmds in order and returns once the last has exited.
// Individual command failures are reported in the output and logged, never
// returned. The only error is ctx cancellation, checked between commands.
func (r *Runner) Run(ctx context.Context, cmds []Command) error {
	q := &queue{items: cmds}
	progress := ui.NewProgress(r.out, len(cmds), r.styles)
	for {
		c, ok := q.next()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		progress.Step(r.label(c))
		r.exec(ctx, c)
		_, _ = fmt.Fprintln(r.out)
	}
}

func (r *Runner) exec(ctx context.Context, c Command) {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...) //nolint:gosec // program and args come from backend command builders
	cmd.Dir = c.Dir
	cmd.Stdout = r.out
	cmd.Stderr = r.out

	err := cmd.Run()
	if err == nil {
		log.Debug().Str("dir", c.Dir).Str("command", c.String()).Msg("command succeeded")
		return
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Debug().Str("dir", c.Dir).Str("command", c.String()).Int("exit", exitErr.ExitCode()).Msg("command failed")
		return
	}
	log.Warn().Err(err).Str("dir", c.Dir).Str("command", c.String()).Msg("command could not be started")
	_, _ = fmt.Fprintln(r.out, r.styles.Error.Render(fmt.Sprintf("%s: %v", c.Program, err)))
}

func (r *Runner) label(c Command) string {
	dir := c.Dir
	if dir == "" {
		return c.String()
	}
	if r.base != "" {
		if rel, err := filepath.Rel(r.base, dir); err == nil {
			dir = rel
		}
	}
	return dir + ": " + c.String()
}
