package forest

import (
	"context"
	"fmt"
	"io"

	"github.com/p-jackson/arm/internal/chain"
	"github.com/p-jackson/arm/internal/ui"
)

// Runner executes a command chain; chain.Runner is the production one.
type Runner interface {
	Run(ctx context.Context, cmds []chain.Command) error
}

// Env carries what operations need from the caller: where to run commands
// and where to print per-repository notices.
type Env struct {
	Runner Runner
	Out    io.Writer
	Styles ui.Styles
}

// NewEnv returns an Env running commands with a chain.Runner on out.
func NewEnv(out io.Writer, styles ui.Styles, base string) Env {
	return Env{Runner: chain.NewRunner(out, styles, base), Out: out, Styles: styles}
}

func (e Env) notice(format string, args ...any) {
	_, _ = fmt.Fprintf(e.Out, format+"\n", args...)
}

func (e Env) warn(format string, args ...any) {
	e.Styles.Warnf(e.Out, format, args...)
}
