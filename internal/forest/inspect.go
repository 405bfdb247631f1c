package forest

import (
	"context"

	"github.com/p-jackson/arm/internal/chain"
	"github.com/p-jackson/arm/internal/vcs"
)

// Status shows local modifications in every repository, main included.
// Tracking policy is ignored: pinned and locked repositories are inspected too.
func (f *Forest) Status(ctx context.Context, env Env) error {
	return env.Runner.Run(ctx, f.planInspect(env, vcs.Backend.StatusCommand))
}

// Outgoing shows commits not yet pushed to each repository's upstream.
func (f *Forest) Outgoing(ctx context.Context, env Env) error {
	return env.Runner.Run(ctx, f.planInspect(env, vcs.Backend.OutgoingCommand))
}

// PlanStatus returns the commands Status would run.
func (f *Forest) PlanStatus(env Env) []chain.Command {
	return f.planInspect(env, vcs.Backend.StatusCommand)
}

// PlanOutgoing returns the commands Outgoing would run.
func (f *Forest) PlanOutgoing(env Env) []chain.Command {
	return f.planInspect(env, vcs.Backend.OutgoingCommand)
}

func (f *Forest) planInspect(env Env, build func(vcs.Backend, string) chain.Command) []chain.Command {
	var cmds []chain.Command
	for _, e := range f.Resolve(true) {
		if !present(env, e) {
			continue
		}
		cmds = append(cmds, build(e.Backend, e.Dir))
	}
	return cmds
}

// present reports whether e can be operated on, warning when it cannot.
func present(env Env, e Entry) bool {
	if !e.Present {
		env.warn("Skipping missing repository: %s (run \"arm install\")", e.Path)
		return false
	}
	if e.Backend == nil {
		warnUnknown(env, e)
		return false
	}
	return true
}
