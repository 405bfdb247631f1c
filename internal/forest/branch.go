package forest

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/p-jackson/arm/internal/chain"
)

// PlanMakeBranch returns the commands creating branch name in every free
// repository, main included. Pinned and locked repositories are left alone.
// An empty startPoint branches from each repository's current position.
func (f *Forest) PlanMakeBranch(env Env, name, startPoint string, publish bool) []chain.Command {
	var cmds []chain.Command
	for _, e := range f.Resolve(true) {
		if !movable(env, e) || !present(env, e) {
			continue
		}
		if publish && !e.Backend.SupportsPublish() {
			env.notice("Not publishing %s: %s does not track upstream branches", e.Path, e.BackendName())
		}
		cmds = append(cmds, e.Backend.MakeBranchCommands(e.Dir, name, startPoint, publish)...)
	}
	return cmds
}

// MakeBranch creates and switches to branch name across the free repositories.
func (f *Forest) MakeBranch(ctx context.Context, env Env, name, startPoint string, publish bool) error {
	return env.Runner.Run(ctx, f.PlanMakeBranch(env, name, startPoint, publish))
}

// PlanSwitch returns the commands checking out the existing branch name in
// every free repository. A repository without the branch is skipped with a
// warning and the rest still switch.
func (f *Forest) PlanSwitch(env Env, name string) []chain.Command {
	var cmds []chain.Command
	for _, e := range f.Resolve(true) {
		if !movable(env, e) || !present(env, e) {
			continue
		}
		ok, err := e.Backend.HasBranch(e.Dir, name)
		if err != nil {
			log.Warn().Err(err).Str("repo", e.Path).Msg("checking branch")
			env.warn("Skipping %s: %v", e.Path, err)
			continue
		}
		if !ok {
			log.Warn().Str("repo", e.Path).Str("branch", name).Msg("branch not found")
			env.warn("Skipping %s: branch %s not found", e.Path, name)
			continue
		}
		cmds = append(cmds, e.Backend.SwitchCommand(e.Dir, name))
	}
	return cmds
}

// Switch checks out branch name across the free repositories.
func (f *Forest) Switch(ctx context.Context, env Env, name string) error {
	return env.Runner.Run(ctx, f.PlanSwitch(env, name))
}

// movable applies the tracking policy for branch operations.
func movable(env Env, e Entry) bool {
	switch e.Policy {
	case Pinned:
		env.notice("Skipping pinned repository: %s", e.Path)
		return false
	case Locked:
		env.notice("Skipping locked repository: %s (locked to %s)", e.Path, e.Branch)
		return false
	}
	return true
}
