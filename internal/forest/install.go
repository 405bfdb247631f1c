package forest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/p-jackson/arm/internal/chain"
	"github.com/p-jackson/arm/internal/vcs"
)

// PlanInstall returns the clone commands for every missing dependency.
// Present dependencies are skipped with a notice, unknown backends with a
// warning. A pinned dependency is left at its revision and a locked one on
// its branch.
func (f *Forest) PlanInstall(env Env) []chain.Command {
	cmds, _ := f.planInstall(env)
	return cmds
}

func (f *Forest) planInstall(env Env) (cmds []chain.Command, dests []string) {
	for _, e := range f.Resolve(false) {
		if e.Present {
			env.notice("Skipping already present dependency: %s", e.Path)
			continue
		}
		if e.Backend == nil {
			warnUnknown(env, e)
			continue
		}
		opts := vcs.CloneOptions{Revision: e.Revision, Branch: e.Branch}
		cmds = append(cmds, e.Backend.CloneCommands(f.Root, e.Origin, e.Dir, opts)...)
		dests = append(dests, e.Dir)
	}
	return cmds, dests
}

// Install clones the missing dependencies and returns the commands it ran.
// Running it again once everything is present runs nothing.
func (f *Forest) Install(ctx context.Context, env Env) ([]chain.Command, error) {
	cmds, dests := f.planInstall(env)
	for _, d := range dests {
		if err := os.MkdirAll(filepath.Dir(d), 0o755); err != nil { //nolint:gosec // forest directories are shared
			return nil, err
		}
	}
	return cmds, env.Runner.Run(ctx, cmds)
}

func warnUnknown(env Env, e Entry) {
	log.Warn().Str("repo", e.Path).Str("origin", e.Origin).Msg("unknown repository type")
	env.warn("Skipping unknown remote repository type: %s (%s)", e.Path, e.Origin)
}
