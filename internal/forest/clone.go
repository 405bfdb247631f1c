package forest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/p-jackson/arm/internal/manifest"
	"github.com/p-jackson/arm/internal/vcs"
)

// CloneOptions configures Clone.
type CloneOptions struct {
	// Branch to check out in the main repository.
	Branch   string
	Manifest string
}

// RepoName derives a directory name from an origin: the last path element
// without a trailing ".git".
func RepoName(origin string) string {
	s := strings.TrimRight(origin, `/\`)
	if i := strings.LastIndexAny(s, `/\:`); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSuffix(s, ".git")
}

// Clone bootstraps a forest from a main repository. The main repository is
// cloned into dest/<name>; a nested manifest then makes dest the main
// repository itself, a sibling one keeps dest as the group directory. After
// writing the root marker the dependencies are installed. It returns the
// forest root, or "" when it stopped after the clone.
func Clone(ctx context.Context, env Env, source, dest string, opts CloneOptions) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	name := RepoName(source)
	if dest == "" {
		dest = name
	}
	dest, err = filepath.Abs(dest)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(dest); err == nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("destination already exists: %s", dest))
	}

	b, ok := vcs.Detect(source, wd)
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown repository type: %s", source))
	}

	if err := os.MkdirAll(dest, 0o755); err != nil { //nolint:gosec // forest directories are shared
		return "", err
	}
	staged := filepath.Join(dest, name)
	if err := env.Runner.Run(ctx, b.CloneCommands(wd, source, staged, vcs.CloneOptions{Branch: opts.Branch})); err != nil {
		return "", err
	}
	if !vcs.IsRepository(staged) {
		_ = os.Remove(dest)
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("clone of %s failed", source))
	}

	manifestPath := manifest.Path(staged, opts.Manifest)
	if !isFile(manifestPath) {
		env.warn("Warning: stopping after clone, missing %s", manifest.Filename(opts.Manifest))
		return "", nil
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	var mainFromRoot string
	switch filepath.Clean(filepath.FromSlash(m.Root())) {
	case ".":
		if err := hoist(staged, dest); err != nil {
			return "", err
		}
		mainFromRoot = "."
	case "..":
		mainFromRoot = name
	default:
		env.warn("Warning: stopping after clone, unsupported rootDirectory %q in %s", m.RootDirectory, manifestPath)
		return "", nil
	}
	log.Debug().Str("root", dest).Str("main", mainFromRoot).Msg("cloned main repository")

	if err := writeMarker(env, dest, mainFromRoot, opts.Manifest); err != nil {
		return "", err
	}
	f, err := Load(dest, "")
	if err != nil {
		return "", err
	}
	if _, err := f.Install(ctx, env); err != nil {
		return "", err
	}
	return dest, nil
}

// hoist replaces dir with its only child, staged.
func hoist(staged, dir string) error {
	tmp, err := os.MkdirTemp(filepath.Dir(dir), ".arm-clone-")
	if err != nil {
		return err
	}
	moved := filepath.Join(tmp, filepath.Base(staged))
	if err := os.Rename(staged, moved); err != nil {
		return err
	}
	if err := os.Remove(dir); err != nil {
		return err
	}
	if err := os.Rename(moved, dir); err != nil {
		return err
	}
	return os.Remove(tmp)
}
