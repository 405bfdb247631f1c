package forest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/p-jackson/arm/internal/manifest"
	"github.com/p-jackson/arm/internal/marker"
	"github.com/p-jackson/arm/internal/vcs"
)

// InitOptions configures Init.
type InitOptions struct {
	// Root is the forest root; defaults to the main repository itself.
	Root     string
	Manifest string
}

// Init writes a manifest for the main repository in mainDir listing every
// repository found under the root, and the root marker. An existing
// manifest is left untouched.
func Init(env Env, mainDir string, opts InitOptions) error {
	mainDir, err := filepath.Abs(mainDir)
	if err != nil {
		return err
	}
	root := mainDir
	if opts.Root != "" {
		if root, err = filepath.Abs(opts.Root); err != nil {
			return err
		}
	}
	mainFromRoot, err := filepath.Rel(root, mainDir)
	if err != nil || mainFromRoot == ".." || strings.HasPrefix(mainFromRoot, ".."+string(filepath.Separator)) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("root %s must contain the main repository %s", root, mainDir))
	}
	rootFromMain, err := filepath.Rel(mainDir, root)
	if err != nil {
		return err
	}

	manifestPath := manifest.Path(mainDir, opts.Manifest)
	if isFile(manifestPath) {
		env.notice("Skipping init, already have %s", manifestPath)
		return nil
	}

	m := &manifest.Manifest{
		Dependencies:  discover(env, root, mainDir),
		RootDirectory: filepath.ToSlash(rootFromMain),
	}
	if err := manifest.Save(manifestPath, m); err != nil {
		return err
	}
	env.notice("Initialised dependencies in %s", manifestPath)

	return writeMarker(env, root, filepath.ToSlash(mainFromRoot), opts.Manifest)
}

func writeMarker(env Env, root, mainFromRoot, manifestName string) error {
	word := "Initialised"
	if marker.Exists(root) {
		word = "Reinitialised"
	}
	mk := &marker.File{
		ConfigurationDirectory: mainFromRoot,
		Manifest:               manifestName,
		MainPath:               mainFromRoot,
	}
	if err := marker.Save(root, mk); err != nil {
		return err
	}
	env.notice("%s marker file at root of forest: %s", word, marker.Path(root))
	return nil
}

// discover walks root breadth-first with an explicit worklist. The main
// repository is descended into (nested dependencies live there) but not
// recorded; other repositories are recorded and not descended into, and
// backend metadata directories are never entered.
func discover(env Env, root, mainDir string) manifest.Dependencies {
	deps := manifest.Dependencies{}
	pending := []string{root}
	for i := 0; i < len(pending); i++ {
		items, err := os.ReadDir(pending[i])
		if err != nil {
			log.Warn().Err(err).Str("dir", pending[i]).Msg("reading directory")
			continue
		}
		for _, item := range items {
			if !item.IsDir() || vcs.IsMetadataDir(item.Name()) {
				continue
			}
			dir := filepath.Join(pending[i], item.Name())
			if dir == mainDir || !vcs.IsRepository(dir) {
				pending = append(pending, dir)
				continue
			}
			rel, _ := filepath.Rel(root, dir)
			rel = filepath.ToSlash(rel)
			b, _ := vcs.DetectDir(dir)
			origin, err := b.Origin(dir)
			if err != nil || origin == "" {
				log.Warn().Err(err).Str("repo", rel).Msg("no origin")
				env.warn("Skipping %s: no origin configured", rel)
				continue
			}
			deps.Set(rel, manifest.Dependency{Origin: origin})
		}
	}
	return deps
}

// Bootstrap writes a root marker for the main repository in mainDir using
// its manifest's rootDirectory. It lets install run straight after a plain
// clone of the main repository.
func Bootstrap(env Env, mainDir, manifestName string) (string, error) {
	mainDir, err := filepath.Abs(mainDir)
	if err != nil {
		return "", err
	}
	m, err := manifest.Load(manifest.Path(mainDir, manifestName))
	if err != nil {
		return "", err
	}
	root := filepath.Join(mainDir, filepath.FromSlash(m.Root()))
	mainFromRoot, err := filepath.Rel(root, mainDir)
	if err != nil {
		return "", err
	}
	if err := writeMarker(env, root, filepath.ToSlash(mainFromRoot), manifestName); err != nil {
		return "", err
	}
	return root, nil
}
