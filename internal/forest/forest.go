package forest

import (
	"path/filepath"

	"github.com/p-jackson/arm/internal/manifest"
	"github.com/p-jackson/arm/internal/marker"
	"github.com/p-jackson/arm/internal/vcs"
)

// Forest holds the resolved paths and loaded configuration for one command.
type Forest struct {
	Root         string
	Marker       *marker.File
	ConfigDir    string
	ManifestName string
	ManifestPath string
	Manifest     *manifest.Manifest
}

// Load reads the marker in root and the manifest it points to. A non-empty
// manifestName overrides the one recorded in the marker.
func Load(root, manifestName string) (*Forest, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	mk, err := marker.Load(root)
	if err != nil {
		return nil, err
	}
	name := mk.Manifest
	if manifestName != "" {
		name = manifestName
	}
	configDir := filepath.Join(root, mk.ConfigurationDirectory)
	path := manifest.Path(configDir, name)
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return &Forest{
		Root:         root,
		Marker:       mk,
		ConfigDir:    configDir,
		ManifestName: name,
		ManifestPath: path,
		Manifest:     m,
	}, nil
}

// ResolvePath places a dependency declared at p. Nested and sibling layouts
// are the same composition; only rootDirectory differs ("." or "..").
func ResolvePath(root, configDir, rootDirectory, p string) string {
	return filepath.Join(root, configDir, rootDirectory, filepath.FromSlash(p))
}

// DependencyDir returns the absolute location of a declared dependency.
func (f *Forest) DependencyDir(p string) string {
	return ResolvePath(f.Root, f.Marker.ConfigurationDirectory, f.Manifest.Root(), p)
}

// MainDir returns the absolute location of the main repository.
func (f *Forest) MainDir() string {
	return filepath.Join(f.Root, f.Marker.Main())
}

// Resolve builds the repository entries in manifest order, preceded by the
// main repository when includeMain is set. On-disk metadata decides the
// backend of present repositories; the origin heuristic is only used for
// missing ones.
func (f *Forest) Resolve(includeMain bool) []Entry {
	entries := make([]Entry, 0, len(f.Manifest.Dependencies)+1)
	if includeMain {
		dir := f.MainDir()
		b, _ := vcs.DetectDir(dir)
		entries = append(entries, Entry{
			Path:    f.Marker.Main(),
			Dir:     dir,
			Backend: b,
			Present: isDir(dir),
			Main:    true,
		})
	}
	for _, d := range f.Manifest.Dependencies {
		e := Entry{
			Path:   d.Path,
			Dir:    f.DependencyDir(d.Path),
			Origin: d.Origin,
		}
		switch {
		case d.PinnedRevision != "":
			e.Policy, e.Revision = Pinned, d.PinnedRevision
		case d.LockedBranch != "":
			e.Policy, e.Branch = Locked, d.LockedBranch
		}
		e.Present = isDir(e.Dir)
		if b, ok := vcs.DetectDir(e.Dir); e.Present && ok {
			e.Backend = b
		} else if b, ok := vcs.Detect(d.Origin, f.Root); ok {
			e.Backend = b
		}
		entries = append(entries, e)
	}
	return entries
}
