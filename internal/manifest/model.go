package manifest

// DefaultFilename is the manifest name used when no --manifest is given.
const DefaultFilename = "arm.json"

// Filename returns the manifest file name for a named manifest.
func Filename(name string) string {
	if name == "" {
		return DefaultFilename
	}
	return "arm_" + name + ".json"
}

// Manifest represents arm.json.
type Manifest struct {
	Dependencies  Dependencies `json:"dependencies"`
	RootDirectory string       `json:"rootDirectory,omitempty"`
}

// Root returns rootDirectory, which defaults to the configuration directory.
func (m *Manifest) Root() string {
	if m.RootDirectory == "" {
		return "."
	}
	return m.RootDirectory
}

// Dependencies is an ordered mapping from repository path to declaration.
type Dependencies []Entry

// Entry is one dependency keyed by its path.
type Entry struct {
	Path string
	Dependency
	// ObjectForm keeps a free dependency read as {"origin": ...} in that
	// form when written back.
	ObjectForm bool
}

// Dependency is a declaration: an origin plus at most one of a pinned
// revision or a locked branch. Neither means the repository is free.
type Dependency struct {
	Origin         string `json:"origin"`
	PinnedRevision string `json:"pinnedRevision,omitempty"`
	LockedBranch   string `json:"lockedBranch,omitempty"`
}

// IsFree reports whether forest-wide branch operations may move the repository.
func (d Dependency) IsFree() bool {
	return d.PinnedRevision == "" && d.LockedBranch == ""
}

// Get returns the declaration for path.
func (ds Dependencies) Get(path string) (Dependency, bool) {
	if i := ds.index(path); i >= 0 {
		return ds[i].Dependency, true
	}
	return Dependency{}, false
}

// Set replaces the declaration for path, or appends it.
func (ds *Dependencies) Set(path string, d Dependency) {
	if i := ds.index(path); i >= 0 {
		(*ds)[i].Dependency = d
		return
	}
	*ds = append(*ds, Entry{Path: path, Dependency: d})
}

func (ds Dependencies) index(path string) int {
	for i, e := range ds {
		if e.Path == path {
			return i
		}
	}
	return -1
}
