package forest

import "github.com/p-jackson/arm/internal/vcs"

// Policy controls whether forest-wide branch operations may move a repository.
type Policy int

const (
	Free Policy = iota
	Pinned
	Locked
)

func (p Policy) String() string {
	switch p {
	case Pinned:
		return "pinned"
	case Locked:
		return "locked"
	default:
		return "free"
	}
}

// Entry is one repository of the forest, derived fresh on every command.
type Entry struct {
	Path     string
	Dir      string
	Origin   string
	Backend  vcs.Backend // nil when unknown
	Policy   Policy
	Revision string // pinned revision
	Branch   string // locked branch
	Present  bool
	Main     bool
}

// BackendName returns the backend kind, or "unknown".
func (e Entry) BackendName() string {
	if e.Backend == nil {
		return "unknown"
	}
	return string(e.Backend.Kind())
}
