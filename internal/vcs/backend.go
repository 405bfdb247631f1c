package vcs

import "github.com/p-jackson/arm/internal/chain"

// Kind names a backend.
type Kind string

const (
	KindGit Kind = "git"
	KindHg  Kind = "hg"
)

// CloneOptions selects what a fresh clone should be left on. At most one of
// Branch and Revision is set.
type CloneOptions struct {
	Branch   string
	Revision string
}

// Backend builds the external commands for one version control system.
type Backend interface {
	Kind() Kind
	// MetadataDir is the private directory marking a working tree, e.g. ".git".
	MetadataDir() string

	// CloneCommands clones origin into dest, running from base so that
	// relative local origins resolve against it.
	CloneCommands(base, origin, dest string, opts CloneOptions) []chain.Command
	StatusCommand(dir string) chain.Command
	OutgoingCommand(dir string) chain.Command
	MakeBranchCommands(dir, name, startPoint string, publish bool) []chain.Command
	SwitchCommand(dir, branch string) chain.Command
	SupportsPublish() bool

	HasBranch(dir, branch string) (bool, error)
	// CurrentBranch returns "" when the working tree is detached.
	CurrentBranch(dir string) (string, error)
	Origin(dir string) (string, error)
}

var (
	Git Backend = gitBackend{}
	Hg  Backend = hgBackend{}
)

// Backends lists every supported backend in detection order.
func Backends() []Backend {
	return []Backend{Git, Hg}
}
