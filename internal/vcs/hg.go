package vcs

import (
	"strings"

	"github.com/p-jackson/arm/internal/chain"
)

type hgBackend struct{}

func (hgBackend) Kind() Kind            { return KindHg }
func (hgBackend) MetadataDir() string   { return ".hg" }
func (hgBackend) SupportsPublish() bool { return false }

// CloneCommands uses --updaterev for both branches and revisions; hg has no
// separate detached state to reach.
func (hgBackend) CloneCommands(base, origin, dest string, opts CloneOptions) []chain.Command {
	args := []string{"clone"}
	switch {
	case opts.Revision != "":
		args = append(args, "--updaterev", opts.Revision)
	case opts.Branch != "":
		args = append(args, "--updaterev", opts.Branch)
	}
	args = append(args, origin, dest)
	return []chain.Command{{Program: "hg", Args: args, Dir: base}}
}

func (hgBackend) StatusCommand(dir string) chain.Command {
	return chain.Command{Program: "hg", Args: []string{"status"}, Dir: dir}
}

func (hgBackend) OutgoingCommand(dir string) chain.Command {
	return chain.Command{Program: "hg", Args: []string{"outgoing"}, Dir: dir}
}

// MakeBranchCommands marks the working directory for a new named branch; hg
// records it with the next commit.
func (hgBackend) MakeBranchCommands(dir, name, startPoint string, _ bool) []chain.Command {
	var cmds []chain.Command
	if startPoint != "" {
		cmds = append(cmds, chain.Command{Program: "hg", Args: []string{"update", startPoint}, Dir: dir})
	}
	return append(cmds, chain.Command{Program: "hg", Args: []string{"branch", name}, Dir: dir})
}

func (hgBackend) SwitchCommand(dir, branch string) chain.Command {
	return chain.Command{Program: "hg", Args: []string{"update", branch}, Dir: dir}
}

func (hgBackend) HasBranch(dir, branch string) (bool, error) {
	return succeeds(dir, "hg", "identify", "--rev", branch)
}

func (hgBackend) CurrentBranch(dir string) (string, error) {
	out, err := output(dir, "hg", "branch")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (hgBackend) Origin(dir string) (string, error) {
	out, err := output(dir, "hg", "config", "paths.default")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
