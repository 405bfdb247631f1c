package vcs

import (
	"strings"

	"github.com/p-jackson/arm/internal/chain"
)

type gitBackend struct{}

func (gitBackend) Kind() Kind          { return KindGit }
func (gitBackend) MetadataDir() string { return ".git" }
func (gitBackend) SupportsPublish() bool {
	return true
}

func (gitBackend) CloneCommands(base, origin, dest string, opts CloneOptions) []chain.Command {
	args := []string{"clone"}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	args = append(args, origin, dest)
	cmds := []chain.Command{{Program: "git", Args: args, Dir: base}}
	if opts.Revision != "" {
		cmds = append(cmds, chain.Command{Program: "git", Args: []string{"checkout", "--quiet", opts.Revision}, Dir: dest})
	}
	return cmds
}

func (gitBackend) StatusCommand(dir string) chain.Command {
	return chain.Command{Program: "git", Args: []string{"status", "--short"}, Dir: dir}
}

func (gitBackend) OutgoingCommand(dir string) chain.Command {
	return chain.Command{Program: "git", Args: []string{"log", "@{u}.."}, Dir: dir}
}

// MakeBranchCommands creates and switches to name. --no-track stops git from
// setting the start point as upstream when it is a remote tracking ref.
func (gitBackend) MakeBranchCommands(dir, name, startPoint string, publish bool) []chain.Command {
	args := []string{"checkout", "-b", name}
	if startPoint != "" {
		args = append(args, "--no-track", startPoint)
	}
	cmds := []chain.Command{{Program: "git", Args: args, Dir: dir}}
	if publish {
		cmds = append(cmds, chain.Command{Program: "git", Args: []string{"push", "--set-upstream", "origin", name}, Dir: dir})
	}
	return cmds
}

func (gitBackend) SwitchCommand(dir, branch string) chain.Command {
	return chain.Command{Program: "git", Args: []string{"checkout", branch}, Dir: dir}
}

// HasBranch checks for a local branch, or a remote one that checkout would
// turn into a tracking branch.
func (gitBackend) HasBranch(dir, branch string) (bool, error) {
	ok, err := succeeds(dir, "git", "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	if err != nil || ok {
		return ok, err
	}
	return succeeds(dir, "git", "show-ref", "--verify", "--quiet", "refs/remotes/origin/"+branch)
}

func (gitBackend) CurrentBranch(dir string) (string, error) {
	ok, err := succeeds(dir, "git", "symbolic-ref", "--quiet", "HEAD")
	if err != nil {
		return "", err
	}
	if !ok {
		// Detached HEAD.
		return "", nil
	}
	out, err := output(dir, "git", "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (gitBackend) Origin(dir string) (string, error) {
	out, err := output(dir, "git", "config", "--get", "remote.origin.url")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
