// Package testutil builds throwaway repositories and forests for tests.
package testutil

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Remotes is a set of origin repositories covering each tracking policy.
// Every path is absolute.
type Remotes struct {
	Dir            string
	Free           string
	Pinned         string
	Locked         string
	Sub            string
	MainNested     string
	MainSibling    string
	PinnedRevision string
	LockedBranch   string
}

// CreateRepo initialises a non-bare git repository on branch main with one commit.
func CreateRepo(t *testing.T, dir string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	Git(t, dir, "init", "--quiet", "-b", "main")
	Git(t, dir, "config", "user.email", "test@example.com")
	Git(t, dir, "config", "user.name", "Test")
	WriteFile(t, filepath.Join(dir, "README.md"), "# "+filepath.Base(dir)+"\n")
	Git(t, dir, "add", ".")
	Git(t, dir, "commit", "--quiet", "-m", "initial commit")
	return dir
}

// CreateBareRepo creates a bare git repository with an initial commit.
// Returns the path to the bare repo.
func CreateBareRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	work := CreateRepo(t, filepath.Join(dir, "work"))
	bare := filepath.Join(dir, "repo.git")
	Git(t, dir, "clone", "--quiet", "--bare", work, bare)
	return bare
}

// Commit records an empty commit and returns its full revision.
func Commit(t *testing.T, dir, message string) string {
	t.Helper()
	Git(t, dir, "-c", "user.email=test@example.com", "-c", "user.name=Test",
		"commit", "--quiet", "--allow-empty", "-m", message)
	return Revision(t, dir)
}

// Revision returns the full revision of HEAD.
func Revision(t *testing.T, dir string) string {
	t.Helper()
	return strings.TrimSpace(Git(t, dir, "rev-parse", "HEAD"))
}

// Branch returns the checked out branch, or "" when detached.
func Branch(t *testing.T, dir string) string {
	t.Helper()
	cmd := exec.Command("git", "symbolic-ref", "--quiet", "--short", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// CreateRemotes builds the standard set of origin repositories under a temp
// dir: free, pinned (two commits, pinned to the first), locked (with a
// develop branch) and sub, plus two main repositories whose manifests
// declare them in nested and sibling layouts. Both mains also carry an
// arm_sub.json manifest adding "sub", and a develop branch.
func CreateRemotes(t *testing.T) Remotes {
	t.Helper()
	dir := t.TempDir()
	r := Remotes{
		Dir:          dir,
		Free:         CreateRepo(t, filepath.Join(dir, "free")),
		Pinned:       CreateRepo(t, filepath.Join(dir, "pinned")),
		Locked:       CreateRepo(t, filepath.Join(dir, "locked")),
		Sub:          CreateRepo(t, filepath.Join(dir, "sub")),
		LockedBranch: "develop",
	}
	r.PinnedRevision = Revision(t, r.Pinned)
	Commit(t, r.Pinned, "moves past the pinned revision")
	Git(t, r.Locked, "branch", "develop")

	deps := []Dep{
		{Path: "free", Origin: r.Free},
		{Path: "pinned", Origin: r.Pinned, PinnedRevision: r.PinnedRevision},
		{Path: "locked", Origin: r.Locked, LockedBranch: r.LockedBranch},
	}
	withSub := append(append([]Dep{}, deps...), Dep{Path: "sub", Origin: r.Sub})

	r.MainNested = CreateRepo(t, filepath.Join(dir, "main-nested"))
	WriteManifest(t, filepath.Join(r.MainNested, "arm.json"), ".", deps)
	WriteManifest(t, filepath.Join(r.MainNested, "arm_sub.json"), ".", withSub)
	Git(t, r.MainNested, "add", ".")
	Git(t, r.MainNested, "commit", "--quiet", "-m", "add manifests")
	Git(t, r.MainNested, "branch", "develop")

	r.MainSibling = CreateRepo(t, filepath.Join(dir, "main-sibling"))
	WriteManifest(t, filepath.Join(r.MainSibling, "arm.json"), "..", deps)
	WriteManifest(t, filepath.Join(r.MainSibling, "arm_sub.json"), "..", withSub)
	Git(t, r.MainSibling, "add", ".")
	Git(t, r.MainSibling, "commit", "--quiet", "-m", "add manifests")
	Git(t, r.MainSibling, "branch", "develop")

	return r
}

// Dep is a manifest dependency as written by WriteManifest.
type Dep struct {
	Path           string
	Origin         string
	PinnedRevision string
	LockedBranch   string
}

// WriteManifest writes a manifest file by hand so tests do not depend on the
// code under test to produce their fixtures.
func WriteManifest(t *testing.T, path, rootDirectory string, deps []Dep) {
	t.Helper()
	var b strings.Builder
	b.WriteString("{\n  \"dependencies\": {")
	for i, d := range deps {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n    " + quote(d.Path) + ": ")
		switch {
		case d.PinnedRevision != "":
			b.WriteString("{\n      \"origin\": " + quote(d.Origin) + ",\n      \"pinnedRevision\": " + quote(d.PinnedRevision) + "\n    }")
		case d.LockedBranch != "":
			b.WriteString("{\n      \"origin\": " + quote(d.Origin) + ",\n      \"lockedBranch\": " + quote(d.LockedBranch) + "\n    }")
		default:
			b.WriteString(quote(d.Origin))
		}
	}
	if len(deps) > 0 {
		b.WriteString("\n  ")
	}
	b.WriteString("},\n  \"rootDirectory\": " + quote(rootDirectory) + "\n}\n")
	WriteFile(t, path, b.String())
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

// Chdir changes the working directory for the rest of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

// Git runs git in dir and returns stdout, failing the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	return run(t, dir, "git", args...)
}

// Hg runs hg in dir and returns stdout, failing the test on error.
func Hg(t *testing.T, dir string, args ...string) string {
	t.Helper()
	return run(t, dir, "hg", args...)
}

// RequireHg skips the test when Mercurial is not installed.
func RequireHg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("hg"); err != nil {
		t.Skip("hg not installed")
	}
}

// CreateHgRepo initialises a Mercurial repository with one commit on default.
func CreateHgRepo(t *testing.T, dir string) string {
	t.Helper()
	RequireHg(t)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	Hg(t, dir, "init")
	WriteFile(t, filepath.Join(dir, "README.md"), "# "+filepath.Base(dir)+"\n")
	Hg(t, dir, "add", "README.md")
	Hg(t, dir, "commit", "--user", "Test <test@example.com>", "-m", "initial commit")
	return dir
}

func run(t *testing.T, dir, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if name == "hg" {
		cmd.Env = append(cmd.Environ(), "HGPLAIN=1")
	}
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		t.Fatalf("command %s %v failed: %v\n%s", name, args, err, stderr)
	}
	return string(out)
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
