package forest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/p-jackson/arm/internal/chain"
	"github.com/p-jackson/arm/internal/marker"
	"github.com/p-jackson/arm/internal/testutil"
	"github.com/p-jackson/arm/internal/ui"
)

func quietEnv() Env {
	return NewEnv(io.Discard, ui.PlainStyles(), "")
}

// recordingRunner captures chains instead of running them.
type recordingRunner struct {
	runs [][]chain.Command
}

func (r *recordingRunner) Run(_ context.Context, cmds []chain.Command) error {
	r.runs = append(r.runs, cmds)
	return nil
}

func recordingEnv(out *bytes.Buffer) (Env, *recordingRunner) {
	r := &recordingRunner{}
	return Env{Runner: r, Out: out, Styles: ui.PlainStyles()}, r
}

// makeNestedForest clones the nested main repository, marks it as the root
// and installs its dependencies.
func makeNestedForest(t *testing.T) (string, testutil.Remotes) {
	t.Helper()
	r := testutil.CreateRemotes(t)
	root := filepath.Join(t.TempDir(), "forest")
	testutil.Git(t, filepath.Dir(root), "clone", "--quiet", r.MainNested, root)
	if err := marker.Save(root, &marker.File{ConfigurationDirectory: ".", MainPath: "."}); err != nil {
		t.Fatal(err)
	}
	f := mustLoad(t, root)
	if _, err := f.Install(context.Background(), quietEnv()); err != nil {
		t.Fatal(err)
	}
	return root, r
}

func mustLoad(t *testing.T, root string) *Forest {
	t.Helper()
	f, err := Load(root, "")
	if err != nil {
		t.Fatalf("Load(%s): %v", root, err)
	}
	return f
}

// repoSet lists the root-relative directories holding a .git directory.
func repoSet(t *testing.T, root string) []string {
	t.Helper()
	var repos []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			rel, _ := filepath.Rel(root, filepath.Dir(p))
			repos = append(repos, filepath.ToSlash(rel))
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(repos)
	return repos
}

// message returns the builder message of err, or its text.
func message(err error) string {
	var b *errbuilder.ErrBuilder
	if errors.As(err, &b) {
		return b.Msg
	}
	return err.Error()
}
