package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p-jackson/arm/internal/marker"
	"github.com/p-jackson/arm/internal/testutil"
)

func TestRunClone_nested(t *testing.T) {
	r := testutil.CreateRemotes(t)
	work := t.TempDir()
	testutil.Chdir(t, work)

	out := mustExecute(t, "clone", r.MainNested)

	root := filepath.Join(work, "main-nested")
	if !strings.Contains(out, "Forest ready at ") || !strings.Contains(out, "main-nested") {
		t.Errorf("output missing forest root:\n%s", out)
	}
	for _, dep := range []string{"free", "pinned", "locked"} {
		if _, err := os.Stat(filepath.Join(root, dep, ".git")); err != nil {
			t.Errorf("dependency %s not installed: %v", dep, err)
		}
	}
	if got := testutil.Revision(t, filepath.Join(root, "pinned")); got != r.PinnedRevision {
		t.Errorf("pinned revision = %s, want %s", got, r.PinnedRevision)
	}
}

func TestRunClone_siblingWithDestAndFlags(t *testing.T) {
	r := testutil.CreateRemotes(t)
	dest := filepath.Join(t.TempDir(), "group")

	mustExecute(t, "clone", "--branch", "develop", "--manifest", "sub", r.MainSibling, dest)

	mk, err := marker.Load(dest)
	if err != nil {
		t.Fatal(err)
	}
	if mk.ConfigurationDirectory != "main-sibling" || mk.Manifest != "sub" {
		t.Errorf("marker = %+v", mk)
	}
	if got := testutil.Branch(t, filepath.Join(dest, "main-sibling")); got != "develop" {
		t.Errorf("main branch = %q, want develop", got)
	}
	if _, err := os.Stat(filepath.Join(dest, "sub", ".git")); err != nil {
		t.Errorf("sub dependency not installed: %v", err)
	}
}

func TestRunClone_requiresSource(t *testing.T) {
	if _, err := execute(t, "clone"); err == nil {
		t.Fatal("expected error without a source")
	}
}
