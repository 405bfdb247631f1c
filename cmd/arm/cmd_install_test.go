package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p-jackson/arm/internal/marker"
	"github.com/p-jackson/arm/internal/testutil"
)

func TestRunInstall_bootstrapsPlainClone(t *testing.T) {
	r := testutil.CreateRemotes(t)
	group := t.TempDir()
	testutil.Git(t, group, "clone", "--quiet", r.MainSibling, "main")
	testutil.Chdir(t, filepath.Join(group, "main"))

	out := mustExecute(t, "install")

	if !strings.Contains(out, "Initialised marker file") {
		t.Errorf("expected marker notice, got:\n%s", out)
	}
	mk, err := marker.Load(group)
	if err != nil {
		t.Fatal(err)
	}
	if mk.ConfigurationDirectory != "main" {
		t.Errorf("configurationDirectory = %q, want main", mk.ConfigurationDirectory)
	}
	for _, dep := range []string{"free", "pinned", "locked"} {
		if _, err := os.Stat(filepath.Join(group, dep, ".git")); err != nil {
			t.Errorf("dependency %s not installed: %v", dep, err)
		}
	}
}

func TestRunInstall_manifestFlagUpdatesMarker(t *testing.T) {
	r := testutil.CreateRemotes(t)
	work := t.TempDir()
	testutil.Chdir(t, work)
	mustExecute(t, "clone", r.MainNested, "forest")
	root := filepath.Join(work, "forest")
	testutil.Chdir(t, filepath.Join(root, "free"))

	mustExecute(t, "install", "--manifest", "sub")

	mk, err := marker.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if mk.Manifest != "sub" {
		t.Errorf("marker manifest = %q, want sub", mk.Manifest)
	}
	if _, err := os.Stat(filepath.Join(root, "sub", ".git")); err != nil {
		t.Errorf("sub not installed: %v", err)
	}

	// Repeating is a no-op apart from notices.
	out := mustExecute(t, "install")
	if strings.Contains(out, "git clone") {
		t.Errorf("second install cloned again:\n%s", out)
	}
}

func TestRunInstall_noRoot(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	_, err := execute(t, "install")
	if err == nil {
		t.Fatal("expected error outside a forest")
	}
	if got := errorMessage(err); got != "root of forest not found" {
		t.Errorf("message = %q", got)
	}
}
