package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/p-jackson/arm/internal/testutil"
)

func TestRunDoctor_inForest(t *testing.T) {
	root, _ := setupForest(t)
	testutil.Chdir(t, filepath.Join(root, "free"))

	out := mustExecute(t, "doctor")
	for _, want := range []string{"Checking git... found", "Forest: ", "Checking pinned... git", "All checks passed."} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctor_unknownBackend(t *testing.T) {
	root, _ := setupForest(t)
	testutil.WriteManifest(t, filepath.Join(root, "arm.json"), ".", []testutil.Dep{
		{Path: "mystery", Origin: "https://example.com/mystery"},
	})

	out, err := execute(t, "doctor")
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	if !strings.Contains(out, "FAILED (unknown repository type: https://example.com/mystery)") {
		t.Errorf("doctor output:\n%s", out)
	}
}

func TestRunDoctor_outsideForest(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	out := mustExecute(t, "doctor")
	if !strings.Contains(out, "No forest found") {
		t.Errorf("doctor output:\n%s", out)
	}
}
