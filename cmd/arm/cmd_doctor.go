package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/p-jackson/arm/internal/forest"
	"github.com/p-jackson/arm/internal/vcs"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment for common issues",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	installed := map[vcs.Kind]bool{}
	for _, b := range vcs.Backends() {
		kind := b.Kind()
		_, _ = fmt.Fprintf(out, "Checking %s... ", kind)
		path, err := exec.LookPath(string(kind))
		if err != nil {
			_, _ = fmt.Fprintln(out, "NOT FOUND")
			continue
		}
		installed[kind] = true
		_, _ = fmt.Fprintf(out, "found at %s (%s)\n", path, toolVersion(path))
	}
	if len(installed) == 0 {
		_, _ = fmt.Fprintln(out, "  Neither git nor hg is installed; at least one is required.")
		ok = false
	}

	// Check the forest if we are in one.
	root, err := forest.FindRoot(".")
	if err != nil {
		if !forest.IsRootNotFound(err) {
			return err
		}
		_, _ = fmt.Fprintln(out, "No forest found from the current directory (skipping repository checks)")
	} else {
		f, err := forest.Load(root, "")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Forest: %s (%d dependencies)\n", f.Root, len(f.Manifest.Dependencies))
		if !checkEntries(cmd, f, installed) {
			ok = false
		}
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkEntries reports every repository whose backend is unknown or whose
// tool is not installed.
func checkEntries(cmd *cobra.Command, f *forest.Forest, installed map[vcs.Kind]bool) bool {
	out := cmd.OutOrStdout()
	ok := true
	for _, e := range f.Resolve(true) {
		_, _ = fmt.Fprintf(out, "  Checking %s... ", e.Path)
		switch {
		case e.Backend == nil:
			_, _ = fmt.Fprintf(out, "FAILED (unknown repository type: %s)\n", e.Origin)
			ok = false
		case !installed[e.Backend.Kind()]:
			_, _ = fmt.Fprintf(out, "FAILED (%s not installed)\n", e.BackendName())
			ok = false
		case !e.Present:
			_, _ = fmt.Fprintf(out, "%s, not installed yet\n", e.BackendName())
		default:
			_, _ = fmt.Fprintln(out, e.BackendName())
		}
	}
	return ok
}

func toolVersion(path string) string {
	out, err := exec.Command(path, "--version").Output() //nolint:gosec // path comes from LookPath of a known tool
	if err != nil {
		return "version unknown"
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line
}
