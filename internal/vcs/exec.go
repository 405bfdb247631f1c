package vcs

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// output runs a read-only query and returns its stdout.
// Stderr is captured and included in the error message on failure.
func output(dir, program string, args ...string) (string, error) {
	cmd := exec.Command(program, args...) //nolint:gosec // fixed backend programs
	cmd.Dir = dir
	if program == "hg" {
		cmd.Env = append(cmd.Environ(), "HGPLAIN=1")
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", program, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// succeeds runs a query whose exit status is the answer. A non-zero exit is
// false; failing to start the program is an error.
func succeeds(dir, program string, args ...string) (bool, error) {
	_, err := output(dir, program, args...)
	if err == nil {
		return true, nil
	}
	if isExitError(err) {
		return false, nil
	}
	return false, err
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
