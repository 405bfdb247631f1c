package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"

	"github.com/p-jackson/arm/internal/testutil"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", errors.New("boom"), "boom"},
		{"builder", errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("root of forest not found"), "root of forest not found"},
		{
			"builder with cause",
			errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("problem opening /f/arm.json").WithCause(errors.New("permission denied")),
			"problem opening /f/arm.json: permission denied",
		},
		{
			"cause already in message",
			errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("root of forest not found (hint)").WithCause(errors.New("root of forest not found")),
			"root of forest not found (hint)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage(tt.err); got != tt.want {
				t.Errorf("errorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunStatus_missingManifestNamesCause(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, ".arm-root.json"), `{"configurationDirectory": "."}`)
	testutil.Chdir(t, dir)

	_, err := execute(t, "status")
	if err == nil {
		t.Fatal("expected error without a manifest")
	}
	msg := errorMessage(err)
	if !strings.HasPrefix(msg, "problem opening ") || !strings.Contains(msg, "arm.json: open ") {
		t.Errorf("message = %q, want the open failure appended", msg)
	}
}

func TestSetupLogging_levels(t *testing.T) {
	var sb strings.Builder
	for level, want := range map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"":      zerolog.WarnLevel,
	} {
		setupLogging(&sb, level, true)
		if got := zerolog.GlobalLevel(); got != want {
			t.Errorf("level %q: got %v, want %v", level, got, want)
		}
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func TestRootCmd_configFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	testutil.WriteFile(t, cfg, "log_level: error\n")
	testutil.Chdir(t, dir)

	if _, err := execute(t, "--config", cfg, "doctor"); err != nil {
		t.Fatalf("doctor with config failed: %v", err)
	}
	if got := zerolog.GlobalLevel(); got != zerolog.ErrorLevel {
		t.Errorf("level = %v, want error from config file", got)
	}

	_, err := execute(t, "--config", filepath.Join(dir, "missing.yaml"), "doctor")
	if errbuilder.CodeOf(err) != errbuilder.CodeInvalidArgument {
		t.Errorf("missing config: got %v", err)
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func TestRootCmd_unknownCommand(t *testing.T) {
	if _, err := execute(t, "frobnicate"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
