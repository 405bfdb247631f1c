package main

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/p-jackson/arm/internal/forest"
	"github.com/p-jackson/arm/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the repositories of the forest",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().StringP("format", "f", "table", "Output format: table, json or yaml")
	return cmd
}

type repoInfo struct {
	Path     string `json:"path" yaml:"path"`
	Main     bool   `json:"main,omitempty" yaml:"main,omitempty"`
	Backend  string `json:"backend" yaml:"backend"`
	Policy   string `json:"policy" yaml:"policy"`
	Target   string `json:"target,omitempty" yaml:"target,omitempty"`
	Present  bool   `json:"present" yaml:"present"`
	Branch   string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Origin   string `json:"origin,omitempty" yaml:"origin,omitempty"`
	Detached bool   `json:"detached,omitempty" yaml:"detached,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}

	f, err := openForest("")
	if err != nil {
		return err
	}
	entries := f.Resolve(true)
	infos := make([]repoInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, collectInfo(e))
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return err
		}
		return enc.Close()
	}

	tbl := ui.NewTable(out, stylesFor(out), "PATH", "BACKEND", "POLICY", "PRESENT", "BRANCH")
	for _, info := range infos {
		policy := info.Policy
		if info.Target != "" {
			policy += " (" + info.Target + ")"
		}
		branch := info.Branch
		if info.Detached {
			branch = "(detached)"
		}
		tbl.Row(info.Path, info.Backend, policy, info.Present, branch)
	}
	return tbl.Flush()
}

func collectInfo(e forest.Entry) repoInfo {
	info := repoInfo{
		Path:    e.Path,
		Main:    e.Main,
		Backend: e.BackendName(),
		Policy:  e.Policy.String(),
		Present: e.Present,
		Origin:  e.Origin,
	}
	switch e.Policy {
	case forest.Pinned:
		info.Target = e.Revision
	case forest.Locked:
		info.Target = e.Branch
	}
	if !e.Present || e.Backend == nil {
		return info
	}
	branch, err := e.Backend.CurrentBranch(e.Dir)
	if err != nil {
		log.Warn().Err(err).Str("repo", e.Path).Msg("reading current branch")
		return info
	}
	info.Branch = branch
	info.Detached = branch == ""
	return info
}
