package main

import (
	"github.com/spf13/cobra"

	"github.com/p-jackson/arm/internal/forest"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a manifest listing the repositories around the main repository",
		Long: `Run inside the main repository. Every repository found under the root
(the main repository itself by default) is recorded in the manifest with its
origin, and the root marker is written.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
	cmd.Flags().String("root", "", "Root of the forest (default: the main repository)")
	cmd.Flags().String("manifest", "", "Write arm_<name>.json instead of arm.json")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	manifestName, _ := cmd.Flags().GetString("manifest")
	return forest.Init(newEnv(cmd, ""), ".", forest.InitOptions{Root: root, Manifest: manifestName})
}
