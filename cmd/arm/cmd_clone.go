package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/p-jackson/arm/internal/forest"
)

func newCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone <source> [dest]",
		Short: "Clone a main repository and install its dependencies",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runClone,
	}
	cmd.Flags().StringP("branch", "b", "", "Branch to check out in the main repository")
	cmd.Flags().String("manifest", "", "Use arm_<name>.json instead of arm.json")
	return cmd
}

func runClone(cmd *cobra.Command, args []string) error {
	branch, _ := cmd.Flags().GetString("branch")
	manifestName, _ := cmd.Flags().GetString("manifest")
	var dest string
	if len(args) > 1 {
		dest = args[1]
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	root, err := forest.Clone(cmd.Context(), newEnv(cmd, wd), args[0], dest, forest.CloneOptions{
		Branch:   branch,
		Manifest: manifestName,
	})
	if err != nil {
		return err
	}
	if root != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Forest ready at %s\n", root)
	}
	return nil
}
