package main

import (
	"github.com/spf13/cobra"
)

func newMakeBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make-branch <name> [startPoint]",
		Short: "Create and switch to a branch in every free repository",
		Long: `Create branch <name> in the main repository and every free dependency,
starting from startPoint or from where each repository is now. Pinned and
locked dependencies are not touched.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runMakeBranch,
	}
	cmd.Flags().BoolP("publish", "p", false, "Push the new branch and set it as upstream")
	return cmd
}

func runMakeBranch(cmd *cobra.Command, args []string) error {
	publish, _ := cmd.Flags().GetBool("publish")
	var startPoint string
	if len(args) > 1 {
		startPoint = args[1]
	}

	f, err := openForest("")
	if err != nil {
		return err
	}
	return f.MakeBranch(cmd.Context(), newEnv(cmd, f.Root), args[0], startPoint, publish)
}

func newSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <name>",
		Short: "Switch every free repository to an existing branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openForest("")
			if err != nil {
				return err
			}
			return f.Switch(cmd.Context(), newEnv(cmd, f.Root), args[0])
		},
	}
}
