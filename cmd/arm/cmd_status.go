package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show local changes in every repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := openForest("")
			if err != nil {
				return err
			}
			return f.Status(cmd.Context(), newEnv(cmd, f.Root))
		},
	}
}

func newOutgoingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outgoing",
		Short: "Show commits not yet pushed in every repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := openForest("")
			if err != nil {
				return err
			}
			return f.Outgoing(cmd.Context(), newEnv(cmd, f.Root))
		},
	}
}

func newRootPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the root directory of the forest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := openForest("")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), f.Root)
			return err
		},
	}
}
