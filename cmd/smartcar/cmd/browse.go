/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cqusn/smartcar/pkg/browse"
)

func newBrowseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through the records interactively",
		Long: `Show one record at a time. Type n for the next car, p for the previous one
and q to quit.

Examples:
  smartcar browse
  smartcar browse --start 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := a.load(cmd)
			if err != nil {
				return err
			}

			session, err := browse.NewSession(collection.Cars, collection.Students, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			start, _ := cmd.Flags().GetInt("start")
			session.Navigator().Seek(start)
			return session.Run()
		},
	}

	cmd.Flags().Int("start", 0, "Index of the first record shown (clamped to the valid range)")
	return cmd
}
