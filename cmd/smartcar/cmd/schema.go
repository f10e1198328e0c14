/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cqusn/smartcar/pkg/codec"
)

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the field order of a record line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format); err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd.OutOrStdout(), codec.Fields())
			}
			return outputSchemaTable(cmd.OutOrStdout(), codec.Fields())
		},
	}

	cmd.Flags().StringP("format", "o", formatTable, "Output format (table or json)")
	return cmd
}
