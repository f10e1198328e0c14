/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cqusn/smartcar/pkg/browse"
)

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format); err != nil {
				return err
			}

			collection, err := a.load(cmd)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd.OutOrStdout(), collection.Records())
			}
			return outputRecordsTable(cmd.OutOrStdout(), collection.Records())
		},
	}

	cmd.Flags().StringP("format", "o", formatTable, "Output format (table or json)")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Show one record",
		Long: `Show the record at a zero-based index.

Examples:
  smartcar show 0
  smartcar show 3 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format); err != nil {
				return err
			}

			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be an integer: %q", args[0])
			}

			collection, err := a.load(cmd)
			if err != nil {
				return err
			}

			record, err := collection.At(index)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return outputJSON(cmd.OutOrStdout(), record)
			}
			return browse.Render(cmd.OutOrStdout(), record.Car, record.Student)
		},
	}

	cmd.Flags().StringP("format", "o", formatTable, "Output format (table or json)")
	return cmd
}
