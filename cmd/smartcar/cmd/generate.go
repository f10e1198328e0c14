/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cqusn/smartcar/pkg/sample"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the sample fleet to the data file",
		Long: `Generate the sample cars and students and save them to the data file,
replacing its contents.

Examples:
  smartcar generate
  smartcar generate --count 3 -f ./cars.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			if count < 0 {
				return fmt.Errorf("--count must not be negative")
			}

			cars, students := sample.Generate(count)
			if err := a.store().Save(cars, students); err != nil {
				return err
			}

			cmd.Printf("Wrote %d records to %s\n", count, a.cfg.DataFile)
			return nil
		},
	}

	cmd.Flags().IntP("count", "n", sample.DefaultCount, "Number of records to generate")
	return cmd
}
