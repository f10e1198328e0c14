/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cqusn/smartcar/pkg/config"
)

func newInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a configuration file with default settings. The data file is taken
from --data-file when given.

Examples:
  smartcar init
  smartcar init --config ./smartcar.yaml --data-file ./SmartCars.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			if config.ConfigExists(a.configPath) && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", a.configPath)
			}

			dataFile := ""
			if cmd.Flags().Changed("data-file") {
				dataFile = a.cfg.DataFile
			}
			cfg, err := config.BootstrapConfig(a.configPath, dataFile)
			if err != nil {
				return err
			}

			cmd.Printf("Configuration created at %s\n", a.configPath)
			cmd.Printf("Data file: %s\n", cfg.DataFile)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}
