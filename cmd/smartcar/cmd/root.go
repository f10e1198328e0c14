/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cqusn/smartcar/pkg/codec"
	"github.com/cqusn/smartcar/pkg/config"
	"github.com/cqusn/smartcar/pkg/di"
	"github.com/cqusn/smartcar/pkg/logging"
	"github.com/cqusn/smartcar/pkg/store"
)

var container *di.Container

// SetContainer injects the dependency container used by Execute
func SetContainer(c *di.Container) {
	container = c
}

// app is the state shared by every command once the root pre-run has finished
type app struct {
	container  *di.Container
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

// store returns the record file store for the configured data file
func (a *app) store() *store.FileStore {
	return a.container.NewStore(store.FileStoreConfig{
		Path:   a.cfg.DataFile,
		Policy: a.cfg.Policy(),
		Fsync:  true,
	}, a.logger)
}

// load reads the data file and warns about anything the decode had to tolerate
func (a *app) load(cmd *cobra.Command) (*store.Collection, error) {
	collection, err := a.store().Load()
	if err != nil {
		return nil, err
	}
	printReportWarning(cmd.ErrOrStderr(), collection.Report)
	return collection, nil
}

// NewRootCmd builds the smartcar command tree
func NewRootCmd(c *di.Container) *cobra.Command {
	a := &app{container: c}

	rootCmd := &cobra.Command{
		Use:   "smartcar",
		Short: "SmartCar registry - smart cars and the students they are assigned to",
		Long: `smartcar keeps a registry of smart cars and their assigned students in a
plain text file, one record per line.

Examples:
  smartcar generate
  smartcar browse
  smartcar list --format json
  smartcar serve --port 9000`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.container == nil {
				return fmt.Errorf("dependency container not initialized")
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default: OS-specific location)")
	rootCmd.PersistentFlags().StringP("data-file", "f", "", "Record file (overrides data_file)")
	rootCmd.PersistentFlags().Bool("strict", false, "Fail on malformed input instead of defaulting")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides logging.level)")

	rootCmd.AddCommand(
		newInitCmd(a),
		newGenerateCmd(a),
		newBrowseCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newSchemaCmd(a),
		newArchiveCmd(a),
		newServeCmd(a),
	)

	return rootCmd
}

// setup loads the config file, applies flag overrides and builds the logger
func (a *app) setup(cmd *cobra.Command) error {
	if a.configPath == "" {
		a.configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(a.configPath) {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data-file") {
		cfg.DataFile, _ = flags.GetString("data-file")
	}
	if flags.Changed("strict") {
		cfg.Codec.Policy = string(codec.PolicyPermissive)
		if strict, _ := flags.GetBool("strict"); strict {
			cfg.Codec.Policy = string(codec.PolicyStrict)
		}
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.With(zap.String("data_file", cfg.DataFile))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := NewRootCmd(container).Execute()
	if err != nil {
		os.Exit(1)
	}
}
