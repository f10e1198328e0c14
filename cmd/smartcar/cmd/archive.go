/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cqusn/smartcar/pkg/archive"
)

func newArchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage snapshots of the data file",
		Long: `Store point-in-time snapshots of the data file in the archive directory and
restore them later.

Examples:
  smartcar archive snapshot
  smartcar archive list
  smartcar archive restore 2fGk3Lw3zVbW7jZxQ0sEjYqzJ1m
  smartcar archive delete 2fGk3Lw3zVbW7jZxQ0sEjYqzJ1m`,
	}

	cmd.AddCommand(
		newArchiveSnapshotCmd(a),
		newArchiveListCmd(a),
		newArchiveRestoreCmd(a),
		newArchiveDeleteCmd(a),
	)
	return cmd
}

// withArchive opens the archive for the duration of fn
func (a *app) withArchive(fn func(arc *archive.Archive) error) (err error) {
	arc, err := a.container.OpenArchive(archive.Options{
		Dir:    a.cfg.ArchiveDir,
		Policy: a.cfg.Policy(),
		Logger: a.logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := arc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(arc)
}

func newArchiveSnapshotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Snapshot the current data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := a.load(cmd)
			if err != nil {
				return err
			}

			return a.withArchive(func(arc *archive.Archive) error {
				info, err := arc.Snapshot(collection.Cars, collection.Students, a.cfg.DataFile)
				if err != nil {
					return err
				}
				cmd.Printf("Snapshot %s: %d records\n", info.ID, info.Records)
				return nil
			})
		},
	}
}

func newArchiveListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format); err != nil {
				return err
			}

			return a.withArchive(func(arc *archive.Archive) error {
				snapshots, err := arc.List()
				if err != nil {
					return err
				}
				if format == formatJSON {
					return outputJSON(cmd.OutOrStdout(), snapshots)
				}
				return outputSnapshotsTable(cmd.OutOrStdout(), snapshots)
			})
		},
	}

	cmd.Flags().StringP("format", "o", formatTable, "Output format (table or json)")
	return cmd
}

func newArchiveRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace the data file with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withArchive(func(arc *archive.Archive) error {
				collection, err := arc.Restore(args[0])
				if err != nil {
					return err
				}
				if err := a.store().Save(collection.Cars, collection.Students); err != nil {
					return err
				}
				cmd.Printf("Restored %d records from %s to %s\n", collection.Len(), args[0], a.cfg.DataFile)
				return nil
			})
		},
	}
}

func newArchiveDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withArchive(func(arc *archive.Archive) error {
				if err := arc.Delete(args[0]); err != nil {
					return err
				}
				cmd.Printf("Deleted snapshot %s\n", args[0])
				return nil
			})
		},
	}
}
