/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/cqusn/smartcar/pkg/archive"
	"github.com/cqusn/smartcar/pkg/browse"
	"github.com/cqusn/smartcar/pkg/codec"
	"github.com/cqusn/smartcar/pkg/model"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func checkFormat(format string) error {
	if format != formatTable && format != formatJSON {
		return fmt.Errorf("unknown format %q (want %q or %q)", format, formatTable, formatJSON)
	}
	return nil
}

// outputJSON writes v as indented JSON
func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// outputRecordsTable writes one summary line per record
func outputRecordsTable(w io.Writer, records []model.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No records found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tCAR\tSTUDENT\tNAME\tCHASSIS\tTIRES\tDISPLAY")
	for i, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			i,
			r.Car.ID,
			r.Student.StudentID,
			r.Student.Name,
			r.Car.Chassis.Model,
			len(r.Car.Chassis.Tires),
			browse.FormatSize(r.Car.Display.Size))
	}
	return tw.Flush()
}

// outputSchemaTable writes the ordered line layout
func outputSchemaTable(w io.Writer, fields []codec.Field) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tFIELD\tKIND")
	for i, f := range fields {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, f.Name, f.Kind)
	}
	return tw.Flush()
}

// outputSnapshotsTable writes one line per archived snapshot
func outputSnapshotsTable(w io.Writer, snapshots []archive.SnapshotInfo) error {
	if len(snapshots) == 0 {
		_, err := fmt.Fprintln(w, "No snapshots found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tRECORDS\tSOURCE")
	for _, s := range snapshots {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			s.ID,
			s.Created.Local().Format(time.RFC3339),
			s.Records,
			s.Source)
	}
	return tw.Flush()
}

// printReportWarning tells the user how much malformed input was tolerated
func printReportWarning(w io.Writer, report *codec.Report) {
	if report == nil || report.Clean() {
		return
	}
	fmt.Fprintf(w, "warning: %d field(s) defaulted to zero, %d line(s) skipped\n",
		len(report.Defaulted), len(report.Skipped))
	for _, fe := range report.Defaulted {
		fmt.Fprintf(w, "  %v\n", fe)
	}
	for _, le := range report.Skipped {
		fmt.Fprintf(w, "  %v\n", le)
	}
}
