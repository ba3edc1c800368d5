package main

import (
	"encoding/csv"
	"errors"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/spf13/cobra"

	"github.com/akupila/gowasm/decompile"
	"github.com/akupila/gowasm/internal/cliutil"
	"github.com/akupila/gowasm/xref"
)

func xrefsCommand() *cobra.Command {
	var csvPath string

	command := &cobra.Command{
		Use:   "xrefs <file>",
		Short: "Record call cross-references and export them as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one argument")
			}
			if csvPath == "" {
				return errors.New("--csv is required")
			}

			_, d, err := cliutil.LoadModule(args[0])
			if err != nil {
				return err
			}

			tracker := xref.New()
			if _, err := decompile.NewFlatRenderer(d, tracker).Render(); err != nil {
				return err
			}
			cliutil.Logger().Sugar().Debugf("recorded %d cross-references", len(tracker.Edges()))

			f, err := os.Create(csvPath)
			if err != nil {
				return err
			}
			defer f.Close()

			return writeXrefsCSV(f, tracker.Edges())
		},
	}

	command.Args = cobra.ExactArgs(1)
	command.Flags().StringVar(&csvPath, "csv", "", "write the cross-reference table to this CSV path")

	return command
}

// xrefRow is one CSV row, generalizing pgavlin-warp/cmd/warp/dump/stats.go's
// row-struct-plus-csvutil.Encoder pattern to xref.CrossReference edges.
type xrefRow struct {
	Caller      string `csv:"caller"`
	CallerIndex uint32 `csv:"caller_index"`
	Target      string `csv:"target"`
	TargetIndex uint32 `csv:"target_index"`
	Offset      uint32 `csv:"offset"`
	Direction   string `csv:"direction"`
}

func writeXrefsCSV(f *os.File, edges []xref.CrossReference) error {
	csvWriter := csv.NewWriter(f)
	defer csvWriter.Flush()

	encoder := csvutil.NewEncoder(csvWriter)
	for _, e := range edges {
		dir := "up"
		if e.DirectionDown {
			dir = "down"
		}
		row := xrefRow{
			Caller:      e.Caller.Name,
			CallerIndex: e.Caller.Index,
			Target:      e.Target.Name,
			TargetIndex: e.Target.Index,
			Offset:      e.Offset,
			Direction:   dir,
		}
		if err := encoder.Encode(&row); err != nil {
			return err
		}
	}
	return nil
}
