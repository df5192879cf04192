package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapframe/pkg/frame"
)

// NewHeadCommand creates the head command.
func NewHeadCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "head <table>",
		Short: "Show the first rows of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			f, err := frame.Open(args[0], cmdCtx.Catalog, frame.WithLogger(cmdCtx.Logger))
			if err != nil {
				return err
			}

			rows, err := f.Head(limit).Value(cmd.Context())
			if err != nil {
				return err
			}

			columns := f.ColumnNames()

			if cmdCtx.Config.Output == "json" {
				return renderJSON(cmd.OutOrStdout(), rows)
			}

			cells := make([][]string, len(rows))
			for i, row := range rows {
				cells[i] = make([]string, len(columns))
				for j, col := range columns {
					cells[i][j] = formatValue(row[col])
				}
			}
			if cmdCtx.Config.Output == "csv" {
				return renderCSV(cmd.OutOrStdout(), columns, cells)
			}
			renderTable(cmd.OutOrStdout(), columns, cells)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "rows", "n", 10, "number of rows to show")
	return cmd
}
