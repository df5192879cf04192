package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapframe/pkg/frame"
)

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand() *cobra.Command {
	var columns []string

	cmd := &cobra.Command{
		Use:   "snapshot <table> <out.parquet>",
		Short: "Copy a table through the evaluation engine into a parquet file",
		Example: `  # Snapshot every visible column
  leapframe snapshot events /tmp/events.parquet

  # Snapshot a column subset
  leapframe snapshot events /tmp/slim.parquet --columns id,kind`,
		Args: cobra.ExactArgs(2),
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

			snap, err := f.Snapshot(cmd.Context(), args[1], columns...)
			if err != nil {
				return err
			}

			n, err := snap.Count().Value(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows (%d columns) to %s\n",
				n, len(snap.ColumnNames()), args[1])
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to write (default: all visible)")
	return cmd
}
