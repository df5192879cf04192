package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapframe/pkg/frame"
)

// NewCountCommand creates the count command.
func NewCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count <table>...",
		Short: "Count the rows of one or more tables",
		Long: `Count the rows of one or more tables.

Tables are counted concurrently; each count is an independent lineage making
its own single pass over the table.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			counts := make([]int64, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, name := range args {
				g.Go(func() error {
					f, err := frame.Open(name, cmdCtx.Catalog, frame.WithLogger(cmdCtx.Logger))
					if err != nil {
						return err
					}
					n, err := f.Count().Value(ctx)
					if err != nil {
						return err
					}
					counts[i] = n
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if cmdCtx.Config.Output == "json" {
				result := make(map[string]int64, len(args))
				for i, name := range args {
					result[name] = counts[i]
				}
				return renderJSON(cmd.OutOrStdout(), result)
			}

			rows := make([][]string, len(args))
			for i, name := range args {
				rows[i] = []string{name, strconv.FormatInt(counts[i], 10)}
			}
			if cmdCtx.Config.Output == "csv" {
				return renderCSV(cmd.OutOrStdout(), []string{"table", "rows"}, rows)
			}
			renderTable(cmd.OutOrStdout(), []string{"Table", "Rows"}, rows)
			return nil
		},
	}
}
