package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables in the catalog",
		Example: `  # List tables in a directory of parquet files
  leapframe tables --catalog parquet:///data/tables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			names, err := cmdCtx.Catalog.Tables()
			if err != nil {
				return fmt.Errorf("listing tables: %w", err)
			}

			if cmdCtx.Config.Output == "json" {
				return renderJSON(cmd.OutOrStdout(), names)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
