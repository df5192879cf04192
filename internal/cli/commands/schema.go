package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapframe/pkg/frame"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show a table's columns and their provenance",
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

			infos := f.Describe()

			switch cmdCtx.Config.Output {
			case "json":
				return renderJSON(cmd.OutOrStdout(), infos)
			case "csv":
				return renderCSV(cmd.OutOrStdout(), []string{"name", "kind", "target"}, describeRows(infos))
			default:
				renderTable(cmd.OutOrStdout(), []string{"Name", "Kind", "Target"}, describeRows(infos))
				return nil
			}
		},
	}
}

func describeRows(infos []frame.ColumnInfo) [][]string {
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{info.Name, info.Kind, info.Target}
	}
	return rows
}
