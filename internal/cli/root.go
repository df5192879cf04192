// Package cli provides the command-line interface for LeapFrame.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapframe/internal/cli/commands"
	"github.com/leapstack-labs/leapframe/internal/cli/config"

	// Catalog backends register their URL schemes.
	_ "github.com/leapstack-labs/leapframe/pkg/catalogs/parquetdir"
	_ "github.com/leapstack-labs/leapframe/pkg/catalogs/sqldb/duckdb"
	_ "github.com/leapstack-labs/leapframe/pkg/catalogs/sqldb/postgres"
	_ "github.com/leapstack-labs/leapframe/pkg/catalogs/sqldb/sqlite"
)

// Version information (set at build time).
var (
	Version = "0.1.0"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "leapframe",
		Short: "LeapFrame - lazy tabular computation graphs",
		Long: `LeapFrame builds lazy, branching computation graphs over tabular data.

Point it at a catalog of tables (a directory of parquet files, a DuckDB or
SQLite database, or a Postgres DSN) and inspect, count, preview or snapshot
the data through a single-pass evaluation engine.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./leapframe.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "catalog URL (e.g. parquet:///data/tables, duckdb:///analytics.db)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (table|json|csv)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "csv"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewTablesCommand())
	rootCmd.AddCommand(commands.NewSchemaCommand())
	rootCmd.AddCommand(commands.NewCountCommand())
	rootCmd.AddCommand(commands.NewHeadCommand())
	rootCmd.AddCommand(commands.NewSnapshotCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// newLogger builds a text slog logger writing to w at the given level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
