// Package commands implements the LeapFrame CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapframe/internal/cli/config"
	"github.com/leapstack-labs/leapframe/pkg/catalog"
)

// CommandContext carries what every data command needs: the loaded config,
// the logger and an open catalog.
type CommandContext struct {
	Config  *config.Config
	Logger  *slog.Logger
	Catalog catalog.Catalog
}

// NewCommandContext opens the configured catalog. The returned cleanup
// function closes it.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.LoggerFrom(cmd.Context())

	if cfg.Catalog == "" {
		return nil, nil, fmt.Errorf("no catalog configured (set catalog: in %s or pass --catalog)", config.ConfigFileName)
	}

	cat, err := catalog.Open(cfg.Catalog, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog: %w", err)
	}

	cleanup := func() { _ = cat.Close() }
	return &CommandContext{Config: cfg, Logger: logger, Catalog: cat}, cleanup, nil
}
