// Package duckdb registers the duckdb:// catalog scheme. The scheme-specific
// part of the URL is the database path; empty or ":memory:" opens an
// in-memory database.
package duckdb

import (
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/leapframe/pkg/catalog"
	"github.com/leapstack-labs/leapframe/pkg/catalogs/sqldb"
)

func init() {
	catalog.Register("duckdb", func(ref string, logger *slog.Logger) (catalog.Catalog, error) {
		if ref == "" {
			ref = ":memory:"
		}
		return sqldb.Open("duckdb", ref, logger)
	})
}
