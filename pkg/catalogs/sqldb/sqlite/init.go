// Package sqlite registers the sqlite:// catalog scheme. The scheme-specific
// part of the URL is the database path; ":memory:" opens an in-memory
// database.
package sqlite

import (
	"log/slog"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/leapstack-labs/leapframe/pkg/catalog"
	"github.com/leapstack-labs/leapframe/pkg/catalogs/sqldb"
)

func init() {
	catalog.Register("sqlite", func(ref string, logger *slog.Logger) (catalog.Catalog, error) {
		if ref == "" {
			ref = ":memory:"
		}
		return sqldb.Open("sqlite", ref, logger)
	})
}
