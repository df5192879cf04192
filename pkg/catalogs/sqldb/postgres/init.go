// Package postgres registers the postgres:// catalog scheme. The
// scheme-specific part of the URL is a pgx-compatible DSN.
package postgres

import (
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/leapstack-labs/leapframe/pkg/catalog"
	"github.com/leapstack-labs/leapframe/pkg/catalogs/sqldb"
)

func init() {
	catalog.Register("postgres", func(ref string, logger *slog.Logger) (catalog.Catalog, error) {
		return sqldb.Open("pgx", ref, logger)
	})
}
