// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-authdemo/authdemo/internal/config"
)

// Create builds the Data Source Name for the configured engine.
func Create(dbCfg *config.Config) string {
	switch dbCfg.DB.Engine {
	case config.DBEngineMySQL:
		return MySQL(dbCfg)
	case config.DBEnginePostgres:
		return Postgres(dbCfg)
	default:
		return dbCfg.DB.Path
	}
}

// MySQL builds a go-sql-driver/mysql DSN.
func MySQL(dbCfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)
}

// Postgres builds a postgres connection URL, understood by gorm and pgx alike.
// Extras is appended as query string, e.g. "sslmode=disable".
func Postgres(dbCfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.DB.User, dbCfg.DB.Password),
		Host:     fmt.Sprintf("%s:%d", dbCfg.DB.Host, dbCfg.DB.Port),
		Path:     "/" + dbCfg.DB.Name,
		RawQuery: strings.TrimPrefix(dbCfg.DB.Extras, "?"),
	}

	return u.String()
}
