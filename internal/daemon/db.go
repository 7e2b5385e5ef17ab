package daemon

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/go-authdemo/authdemo/internal/config"
	"github.com/go-authdemo/authdemo/internal/db/dsn"
	"github.com/go-authdemo/authdemo/internal/db/models"
	gormlog "github.com/go-authdemo/authdemo/internal/logger/adapter/gorm"
)

// dialector picks the gorm driver for the configured engine.
func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.Engine {
	case config.DBEngineSQLite:
		return sqlite.Open(dsn.Create(cfg)), nil
	case config.DBEngineMySQL:
		return gormmysql.Open(dsn.Create(cfg)), nil
	case config.DBEnginePostgres:
		return gormpostgres.Open(dsn.Create(cfg)), nil
	default:
		return nil, config.ErrUnknownDBEngine
	}
}

// openDB connects to the database and migrates the schema.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	dbDriver, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dbDriver, &gorm.Config{
		Logger:         gormlog.New(time.Duration(cfg.Log.SlowQueryThreshold) * time.Millisecond),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	// sqlite allows a single writer
	if cfg.DB.Engine == config.DBEngineSQLite {
		sqlDB, errDB := db.DB()
		if errDB != nil {
			return nil, errors.Wrap(errDB, "failed to get sql db")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	if err = db.AutoMigrate(&models.User{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}
