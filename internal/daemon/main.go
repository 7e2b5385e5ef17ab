// Package daemon wires the database, the session storage and the web service
// and runs them until shutdown.
package daemon

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-authdemo/authdemo/internal/auth"
	"github.com/go-authdemo/authdemo/internal/config"
	"github.com/go-authdemo/authdemo/internal/web"
	"github.com/go-authdemo/authdemo/internal/web/handler"
	"github.com/go-authdemo/authdemo/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	db         *gorm.DB
	storage    fiber.Storage
	webService *web.Service
}

// Start serves http until SIGINT or SIGTERM, then releases all resources.
func (d *Daemon) Start() error {
	listenErr := make(chan error, 1)

	go func() {
		listenErr <- d.webService.Start(d.webService.Addr())
	}()

	err := d.webService.WaitShutdown(listenErr)

	if errClose := d.Close(); errClose != nil {
		log.Error().Err(errClose).Msg("failed to release resources")
	}

	return err
}

// Close releases the session storage and the database.
func (d *Daemon) Close() error {
	var errs []error

	if d.storage != nil {
		if err := d.storage.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "session storage"))
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "database"))
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}

	return nil
}

// WebService returns the web service of the daemon.
func (d *Daemon) WebService() *web.Service {
	return d.webService
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	storage, err := newSessionStorage(cfg)
	if err != nil {
		closeDB(db)

		return nil, err
	}

	sessions := session.NewManager(storage, cfg.Webserver.Session.ExpiryTime)
	store := auth.NewLocalProvider(db, auth.PasswordParams(cfg.Password))

	env := &handler.Env{
		Cfg:  cfg,
		Flow: auth.NewFlow(store, sessions),
		Cookie: session.CookieOptions{
			Name:   cfg.Webserver.Session.CookieName,
			MaxAge: cfg.Webserver.Session.ExpiryTime,
			Secure: !cfg.DevMode,
		},
	}

	webService, err := web.New(cfg, env)
	if err != nil {
		_ = sessions.Storage().Close()
		closeDB(db)

		return nil, err
	}

	log.Info().
		Str("db", cfg.DB.Engine).
		Str("sessions", cfg.Webserver.Session.Storage).
		Bool("dev", cfg.DevMode).
		Msg("daemon initialized")

	return &Daemon{
		db:         db,
		storage:    sessions.Storage(),
		webService: webService,
	}, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
