// Package web builds the fiber application: template engine, middleware
// chain, health and metrics endpoints and the page handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/go-authdemo/authdemo/internal/config"
	accesslog "github.com/go-authdemo/authdemo/internal/logger/adapter/fiber"
	"github.com/go-authdemo/authdemo/internal/web/handler"
	"github.com/go-authdemo/authdemo/internal/web/handler/home"
	"github.com/go-authdemo/authdemo/internal/web/handler/login"
	"github.com/go-authdemo/authdemo/internal/web/handler/logout"
	"github.com/go-authdemo/authdemo/internal/web/handler/register"
	"github.com/go-authdemo/authdemo/internal/web/handler/secret"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath serves the prometheus metrics.
	MetricsPath = "/metrics"

	requestIDLocal = "requestid"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Addr returns the listen address from the config.
func (s *Service) Addr() string {
	return ":" + strconv.Itoa(s.cfg.Webserver.Port)
}

// Start listens on addr until the app is shut down.
func (s *Service) Start(addr string) error {
	log.Info().Str("addr", addr).Str("url", s.cfg.Webserver.URL).Msg("starting http server")

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and stops the server gracefully.
// It returns early with the error of listenErr when the server stops on its own.
func (s *Service) WaitShutdown(listenErr <-chan error) error {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(irqSig)

	select {
	case err := <-listenErr:
		return err
	case sig := <-irqSig:
		log.Info().Msgf("shutdown request (signal: %v)", sig)
	}

	s.Shutdown()

	return <-listenErr
}

// Shutdown fails the health check for the configured time, then stops the server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers OK.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates the web service. env must carry the auth flow.
func New(cfg *config.Config, env *handler.Env) (*Service, error) {
	if cfg == nil || env == nil || env.Flow == nil {
		return nil, errors.New(handler.ErrNilEnvMsg)
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.Webserver.ShutDownTime == 0,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDLocal,
	}))

	app.Use(accesslog.New(accesslog.Config{
		Config:         cfg.Log,
		CheckAliveURI:  CheckAlivePath,
		RequestIDLocal: requestIDLocal,
	}))

	app.Get(CheckAlivePath, service.checkAlive)

	if cfg.Webserver.Metrics {
		app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	for _, h := range []handler.Service{
		&home.Service{},
		&secret.Service{},
		&register.Service{},
		&login.Service{},
		&logout.Service{},
	} {
		if err := h.Init(app, env); err != nil {
			return nil, err
		}
	}

	return service, nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}
