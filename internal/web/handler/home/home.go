// Package home serves the public landing page.
package home

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/go-authdemo/authdemo/internal/web/handler"
	authmw "github.com/go-authdemo/authdemo/internal/web/middleware/auth"
	"github.com/go-authdemo/authdemo/internal/web/navigation"
)

// Path is the path to the home page.
const Path = handler.RootPath

// Service is the home handler service.
type Service struct {
	env *handler.Env
}

// Init registers the home route.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if app == nil || env == nil {
		return errors.New(handler.ErrNilEnvMsg)
	}

	s.env = env

	app.Get(Path, authmw.LoadUser(env.Flow, env.Cookie), s.Get)

	return nil
}

// Get renders the home page.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render("home", s.env.Page(c, "Home", navigation.PageHome, nil), handler.BaseLayout)
}
