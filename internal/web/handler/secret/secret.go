// Package secret serves the page only logged in users may see.
package secret

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/go-authdemo/authdemo/internal/web/handler"
	authmw "github.com/go-authdemo/authdemo/internal/web/middleware/auth"
	"github.com/go-authdemo/authdemo/internal/web/navigation"
)

// Path is the path to the protected page.
const Path = "/secret"

// Service is the secret handler service.
type Service struct {
	env *handler.Env
}

// Init registers the protected route behind the guard.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if app == nil || env == nil {
		return errors.New(handler.ErrNilEnvMsg)
	}

	s.env = env

	app.Get(Path, authmw.RequireLogin(env.Flow, env.Cookie), s.Get)

	return nil
}

// Get renders the secret page with the username of the session.
func (s *Service) Get(c *fiber.Ctx) error {
	p, ok := handler.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	return c.Render("secret", s.env.Page(c, "Secret", navigation.PageSecret, fiber.Map{
		"Username": p.Username,
	}), handler.BaseLayout)
}
