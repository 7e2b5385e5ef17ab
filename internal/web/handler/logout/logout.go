// Package logout ends the session of the current user.
package logout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-authdemo/authdemo/internal/web/handler"
	"github.com/go-authdemo/authdemo/internal/web/handler/home"
	"github.com/go-authdemo/authdemo/internal/web/session"
)

// Path is the path of the logout action.
const Path = "/logout"

// Service is the logout handler service.
type Service struct {
	env *handler.Env
}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if app == nil || env == nil {
		return errors.New(handler.ErrNilEnvMsg)
	}

	s.env = env

	// logout route (outside auth middleware protection)
	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)

	return nil
}

// Logout invalidates the session and clears the cookie.
// The cookie is cleared even when the storage fails.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := s.env.Flow.Logout(c.UserContext(), session.Token(c, s.env.Cookie)); err != nil {
		log.Error().Err(err).Msg("logout: failed to invalidate session")
	}

	session.ClearCookie(c, s.env.Cookie)

	return c.Redirect(home.Path)
}
