package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-authdemo/authdemo/internal/auth"
	"github.com/go-authdemo/authdemo/internal/web/handler"
	"github.com/go-authdemo/authdemo/internal/web/handler/secret"
	authmw "github.com/go-authdemo/authdemo/internal/web/middleware/auth"
	"github.com/go-authdemo/authdemo/internal/web/navigation"
	"github.com/go-authdemo/authdemo/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = auth.LoginPath

	template = "login"
)

// Service is the login handler service.
type Service struct {
	env *handler.Env
}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if app == nil || env == nil {
		return errors.New(handler.ErrNilEnvMsg)
	}

	s.env = env

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, authmw.LoadUser(env.Flow, env.Cookie), s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "", "")
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(handler.CredentialsForm)

	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Msg("login: failed to parse form")

		return s.render(c, fiber.StatusBadRequest, "", MsgInvalidFormData)
	}

	sess, err := s.env.Flow.Login(c.UserContext(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return s.render(c, fiber.StatusUnauthorized, form.Username, MsgInvalidCredentials)
		}

		log.Error().Err(err).Msg("login: failed to log in")

		return s.render(c, fiber.StatusInternalServerError, form.Username, MsgInternalServerError)
	}

	session.SetCookie(c, s.env.Cookie, sess.Token)

	return c.Redirect(secret.Path)
}

func (s *Service) render(c *fiber.Ctx, status int, username, msg string) error {
	return c.Status(status).Render(template, s.env.Page(c, "Log in", navigation.PageLogin, fiber.Map{
		"Username": username,
		"error":    msg,
	}), handler.BaseLayout)
}
