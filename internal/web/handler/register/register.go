package register

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
	// Path is the path to the sign up page.
	Path = "/register"

	template = "register"
)

// Service is the register handler service.
type Service struct {
	env *handler.Env
}

// Init initializes the register handler.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if app == nil || env == nil {
		return errors.New(handler.ErrNilEnvMsg)
	}

	s.env = env

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, authmw.LoadUser(env.Flow, env.Cookie), s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get renders the sign up form.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "", "")
}

// Post creates the account and logs the new user in.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(handler.CredentialsForm)

	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Msg("register: failed to parse form")

		return s.render(c, fiber.StatusBadRequest, "", MsgInvalidFormData)
	}

	sess, err := s.env.Flow.Register(c.UserContext(), form.Username, form.Password)
	if err != nil {
		status, msg := failure(err)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Msg("register: failed to register user")
		}

		return s.render(c, status, form.Username, msg)
	}

	session.SetCookie(c, s.env.Cookie, sess.Token)

	return c.Redirect(secret.Path)
}

// failure maps a Register error to the response status and message.
func failure(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		return fiber.StatusBadRequest, MsgInvalidInput
	case errors.Is(err, auth.ErrDuplicateUsername):
		return fiber.StatusConflict, MsgUsernameTaken
	default:
		return fiber.StatusInternalServerError, MsgInternalServerError
	}
}

func (s *Service) render(c *fiber.Ctx, status int, username, msg string) error {
	return c.Status(status).Render(template, s.env.Page(c, "Sign up", navigation.PageRegister, fiber.Map{
		"Username": username,
		"error":    msg,
	}), handler.BaseLayout)
}
