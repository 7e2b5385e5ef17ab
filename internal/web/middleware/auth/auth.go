package auth

import (
	"github.com/gofiber/fiber/v2"

	authflow "github.com/go-authdemo/authdemo/internal/auth"
	"github.com/go-authdemo/authdemo/internal/web/handler"
	"github.com/go-authdemo/authdemo/internal/web/session"
)

// RequireLogin only lets requests with a live session through.
// Everything else is redirected to the login page and a stale cookie is cleared.
func RequireLogin(flow *authflow.Flow, cookie session.CookieOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := session.Token(c, cookie)

		d, sess := flow.Authorize(c.UserContext(), token)
		if !d.Allow {
			if token != "" {
				session.ClearCookie(c, cookie)
			}

			return c.Redirect(d.Redirect)
		}

		c.Locals(handler.CurrentUserLocal, sess.Principal)

		return c.Next()
	}
}

// LoadUser stores the principal of a live session for the templates.
// It never blocks a request.
func LoadUser(flow *authflow.Flow, cookie session.CookieOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := session.Token(c, cookie)
		if token == "" {
			return c.Next()
		}

		if sess := flow.Identify(c.UserContext(), token); sess != nil {
			c.Locals(handler.CurrentUserLocal, sess.Principal)
		}

		return c.Next()
	}
}
