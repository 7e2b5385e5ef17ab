// Package handler holds what every web handler shares.
package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-authdemo/authdemo/internal/auth"
	"github.com/go-authdemo/authdemo/internal/config"
	"github.com/go-authdemo/authdemo/internal/web/navigation"
	"github.com/go-authdemo/authdemo/internal/web/session"
)

// Env carries the handles a handler needs. It is built once by the web service.
type Env struct {
	Cfg    *config.Config
	Flow   *auth.Flow
	Cookie session.CookieOptions
}

// CredentialsForm is the body of the register and login forms.
type CredentialsForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// CurrentUser returns the principal a middleware stored for this request.
func CurrentUser(c *fiber.Ctx) (auth.Principal, bool) {
	p, ok := c.Locals(CurrentUserLocal).(auth.Principal)

	return p, ok
}

// Page returns the template data shared by every page plus extra.
func (e *Env) Page(c *fiber.Ctx, title, page string, extra fiber.Map) fiber.Map {
	p, loggedIn := CurrentUser(c)

	data := fiber.Map{
		"Title":      e.Cfg.Title,
		"Navigation": navigation.NewContext(title, page, loggedIn),
	}

	if loggedIn {
		data[CurrentUserLocal] = p
	}

	for k, v := range extra {
		data[k] = v
	}

	return data
}
