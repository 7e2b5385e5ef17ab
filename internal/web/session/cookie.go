package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Name   string
	MaxAge time.Duration
	Secure bool // false only in dev mode
}

// Token returns the session id sent by the client, or "".
func Token(c *fiber.Ctx, opts CookieOptions) string {
	return c.Cookies(opts.Name)
}

// SetCookie hands the session id to the client.
func SetCookie(c *fiber.Ctx, opts CookieOptions, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     opts.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		Secure:   opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(c *fiber.Ctx, opts CookieOptions) {
	c.Cookie(&fiber.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
