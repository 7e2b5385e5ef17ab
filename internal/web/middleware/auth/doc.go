// Package auth provides the route guard middleware of the web application.
//
// RequireLogin evaluates the guard on every protected request. Denied
// requests are redirected and a stale session cookie is cleared. Allowed
// requests carry the principal in fiber.Locals under handler.CurrentUserLocal
// so handlers and templates can show it.
//
// Usage:
//
//	app.Get("/secret", authmw.RequireLogin(env.Flow, env.Cookie), s.Get)
package auth
