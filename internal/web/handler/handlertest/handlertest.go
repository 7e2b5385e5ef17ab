// Package handlertest wires a handler against an in-memory database and
// session storage for tests.
package handlertest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/go-authdemo/authdemo/internal/auth"
	"github.com/go-authdemo/authdemo/internal/config"
	"github.com/go-authdemo/authdemo/internal/db/models"
	"github.com/go-authdemo/authdemo/internal/web/handler"
	"github.com/go-authdemo/authdemo/internal/web/navigation"
	"github.com/go-authdemo/authdemo/internal/web/session"
)

// CookieName is the session cookie used by test environments.
const CookieName = "session"

// params keeps Argon2id cheap in tests.
var params = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// NoOpViews is a minimal fiber.Views engine for tests.
// It writes the template name, the "error" field and the logged in
// username so tests can assert on what a handler rendered.
type NoOpViews struct{}

// Load implements fiber.Views.
func (NoOpViews) Load() error { return nil }

// Render implements fiber.Views.
func (NoOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	m, ok := data.(fiber.Map)
	if !ok {
		return nil
	}

	if v, ok := m["error"].(string); ok && v != "" {
		_, _ = io.WriteString(w, "|error="+v)
	}

	if p, ok := m[handler.CurrentUserLocal].(auth.Principal); ok {
		_, _ = io.WriteString(w, "|user="+p.Username)
	}

	if nav, ok := m["Navigation"].(*navigation.Context); ok && nav.LoggedIn {
		_, _ = io.WriteString(w, "|nav=in")
	}

	return nil
}

// Fixture is a ready to use app with its collaborators.
type Fixture struct {
	App      *fiber.App
	Env      *handler.Env
	DB       *gorm.DB
	Store    *auth.LocalProvider
	Sessions *session.Manager
}

// New creates a fixture. No handler is registered yet.
func New(t *testing.T, devMode bool) *Fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}

	// every new connection would be a fresh in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err = db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate user model: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })

	store := auth.NewLocalProvider(db, params)
	sessions := session.NewManager(nil, time.Hour)

	cfg := &config.Config{
		DevMode: devMode,
		Title:   "authdemo",
		Webserver: config.Webserver{
			URL:  "http://localhost",
			Port: 3000,
			Session: config.Session{
				CookieName: CookieName,
				ExpiryTime: time.Hour,
			},
		},
	}

	return &Fixture{
		App: fiber.New(fiber.Config{Views: NoOpViews{}}),
		Env: &handler.Env{
			Cfg:  cfg,
			Flow: auth.NewFlow(store, sessions),
			Cookie: session.CookieOptions{
				Name:   CookieName,
				MaxAge: time.Hour,
				Secure: !devMode,
			},
		},
		DB:       db,
		Store:    store,
		Sessions: sessions,
	}
}

// Register mounts s on the fixture app.
func (f *Fixture) Register(t *testing.T, s handler.Service) {
	t.Helper()

	if err := s.Init(f.App, f.Env); err != nil {
		t.Fatalf("failed to init handler: %v", err)
	}
}

// Login creates username and returns a valid session token for it.
func (f *Fixture) Login(t *testing.T, username, password string) string {
	t.Helper()

	sess, err := f.Env.Flow.Register(t.Context(), username, password)
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}

	return sess.Token
}

// Get performs a GET request, token is sent as session cookie when set.
func (f *Fixture) Get(t *testing.T, target, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)

	return f.do(t, req, token)
}

// PostForm performs a form encoded POST request.
func (f *Fixture) PostForm(t *testing.T, target, token string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return f.do(t, req, token)
}

func (f *Fixture) do(t *testing.T, req *http.Request, token string) *http.Response {
	t.Helper()

	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}

	resp, err := f.App.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// Body reads the whole response body.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	return string(b)
}

// SessionCookie returns the session cookie set by resp, or nil.
func SessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}

	return nil
}
