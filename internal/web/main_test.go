package web

import (
	"errors"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/go-authdemo/authdemo/internal/auth"
	"github.com/go-authdemo/authdemo/internal/config"
	"github.com/go-authdemo/authdemo/internal/db/models"
	"github.com/go-authdemo/authdemo/internal/web/handler"
	"github.com/go-authdemo/authdemo/internal/web/session"
)

func newTestService(t *testing.T, metrics bool) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}))

	store := auth.NewLocalProvider(db, &argon2id.Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})

	cfg := &config.Config{
		Title: "authdemo",
		Webserver: config.Webserver{
			Metrics: metrics,
			Port:    3000,
			URL:     "http://localhost:3000",
			Session: config.Session{CookieName: "session", ExpiryTime: time.Hour},
		},
	}

	s, err := New(cfg, &handler.Env{
		Cfg:    cfg,
		Flow:   auth.NewFlow(store, session.NewManager(nil, time.Hour)),
		Cookie: session.CookieOptions{Name: "session", MaxAge: time.Hour},
	})
	require.NoError(t, err)

	return s
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestNewNil(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)

	_, err = New(&config.Config{}, &handler.Env{})
	require.Error(t, err)
}

func TestCheckAlive(t *testing.T) {
	s := newTestService(t, false)

	resp, body := do(t, s.App, httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
	assert.True(t, s.Alive())

	s.alive.Store(false)

	resp, _ = do(t, s.App, httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	s := newTestService(t, true)

	resp, body := do(t, s.App, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "go_goroutines")

	s = newTestService(t, false)

	resp, _ = do(t, s.App, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestID(t *testing.T) {
	s := newTestService(t, false)

	resp, _ := do(t, s.App, httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}

func TestRegisterSecretLogoutRoundTrip(t *testing.T) {
	s := newTestService(t, false)

	resp, body := do(t, s.App, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `href="/register"`)

	resp, _ = do(t, s.App, httptest.NewRequest(http.MethodGet, "/secret", nil))
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))

	form := url.Values{"username": {"alice"}, "password": {"correct horse"}}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, _ = do(t, s.App, req)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/secret", resp.Header.Get(fiber.HeaderLocation))

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			cookie = c
		}
	}

	require.NotNil(t, cookie)

	req = httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.AddCookie(cookie)

	resp, body = do(t, s.App, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<strong>alice</strong>")

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)

	resp, _ = do(t, s.App, req)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	req = httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.AddCookie(cookie)

	resp, _ = do(t, s.App, req)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestLoginFailureRendersMessage(t *testing.T) {
	s := newTestService(t, false)

	form := url.Values{"username": {"nobody"}, "password": {"x"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, body := do(t, s.App, req)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password")
	assert.Contains(t, body, `value="nobody"`)
}

func TestWaitShutdownReturnsListenError(t *testing.T) {
	s := newTestService(t, false)

	listenErr := make(chan error, 1)
	listenErr <- errors.New("address already in use")

	err := s.WaitShutdown(listenErr)
	require.EqualError(t, err, "address already in use")
}

func TestAddr(t *testing.T) {
	s := newTestService(t, false)
	assert.Equal(t, ":3000", s.Addr())
}
