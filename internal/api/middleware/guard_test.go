package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal/internal/core/domain"
	"github.com/teamhub/portal/internal/session"
)

func newGuardedHandler(t *testing.T, called *bool) echo.HandlerFunc {
	t.Helper()
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestSessionGuard_AllowListedPath(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := SessionGuard("/login", "/schema")
	if err := mw(newGuardedHandler(t, &called))(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("allow-listed path should reach the handler")
	}
}

func TestSessionGuard_AllowListCoversSubPaths(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/schema/swagger.json", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := SessionGuard("/login", "/schema")
	if err := mw(newGuardedHandler(t, &called))(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("allow-list should match sub-paths by prefix")
	}
}

func TestSessionGuard_AnonymousRejected(t *testing.T) {
	e := echo.New()
	m := session.NewManager(session.NewMemoryStore(), time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	chain := m.Middleware()(SessionGuard("/login")(newGuardedHandler(t, &called)))

	err := chain(c)
	if err != domain.ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if called {
		t.Fatalf("handler must not run for anonymous requests")
	}
}

func TestSessionGuard_AuthenticatedPasses(t *testing.T) {
	e := echo.New()
	m := session.NewManager(session.NewMemoryStore(), time.Hour)

	// Establish a session first.
	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	loginRec := httptest.NewRecorder()
	loginCtx := e.NewContext(loginReq, loginRec)
	if err := m.Middleware()(func(c echo.Context) error {
		sess := session.FromContext(c)
		sess.Set(session.KeyUsername, "test_user")
		sess.Set(session.KeyDisplayName, "Test User")
		return sess.Save()
	})(loginCtx); err != nil {
		t.Fatalf("login error: %v", err)
	}
	cookies := loginRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no session cookie issued")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	chain := m.Middleware()(SessionGuard("/login")(func(c echo.Context) error {
		called = true
		if got, _ := c.Get(ContextUsernameKey).(string); got != "test_user" {
			t.Fatalf("username claim not injected, got %q", got)
		}
		if got, _ := c.Get(ContextDisplayNameKey).(string); got != "Test User" {
			t.Fatalf("displayname claim not injected, got %q", got)
		}
		return c.NoContent(http.StatusOK)
	}))

	if err := chain(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("authenticated request should reach the handler")
	}
}
