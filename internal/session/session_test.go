package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestMemoryStore_SaveLoadDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	values := map[string]string{KeyUsername: "test_user", KeyDisplayName: "Test User"}
	if err := store.Save(ctx, "tok1", values, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := store.Load(ctx, "tok1")
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if loaded[KeyUsername] != "test_user" {
		t.Fatalf("unexpected values: %v", loaded)
	}

	// Mutating the loaded map must not leak into the store.
	loaded[KeyUsername] = "tampered"
	again, _, _ := store.Load(ctx, "tok1")
	if again[KeyUsername] != "test_user" {
		t.Fatalf("store values aliased: %v", again)
	}

	if err := store.Delete(ctx, "tok1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Load(ctx, "tok1"); ok {
		t.Fatalf("expected session gone after delete")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "tok", map[string]string{KeyUsername: "u"}, -time.Second); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, _ := store.Load(ctx, "tok"); ok {
		t.Fatalf("expected expired session to be dropped")
	}
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	store := NewMemoryStore()
	if _, ok, err := store.Load(context.Background(), "missing"); ok || err != nil {
		t.Fatalf("expected miss without error, got ok=%v err=%v", ok, err)
	}
}

// run pushes a request through the manager middleware and hands the session
// to fn before the response is finalised.
func run(t *testing.T, m *Manager, req *http.Request, fn func(c echo.Context, s *Session) error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.Middleware()(func(c echo.Context) error {
		sess := FromContext(c)
		if sess == nil {
			t.Fatalf("no session in context")
		}
		return fn(c, sess)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := rec.Result()
	for _, cookie := range res.Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	t.Fatalf("no %s cookie in response", CookieName)
	return nil
}

func TestManager_IssueAndReload(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := run(t, m, req, func(c echo.Context, s *Session) error {
		s.Set(KeyUsername, "test_user")
		s.Set(KeyDisplayName, "Test User")
		return s.Save()
	})

	cookie := sessionCookie(t, rec)
	if cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("expected opaque HttpOnly cookie, got %+v", cookie)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookie)
	run(t, m, req2, func(c echo.Context, s *Session) error {
		if s.Get(KeyUsername) != "test_user" || s.Get(KeyDisplayName) != "Test User" {
			t.Fatalf("claims not reloaded: %v", s.values)
		}
		return nil
	})
}

func TestManager_NoCookieUntilSaved(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := run(t, m, req, func(c echo.Context, s *Session) error {
		if s.Get(KeyUsername) != "" {
			t.Fatalf("fresh session should be empty")
		}
		return nil
	})

	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie should be issued for an untouched session")
	}
}

func TestManager_ClearDeletesSession(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := run(t, m, req, func(c echo.Context, s *Session) error {
		s.Set(KeyUsername, "test_user")
		return s.Save()
	})
	cookie := sessionCookie(t, rec)

	req2 := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req2.AddCookie(cookie)
	rec2 := run(t, m, req2, func(c echo.Context, s *Session) error {
		s.Clear()
		return s.Save()
	})

	expired := sessionCookie(t, rec2)
	if expired.MaxAge >= 0 {
		t.Fatalf("expected expiring cookie, got MaxAge=%d", expired.MaxAge)
	}
	if _, ok, _ := store.Load(context.Background(), cookie.Value); ok {
		t.Fatalf("server-side session should be deleted")
	}
}

func TestManager_UnknownTokenGetsFreshSession(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged-or-expired"})
	run(t, m, req, func(c echo.Context, s *Session) error {
		if s.Get(KeyUsername) != "" {
			t.Fatalf("unknown token must not resolve to claims")
		}
		return nil
	})
}

func TestNewToken_OpaqueAndUnique(t *testing.T) {
	t1, err := newToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	t2, err := newToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if len(t1) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(t1))
	}
	if t1 == t2 {
		t.Fatalf("tokens must be unique")
	}
}
