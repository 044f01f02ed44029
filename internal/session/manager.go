// Package session implements server-side sessions behind an opaque cookie.
//
// The client only ever holds a random token; all claims (username,
// displayname) stay in the configured Store. Handlers read and write claims
// through the Session attached to the request context and call Save to
// persist them.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const CookieName = "portal_session"

// Claim keys written by the auth flow.
const (
	KeyUsername    = "username"
	KeyDisplayName = "displayname"
)

const contextKey = "portal.session"

// Manager loads and persists the per-request Session.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, ttl: ttl}
}

// Middleware attaches a Session to every request. A request without a valid
// session cookie gets a fresh empty session; no cookie is issued until the
// session is saved with claims in it.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := &Session{manager: m, ctx: c, values: make(map[string]string)}

			if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
				values, ok, err := m.store.Load(c.Request().Context(), cookie.Value)
				if err != nil {
					return err
				}
				if ok {
					sess.token = cookie.Value
					sess.values = values
				}
			}

			c.Set(contextKey, sess)
			return next(c)
		}
	}
}

// FromContext returns the Session attached by Middleware, or nil when the
// middleware did not run.
func FromContext(c echo.Context) *Session {
	sess, _ := c.Get(contextKey).(*Session)
	return sess
}

// Session is the per-request view of the caller's server-side session.
type Session struct {
	manager *Manager
	ctx     echo.Context
	token   string
	values  map[string]string
}

// Get returns the claim stored under key, or "" when absent.
func (s *Session) Get(key string) string {
	return s.values[key]
}

// Set stages a claim. Nothing is persisted until Save.
func (s *Session) Set(key, value string) {
	s.values[key] = value
}

// Clear stages removal of every claim.
func (s *Session) Clear() {
	s.values = make(map[string]string)
}

// Save persists the staged claims. The first save of a non-empty session
// mints a token and issues the cookie; saving after Clear deletes the
// server-side record and expires the cookie.
func (s *Session) Save() error {
	ctx := s.ctx.Request().Context()

	if len(s.values) == 0 {
		if s.token == "" {
			return nil
		}
		if err := s.manager.store.Delete(ctx, s.token); err != nil {
			return err
		}
		s.setCookie(s.token, -1)
		s.token = ""
		return nil
	}

	if s.token == "" {
		token, err := newToken()
		if err != nil {
			return err
		}
		s.token = token
	}

	if err := s.manager.store.Save(ctx, s.token, s.values, s.manager.ttl); err != nil {
		return err
	}
	s.setCookie(s.token, int(s.manager.ttl.Seconds()))
	return nil
}

func (s *Session) setCookie(token string, maxAge int) {
	s.ctx.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
