package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal/internal/core/domain"
	"github.com/teamhub/portal/internal/session"
)

// ContextUsernameKey and ContextDisplayNameKey expose the session claims of
// the authenticated caller to downstream handlers.
const (
	ContextUsernameKey    = "auth.username"
	ContextDisplayNameKey = "auth.displayname"
)

// SessionGuard rejects unauthenticated requests before the handler runs,
// except for the allow-listed path prefixes. Authorization is based solely
// on the presence of the username claim in the server-side session: the
// claim was written by a verified login and is trusted without re-querying
// the user store on every request.
//
// Rejections surface as domain.ErrNoSession and are translated into the
// flavor-appropriate login redirect by the central error handler.
func SessionGuard(allowPrefixes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if allowed(c.Request().URL.Path, allowPrefixes) {
				return next(c)
			}

			sess := session.FromContext(c)
			if sess == nil {
				return domain.ErrNoSession
			}
			username := sess.Get(session.KeyUsername)
			if username == "" {
				return domain.ErrNoSession
			}

			c.Set(ContextUsernameKey, username)
			c.Set(ContextDisplayNameKey, sess.Get(session.KeyDisplayName))
			return next(c)
		}
	}
}

func allowed(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
