package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal/internal/api/middleware"
)

// ctxIdentity extracts the session claims injected by the SessionGuard. The
// guard runs before every protected handler, so the username is present on
// any request that reaches this code.
func ctxIdentity(c echo.Context) (username, displayName string) {
	username, _ = c.Get(middleware.ContextUsernameKey).(string)
	displayName, _ = c.Get(middleware.ContextDisplayNameKey).(string)
	return username, displayName
}
