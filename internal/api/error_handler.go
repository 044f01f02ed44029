package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamhub/portal/internal/api/htmx"
	"github.com/teamhub/portal/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Translates guard rejections (domain.ErrNoSession) into the
//     flavor-appropriate login redirect: a 302 for plain clients, a 200 with
//     an HX-Redirect directive for htmx clients.
//   - Renders echo's own errors (404 from the router, bind failures) as plain
//     text with their status.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrNoSession) {
			_ = htmx.Redirect(c, http.StatusOK, "/login")
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.String(he.Code, fmt.Sprintf("%v", he.Message))
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.String(http.StatusInternalServerError, "internal server error")
	}
}
