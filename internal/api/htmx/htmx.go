// Package htmx distinguishes the two request flavors the portal serves:
// plain browser navigation and htmx partial-render requests. htmx requests
// carry the HX-Request header and expect redirects as an HX-Redirect
// response header on a success status, which the client library acts on,
// instead of a protocol-level 3xx.
package htmx

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	RequestHeader  = "HX-Request"
	RedirectHeader = "HX-Redirect"
)

// IsRequest reports whether the request declares itself as an htmx client.
func IsRequest(c echo.Context) bool {
	return c.Request().Header.Get(RequestHeader) == "true"
}

// Redirect sends the flavor-appropriate redirect to url: a standard 302 for
// plain clients, or richStatus plus an HX-Redirect directive for htmx
// clients. richStatus is a success status (200 for guard rejections, 201
// for login/logout outcomes, matching the client protocol).
func Redirect(c echo.Context, richStatus int, url string) error {
	if IsRequest(c) {
		c.Response().Header().Set(RedirectHeader, url)
		return c.NoContent(richStatus)
	}
	return c.Redirect(http.StatusFound, url)
}
