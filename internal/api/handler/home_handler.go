package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeHandler serves the protected landing page.
type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

type homeView struct {
	Username    string
	DisplayName string
}

// Home renders the landing page for the authenticated caller. The guard has
// already authorized the request and injected the session claims, so no user
// store lookup happens here.
//
// @Summary      Home page
// @Tags         home
// @Produce      html
// @Success      200  {string}  string  "home page"
// @Router       / [get]
func (h *HomeHandler) Home(c echo.Context) error {
	username, displayName := ctxIdentity(c)
	return c.Render(http.StatusOK, "home.html", homeView{
		Username:    username,
		DisplayName: displayName,
	})
}
