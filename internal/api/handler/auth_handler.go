package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamhub/portal/internal/api/htmx"
	"github.com/teamhub/portal/internal/api/metrics"
	"github.com/teamhub/portal/internal/core/domain"
	"github.com/teamhub/portal/internal/core/ports"
	"github.com/teamhub/portal/internal/session"
)

// AuthHandler serves the login form and the login/logout flows.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// loginView feeds the login template. On a failed attempt the submitted
// values are echoed back so the form does not reset under the user.
type loginView struct {
	Username string
	Password string
	Error    string
}

const errInvalidCredentials = "invalid_credentials"

// GetLogin renders the login form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200  {string}  string  "login page"
// @Router       /login [get]
func (h *AuthHandler) GetLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginView{})
}

// PostLogin verifies the submitted credentials. Success writes the username
// and displayname claims into the session and redirects to the home page
// (201 + HX-Redirect for htmx clients, 302 otherwise). Any failure re-renders
// the form with status 200 and the invalid_credentials marker; missing and
// wrong credentials are deliberately indistinguishable.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      201  {string}  string  "redirect directive to /"
// @Success      200  {string}  string  "login form with error marker"
// @Router       /login [post]
func (h *AuthHandler) PostLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.renderFailure(c, req)
	}
	if err := c.Validate(&req); err != nil {
		return h.renderFailure(c, req)
	}

	user, err := h.service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return h.renderFailure(c, req)
		}
		return err
	}

	sess := session.FromContext(c)
	sess.Set(session.KeyUsername, user.Username)
	sess.Set(session.KeyDisplayName, user.DisplayName)
	if err := sess.Save(); err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.SessionsIssuedTotal.Inc()
	return htmx.Redirect(c, http.StatusCreated, "/")
}

// renderFailure re-renders the login form after a failed attempt. htmx
// clients get just the form fragment (they swap it in place), plain clients
// the full page.
func (h *AuthHandler) renderFailure(c echo.Context, req loginRequest) error {
	metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
	name := "login.html"
	if htmx.IsRequest(c) {
		name = "login_form"
	}
	return c.Render(http.StatusOK, name, loginView{
		Username: req.Username,
		Password: req.Password,
		Error:    errInvalidCredentials,
	})
}

// PostLogout clears every session claim unconditionally and redirects to the
// login page with the same 201 + HX-Redirect convention as login success.
//
// @Summary      Logout
// @Tags         auth
// @Success      201  {string}  string  "redirect directive to /login"
// @Router       /logout [post]
func (h *AuthHandler) PostLogout(c echo.Context) error {
	sess := session.FromContext(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		return err
	}

	metrics.LogoutsTotal.Inc()
	return htmx.Redirect(c, http.StatusCreated, "/login")
}
