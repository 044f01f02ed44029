package htmx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRedirect_PlainClient(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Redirect(c, http.StatusOK, "/login"); err != nil {
		t.Fatalf("redirect error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected Location /login, got %q", loc)
	}
}

func TestRedirect_RichClient(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestHeader, "true")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Redirect(c, http.StatusCreated, "/"); err != nil {
		t.Fatalf("redirect error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got := rec.Header().Get(RedirectHeader); got != "/" {
		t.Fatalf("expected HX-Redirect /, got %q", got)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "" {
		t.Fatalf("rich client must not get a Location header, got %q", loc)
	}
}

func TestIsRequest(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if IsRequest(e.NewContext(req, httptest.NewRecorder())) {
		t.Fatalf("plain request misdetected as htmx")
	}

	req.Header.Set(RequestHeader, "true")
	if !IsRequest(e.NewContext(req, httptest.NewRecorder())) {
		t.Fatalf("htmx request not detected")
	}
}
