package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/teamhub/portal/docs"
	"github.com/teamhub/portal/internal/api/handler"
	"github.com/teamhub/portal/internal/api/middleware"
	"github.com/teamhub/portal/internal/api/view"
	"github.com/teamhub/portal/internal/core/ports"
	"github.com/teamhub/portal/internal/session"
)

// allowList holds the path prefixes reachable without a session: the login
// flow, the OpenAPI schema, static assets, and operational probes.
var allowList = []string{"/login", "/schema", "/static", "/health", "/metrics"}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when sessions are stored in memory.
func NewRouter(authService ports.AuthService, sessions *session.Manager, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(sessions.Middleware())
	e.Use(middleware.SessionGuard(allowList...))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	homeHandler := handler.NewHomeHandler()

	e.GET("/", homeHandler.Home)
	e.GET("/login", authHandler.GetLogin)
	e.POST("/login", authHandler.PostLogin)
	e.POST("/logout", authHandler.PostLogout)

	// --- Unauthenticated surfaces ---
	e.StaticFS("/static", view.StaticFS())
	e.GET("/schema/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
