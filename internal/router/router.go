// Package router builds the Echo instance: global middleware in order, then
// the system routes and the versioned API.
package router

import (
	"net/http"

	"github.com/deppfellow/lightbnb/internal/handler"
	"github.com/deppfellow/lightbnb/internal/middleware"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"

	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Token)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Observe(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, s, h)

	v1 := router.Group("/api/v1")
	registerPropertyRoutes(v1, h.Property, middlewares.Auth)
	registerReservationRoutes(v1, h.Reservation, middlewares.Auth)
	registerUserRoutes(v1, h.User, middlewares.Auth)

	return router
}

func registerPropertyRoutes(g *echo.Group, h *handler.PropertyHandler, auth *middleware.AuthMiddleware) {
	properties := g.Group("/properties")
	properties.GET("", handler.Handle(h.Handler, h.SearchProperties, http.StatusOK, &handler.SearchPropertiesRequest{}))
	properties.POST("", handler.Handle(h.Handler, h.CreateProperty, http.StatusCreated, &handler.CreatePropertyRequest{}), auth.RequireAuth)
}

func registerReservationRoutes(g *echo.Group, h *handler.ReservationHandler, auth *middleware.AuthMiddleware) {
	g.GET("/reservations", handler.Handle(h.Handler, h.ListReservations, http.StatusOK, &handler.ListReservationsRequest{}), auth.RequireAuth)
}

func registerUserRoutes(g *echo.Group, h *handler.UserHandler, auth *middleware.AuthMiddleware) {
	users := g.Group("/users")
	users.POST("", handler.Handle(h.Handler, h.Register, http.StatusCreated, &handler.RegisterRequest{}))
	users.POST("/login", handler.Handle(h.Handler, h.Login, http.StatusOK, &handler.LoginRequest{}))
	users.GET("/me", handler.Handle(h.Handler, h.GetCurrentUser, http.StatusOK, &handler.GetCurrentUserRequest{}), auth.RequireAuth)
}
