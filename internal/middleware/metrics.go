package middleware

import (
	"time"

	"github.com/deppfellow/lightbnb/internal/server"

	"github.com/labstack/echo/v4"
)

const unmatchedRoute = "unmatched"

type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Observe records every request in the Prometheus request counters, labelled
// by route pattern rather than raw path.
func (m *MetricsMiddleware) Observe() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.server.Metrics == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}

			m.server.Metrics.ObserveRequest(
				c.Request().Method,
				route,
				errorStatus(err, c.Response().Status),
				time.Since(start),
			)

			return err
		}
	}
}
