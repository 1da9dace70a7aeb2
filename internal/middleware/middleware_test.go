package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/metrics"
	"github.com/deppfellow/lightbnb/internal/server"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(rateLimit float64) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          rateLimit,
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger:  &logger,
		Metrics: metrics.New(),
	}
}

type fakeTokens map[string]int64

func (f fakeTokens) Parse(token string) (int64, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return 0, errs.NewInvalidTokenError("Invalid authentication token")
}

func newEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	return e
}

func serve(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc", token: "abc", ok: true},
		{header: "bearer abc", token: "abc", ok: true},
		{header: "Bearer   abc ", token: "abc", ok: true},
		{header: "Bearer ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "abc", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	s := newTestServer(0)
	auth := NewAuthMiddleware(s, fakeTokens{"good": 42})

	e := newEcho(s)
	e.GET("/me", func(c echo.Context) error {
		userID, ok := GetUserID(c)
		require.True(t, ok)

		ctxLogger, ok := LoggerFromContext(c.Request().Context())
		require.True(t, ok, "user logger must reach the request context")
		assert.Same(t, GetLogger(c), ctxLogger)

		return c.JSON(http.StatusOK, map[string]int64{"id": userID})
	}, auth.RequireAuth)

	t.Run("valid token", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/me", http.Header{"Authorization": {"Bearer good"}})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":42}`, rec.Body.String())
	})

	t.Run("lowercase header key", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/me", http.Header{"authorization": {"Bearer good"}})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/me", http.Header{"Authorization": {"Bearer bad"}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		body := decodeError(t, rec)
		assert.Equal(t, errs.CodeInvalidToken, body.Code)
		require.NotNil(t, body.Action)
		assert.Equal(t, "/login", body.Action.Value)
	})
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := serve(e, http.MethodGet, "/", http.Header{RequestIDHeader: {"req-1"}})
	assert.Equal(t, "req-1", rec.Body.String())
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))

	rec = serve(e, http.MethodGet, "/", nil)
	assert.Len(t, rec.Body.String(), 36)
	assert.Equal(t, rec.Body.String(), rec.Header().Get(RequestIDHeader))
}

func TestEnhanceContext(t *testing.T) {
	s := newTestServer(0)

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	e.GET("/", func(c echo.Context) error {
		_, ok := LoggerFromContext(c.Request().Context())
		assert.True(t, ok)
		assert.NotNil(t, GetLogger(c))
		return c.NoContent(http.StatusNoContent)
	})

	rec := serve(e, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetLogger_Fallback(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))

	_, ok := GetUserID(c)
	assert.False(t, ok)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "no error", err: nil, want: http.StatusOK},
		{name: "http error", err: errs.NewNotFoundError("nope", false, nil), want: http.StatusNotFound},
		{name: "echo error", err: echo.NewHTTPError(http.StatusTooManyRequests), want: http.StatusTooManyRequests},
		{name: "pg invalid text", err: &pgconn.PgError{Code: "22P02"}, want: http.StatusBadRequest},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err, http.StatusOK))
		})
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	s := newTestServer(0)
	e := newEcho(s)
	e.GET("/boom", func(c echo.Context) error { return errors.New("connection reset") })
	e.GET("/bad", func(c echo.Context) error {
		return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{{Field: "city", Error: "is required"}}, nil)
	})

	t.Run("unknown error is a generic 500", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/boom", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decodeError(t, rec)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})

	t.Run("http error keeps its fields", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/bad", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeError(t, rec)
		assert.True(t, body.Override)
		assert.Equal(t, []errs.FieldError{{Field: "city", Error: "is required"}}, body.Errors)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/missing", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Route not found", decodeError(t, rec).Message)
	})
}

func scrape(t *testing.T, s *server.Server) string {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(1)
	e := newEcho(s)
	e.Use(NewRateLimitMiddleware(s).Limit())
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/ping", nil).Code)

	rec := serve(e, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, rec).Code)

	assert.Contains(t, scrape(t, s), "lightbnb_http_rate_limit_hits_total 1")
}

func TestRateLimit_Disabled(t *testing.T) {
	s := newTestServer(0)
	e := newEcho(s)
	e.Use(NewRateLimitMiddleware(s).Limit())
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	for range 5 {
		assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/ping", nil).Code)
	}
}

func TestMetricsObserve(t *testing.T) {
	s := newTestServer(0)
	e := newEcho(s)
	e.Use(NewMetricsMiddleware(s).Observe())
	e.GET("/properties/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/fail", func(c echo.Context) error { return errs.NewNotFoundError("nope", false, nil) })

	serve(e, http.MethodGet, "/properties/1", nil)
	serve(e, http.MethodGet, "/properties/2", nil)
	serve(e, http.MethodGet, "/fail", nil)

	body := scrape(t, s)
	assert.Contains(t, body, `lightbnb_http_requests_total{method="GET",route="/properties/:id",status="200"} 2`)
	assert.Contains(t, body, `lightbnb_http_requests_total{method="GET",route="/fail",status="404"} 1`)
}
