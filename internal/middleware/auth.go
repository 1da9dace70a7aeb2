package middleware

import (
	"strings"
	"time"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/server"

	"github.com/labstack/echo/v4"
)

// TokenParser resolves a bearer token to the id of the user it was issued for.
type TokenParser interface {
	Parse(token string) (int64, error)
}

type AuthMiddleware struct {
	server *server.Server
	tokens TokenParser
}

func NewAuthMiddleware(s *server.Server, tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: tokens,
	}
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token.
// On success the user id is stored under UserIDKey and added to the request logger.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := GetLogger(c)

		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			logger.Warn().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("missing bearer token")

			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		userID, err := auth.tokens.Parse(token)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("rejected bearer token")

			return err
		}

		c.Set(UserIDKey, userID)

		userLogger := logger.With().Int64("user_id", userID).Logger()
		setLogger(c, &userLogger)

		userLogger.Debug().
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
