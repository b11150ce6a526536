package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/openlumen/walletd/internal/domain"
	"github.com/openlumen/walletd/internal/present/rest/presenter"
	"github.com/openlumen/walletd/internal/usecase"
)

var tracer = otel.Tracer("auth")

// TokenContextKey holds the raw bearer token on the echo context.
const TokenContextKey = "authToken"

type AuthMiddleware struct {
	tokens usecase.TokenService
}

func NewAuthMiddleware(tokens usecase.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireToken rejects requests without a decodable bearer token and
// stashes the raw token for the handler. The guarded usecases re-check
// ownership themselves; this gate only keeps anonymous traffic out.
func (m *AuthMiddleware) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, span := tracer.Start(c.Request().Context(), "Auth.Middleware.RequireToken")
		defer span.End()

		token, ok := bearerToken(c)
		if !ok {
			return presenter.Fail[bool](c, domain.Unauthorized(""))
		}

		decoded := m.tokens.Decode(token)
		if !decoded.IsSuccess() {
			span.RecordError(decoded.Err())
			return presenter.Fail[bool](c, domain.Unauthorized(""))
		}
		span.SetAttributes(attribute.String("Requester", decoded.Value()))

		c.Set(TokenContextKey, token)
		return next(c)
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("authorization")
	if authHeader == "" {
		return "", false
	}

	split := strings.Split(authHeader, " ")
	if len(split) != 2 || split[0] != "Bearer" {
		return "", false
	}
	return split[1], true
}

// Token returns the bearer token stashed by RequireToken.
func Token(c echo.Context) string {
	token, _ := c.Get(TokenContextKey).(string)
	return token
}
